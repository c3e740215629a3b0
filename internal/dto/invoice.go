package dto

import (
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	"github.com/shopspring/decimal"
)

// InvoiceLineItemRequest is one caller-supplied invoice line.
type InvoiceLineItemRequest struct {
	Description    string          `json:"description" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitAmount     decimal.Decimal `json:"unitAmount"`
	LineAmount     decimal.Decimal `json:"lineAmount" binding:"required"`
	ServiceRef     string          `json:"serviceRef"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// CreateInvoiceRequest defines the data needed to post a new invoice.
// The glmapping validator re-checks everything; binding tags only catch
// structurally missing fields early.
type CreateInvoiceRequest struct {
	CustomerRef string                   `json:"customerRef" binding:"required"`
	TotalAmount decimal.Decimal          `json:"totalAmount" binding:"required"`
	DueDate     string                   `json:"dueDate" binding:"required"` // YYYY-MM-DD
	Description string                   `json:"description"`
	LineItems   []InvoiceLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// ToDomainLineItems converts request line items to domain value objects.
func (r CreateInvoiceRequest) ToDomainLineItems() []domain.InvoiceLineItem {
	items := make([]domain.InvoiceLineItem, len(r.LineItems))
	for i, li := range r.LineItems {
		items[i] = domain.InvoiceLineItem{
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitAmount:     li.UnitAmount,
			LineAmount:     li.LineAmount,
			ServiceRef:     li.ServiceRef,
			TaxAmount:      li.TaxAmount,
			DiscountAmount: li.DiscountAmount,
		}
	}
	return items
}

// RecordPaymentRequest defines the data needed to settle an invoice.
// The payment method token is validated by the glmapping router, not here,
// so unknown tokens surface as a tagged engine error rather than a generic
// binding failure.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
}

// GLLineDataResponse mirrors domain.GLLineData.
type GLLineDataResponse struct {
	GLAccountCode         string             `json:"glAccountCode"`
	GLAccountName         string             `json:"glAccountName"`
	Side                  domain.EntrySide   `json:"side"`
	AccountType           domain.AccountType `json:"accountType"`
	Amount                decimal.Decimal    `json:"amount"`
	SmartCode             string             `json:"smartCode"`
	PaymentMethod         string             `json:"paymentMethod,omitempty"`
	InvoiceTransactionRef string             `json:"invoiceTransactionRef,omitempty"`
}

// GLLineResponse defines the data returned for one GL transaction line.
type GLLineResponse struct {
	LineNumber  int                `json:"lineNumber"`
	LineType    string             `json:"lineType"`
	Description string             `json:"description"`
	Quantity    decimal.Decimal    `json:"quantity"`
	UnitAmount  decimal.Decimal    `json:"unitAmount"`
	LineAmount  decimal.Decimal    `json:"lineAmount"`
	EntityRef   string             `json:"entityRef,omitempty"`
	LineData    GLLineDataResponse `json:"lineData"`
}

// TransactionResponse defines the data returned for a ledger transaction
// (invoice, payment, or cancellation) with its GL lines.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	OrganizationID  string                   `json:"organizationID"`
	Kind            domain.TransactionKind   `json:"kind"`
	SmartCode       string                   `json:"smartCode"`
	TransactionDate time.Time                `json:"transactionDate"`
	TotalAmount     decimal.Decimal          `json:"totalAmount"`
	CustomerRef     string                   `json:"customerRef"`
	DueDate         string                   `json:"dueDate,omitempty"`
	ReferenceTxnID  string                   `json:"referenceTxnID,omitempty"`
	PaymentMethod   string                   `json:"paymentMethod,omitempty"`
	Status          domain.TransactionStatus `json:"status"`
	Lines           []GLLineResponse         `json:"lines"`
	CreatedAt       time.Time                `json:"createdAt"`
	CreatedBy       string                   `json:"createdBy"`
}

// ToTransactionResponse converts a domain.LedgerTransaction to its DTO.
func ToTransactionResponse(txn *domain.LedgerTransaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:   txn.TransactionID,
		OrganizationID:  txn.OrganizationID,
		Kind:            txn.Kind,
		SmartCode:       txn.SmartCode,
		TransactionDate: txn.TransactionDate,
		TotalAmount:     txn.TotalAmount,
		CustomerRef:     txn.CustomerRef,
		ReferenceTxnID:  txn.ReferenceTxnID,
		PaymentMethod:   txn.PaymentMethod,
		Status:          txn.Status,
		Lines:           make([]GLLineResponse, len(txn.Lines)),
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
	if txn.DueDate != nil {
		resp.DueDate = txn.DueDate.Format(glmapping.DueDateLayout)
	}
	for i, line := range txn.Lines {
		resp.Lines[i] = GLLineResponse{
			LineNumber:  line.LineNumber,
			LineType:    line.LineType,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitAmount:  line.UnitAmount,
			LineAmount:  line.LineAmount,
			EntityRef:   line.EntityRef,
			LineData: GLLineDataResponse{
				GLAccountCode:         line.LineData.GLAccountCode,
				GLAccountName:         line.LineData.GLAccountName,
				Side:                  line.LineData.Side,
				AccountType:           line.LineData.AccountType,
				Amount:                line.LineData.Amount,
				SmartCode:             line.LineData.SmartCode,
				PaymentMethod:         line.LineData.PaymentMethod,
				InvoiceTransactionRef: line.LineData.InvoiceTransactionRef,
			},
		}
	}
	return resp
}

// ToListTransactionResponse converts a slice of transactions to DTOs.
func ToListTransactionResponse(txns []domain.LedgerTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// InvoiceAgingEntry is one open invoice classified by days past due.
type InvoiceAgingEntry struct {
	TransactionID string                `json:"transactionID"`
	CustomerRef   string                `json:"customerRef"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	DueDate       string                `json:"dueDate"`
	DaysPastDue   int                   `json:"daysPastDue"`
	Bucket        glmapping.AgingBucket `json:"bucket"`
}

// AgingBucketSummary aggregates the open invoices of one aging bucket.
type AgingBucketSummary struct {
	Bucket       glmapping.AgingBucket `json:"bucket"`
	InvoiceCount int                   `json:"invoiceCount"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
}

// AgingReportResponse is the receivables aging report for one organization.
type AgingReportResponse struct {
	OrganizationID string               `json:"organizationID"`
	AsOf           string               `json:"asOf"`
	Buckets        []AgingBucketSummary `json:"buckets"`
	Invoices       []InvoiceAgingEntry  `json:"invoices"`
}
