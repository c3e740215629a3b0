package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a GL line debits or credits its account.
type EntrySide string

const (
	Debit  EntrySide = "DR"
	Credit EntrySide = "CR"
)

// TransactionKind identifies the business operation a ledger transaction
// records.
type TransactionKind string

const (
	KindInvoice      TransactionKind = "INVOICE"
	KindPayment      TransactionKind = "PAYMENT"
	KindCancellation TransactionKind = "CANCELLATION"
)

// TransactionStatus is the lifecycle state of a ledger transaction.
// Invoices move OPEN -> PAID or OPEN -> CANCELLED; payment and cancellation
// transactions are POSTED on creation and never change.
type TransactionStatus string

const (
	StatusOpen      TransactionStatus = "OPEN"
	StatusPaid      TransactionStatus = "PAID"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusPosted    TransactionStatus = "POSTED"
)

// GLLineData carries the GL metadata for a single transaction line.
type GLLineData struct {
	GLAccountCode         string          `json:"glAccountCode"`
	GLAccountName         string          `json:"glAccountName"`
	Side                  EntrySide       `json:"side"`
	AccountType           AccountType     `json:"accountType"`
	Amount                decimal.Decimal `json:"amount"`
	SmartCode             string          `json:"smartCode"`
	PaymentMethod         string          `json:"paymentMethod,omitempty"`         // Payment lines only
	InvoiceTransactionRef string          `json:"invoiceTransactionRef,omitempty"` // Audit link back to the invoice being settled
}

// GLTransactionLine is one side of a double-entry posting. The glmapping
// generators hand back balanced sets of these; ownership passes to the
// caller, who persists them through the transaction repository.
type GLTransactionLine struct {
	LineNumber  int             `json:"lineNumber"`
	LineType    string          `json:"lineType"` // Always "GL"
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"` // Always 1 for GL lines
	UnitAmount  decimal.Decimal `json:"unitAmount"`
	LineAmount  decimal.Decimal `json:"lineAmount"`
	EntityRef   string          `json:"entityRef,omitempty"` // Links a line to a customer entity
	LineData    GLLineData      `json:"lineData"`
}

// LedgerTransaction is a posted business event: an invoice, a payment, or a
// cancellation, together with its balanced GL lines.
type LedgerTransaction struct {
	TransactionID   string              `json:"transactionID"` // Primary key (UUID)
	OrganizationID  string              `json:"organizationID"`
	Kind            TransactionKind     `json:"kind"`
	SmartCode       string              `json:"smartCode"`
	TransactionDate time.Time           `json:"transactionDate"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	CustomerRef     string              `json:"customerRef"`
	DueDate         *time.Time          `json:"dueDate,omitempty"`        // Invoices only
	ReferenceTxnID  string              `json:"referenceTxnID,omitempty"` // Payments/cancellations: the invoice they settle
	PaymentMethod   string              `json:"paymentMethod,omitempty"`  // Payments only
	Status          TransactionStatus   `json:"status"`
	Lines           []GLTransactionLine `json:"lines"`
	AuditFields
}
