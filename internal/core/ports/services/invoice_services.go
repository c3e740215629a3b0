package services

import (
	"context"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/dto"
)

// InvoiceSvc defines the invoice lifecycle operations.
type InvoiceSvc interface {
	// CreateInvoice validates the invoice data, generates the balanced
	// creation posting, and persists it atomically.
	CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, creatorID string) (*domain.LedgerTransaction, error)

	// RecordPayment settles an OPEN invoice in full with a single payment
	// method, posting the balanced payment lines and marking it PAID.
	RecordPayment(ctx context.Context, organizationID, invoiceTxnID string, req dto.RecordPaymentRequest, creatorID string) (*domain.LedgerTransaction, error)

	// CancelInvoice reverses an OPEN invoice and marks it CANCELLED.
	CancelInvoice(ctx context.Context, organizationID, invoiceTxnID, creatorID string) (*domain.LedgerTransaction, error)

	// GetTransactionByID retrieves any ledger transaction with its lines.
	GetTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.LedgerTransaction, error)

	// ListInvoices retrieves invoice headers for an organization.
	ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.LedgerTransaction, error)

	// AgingReport buckets every OPEN invoice by days past due as of the
	// given time.
	AgingReport(ctx context.Context, organizationID string, asOf time.Time) (*dto.AgingReportResponse, error)
}
