package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/apperrors"
	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	portsrepo "github.com/finvo/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/dto"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceService drives the invoice lifecycle: create, settle, cancel, and
// report. All GL line generation is delegated to the glmapping engine; this
// service owns tenancy checks, state transitions, and persistence.
type invoiceService struct {
	txnRepo portsrepo.TransactionRepository
	orgRepo portsrepo.OrganizationRepository
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(txnRepo portsrepo.TransactionRepository, orgRepo portsrepo.OrganizationRepository) portssvc.InvoiceSvc {
	return &invoiceService{
		txnRepo: txnRepo,
		orgRepo: orgRepo,
	}
}

var _ portssvc.InvoiceSvc = (*invoiceService)(nil)

func (s *invoiceService) requireOrganization(ctx context.Context, organizationID string) error {
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return err
	}
	return nil
}

// CreateInvoice validates the invoice, generates the balanced creation
// posting, and persists header plus lines as one atomic unit.
func (s *invoiceService) CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, creatorID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireOrganization(ctx, organizationID); err != nil {
		return nil, err
	}

	items := req.ToDomainLineItems()
	if err := glmapping.ValidateInvoiceData(req.CustomerRef, req.TotalAmount, req.DueDate, items); err != nil {
		return nil, err
	}

	lines, err := glmapping.GenerateInvoiceCreationLines(items, req.TotalAmount, req.CustomerRef)
	if err != nil {
		return nil, err
	}

	smartCode, err := glmapping.BuildInvoiceSmartCode(glmapping.OperationCreation)
	if err != nil {
		return nil, err
	}

	// Already validated as a calendar date above.
	dueDate, err := time.Parse(glmapping.DueDateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", glmapping.ErrInvalidDueDate, req.DueDate)
	}

	now := time.Now().UTC()
	txn := domain.LedgerTransaction{
		TransactionID:   uuid.NewString(),
		OrganizationID:  organizationID,
		Kind:            domain.KindInvoice,
		SmartCode:       smartCode,
		TransactionDate: now,
		TotalAmount:     req.TotalAmount,
		CustomerRef:     req.CustomerRef,
		DueDate:         &dueDate,
		Status:          domain.StatusOpen,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	logger.Info("Invoice posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("customer_ref", txn.CustomerRef),
		slog.String("total_amount", txn.TotalAmount.String()),
	)
	return &txn, nil
}

// RecordPayment settles an OPEN invoice in full. The payment posting and the
// invoice status flip to PAID are persisted in one database transaction.
func (s *invoiceService) RecordPayment(ctx context.Context, organizationID, invoiceTxnID string, req dto.RecordPaymentRequest, creatorID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.openInvoice(ctx, organizationID, invoiceTxnID)
	if err != nil {
		return nil, err
	}

	// Only full settlements are supported; split payments are reconciled by
	// the caller as separate postings against separate invoices.
	if !glmapping.WithinTolerance(req.Amount, invoice.TotalAmount) {
		return nil, fmt.Errorf("%w: payment of %s does not settle invoice total %s",
			apperrors.ErrValidation, req.Amount, invoice.TotalAmount)
	}

	lines, err := glmapping.GenerateInvoicePaymentLines(req.Amount, glmapping.PaymentMethod(req.PaymentMethod), invoice.CustomerRef, invoice.TransactionID)
	if err != nil {
		return nil, err
	}

	smartCode, err := glmapping.BuildInvoiceSmartCode(glmapping.OperationPayment)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.LedgerTransaction{
		TransactionID:   uuid.NewString(),
		OrganizationID:  organizationID,
		Kind:            domain.KindPayment,
		SmartCode:       smartCode,
		TransactionDate: now,
		TotalAmount:     req.Amount,
		CustomerRef:     invoice.CustomerRef,
		ReferenceTxnID:  invoice.TransactionID,
		PaymentMethod:   req.PaymentMethod,
		Status:          domain.StatusPosted,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.txnRepo.SaveSettlement(ctx, payment, invoice.TransactionID, domain.StatusPaid); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	logger.Info("Invoice payment posted",
		slog.String("transaction_id", payment.TransactionID),
		slog.String("invoice_transaction_id", invoice.TransactionID),
		slog.String("payment_method", req.PaymentMethod),
	)
	return &payment, nil
}

// CancelInvoice posts the exact reversal of an OPEN invoice and marks it
// CANCELLED, atomically.
func (s *invoiceService) CancelInvoice(ctx context.Context, organizationID, invoiceTxnID, creatorID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.openInvoice(ctx, organizationID, invoiceTxnID)
	if err != nil {
		return nil, err
	}

	lines, err := glmapping.GenerateInvoiceCancellationLines(invoice.TotalAmount, invoice.CustomerRef, invoice.TransactionID)
	if err != nil {
		return nil, err
	}

	smartCode, err := glmapping.BuildInvoiceSmartCode(glmapping.OperationCancellation)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cancellation := domain.LedgerTransaction{
		TransactionID:   uuid.NewString(),
		OrganizationID:  organizationID,
		Kind:            domain.KindCancellation,
		SmartCode:       smartCode,
		TransactionDate: now,
		TotalAmount:     invoice.TotalAmount,
		CustomerRef:     invoice.CustomerRef,
		ReferenceTxnID:  invoice.TransactionID,
		Status:          domain.StatusPosted,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.txnRepo.SaveSettlement(ctx, cancellation, invoice.TransactionID, domain.StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}

	logger.Info("Invoice cancelled",
		slog.String("transaction_id", cancellation.TransactionID),
		slog.String("invoice_transaction_id", invoice.TransactionID),
	)
	return &cancellation, nil
}

// openInvoice loads an invoice and verifies it can still be settled.
func (s *invoiceService) openInvoice(ctx context.Context, organizationID, invoiceTxnID string) (*domain.LedgerTransaction, error) {
	invoice, err := s.txnRepo.FindTransactionByID(ctx, organizationID, invoiceTxnID)
	if err != nil {
		return nil, err
	}
	if invoice.Kind != domain.KindInvoice {
		return nil, fmt.Errorf("%w: transaction %s is a %s, not an invoice", apperrors.ErrValidation, invoiceTxnID, invoice.Kind)
	}
	if invoice.Status != domain.StatusOpen {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoiceTxnID, invoice.Status)
	}
	return invoice, nil
}

// GetTransactionByID retrieves any ledger transaction with its lines.
func (s *invoiceService) GetTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.LedgerTransaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, organizationID, transactionID)
}

// ListInvoices retrieves invoice headers for an organization.
func (s *invoiceService) ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.LedgerTransaction, error) {
	if err := s.requireOrganization(ctx, organizationID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListInvoices(ctx, organizationID, limit, offset)
}

// AgingReport buckets every OPEN invoice by days past due.
func (s *invoiceService) AgingReport(ctx context.Context, organizationID string, asOf time.Time) (*dto.AgingReportResponse, error) {
	if err := s.requireOrganization(ctx, organizationID); err != nil {
		return nil, err
	}

	invoices, err := s.txnRepo.ListOpenInvoices(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}

	summaries := make(map[glmapping.AgingBucket]*dto.AgingBucketSummary)
	for _, bucket := range glmapping.AgingBuckets() {
		summaries[bucket] = &dto.AgingBucketSummary{Bucket: bucket, TotalAmount: decimal.Zero}
	}

	entries := make([]dto.InvoiceAgingEntry, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.DueDate == nil {
			// Defensive: open invoices always carry a due date.
			continue
		}
		bucket := glmapping.CalculateAgingBucket(*invoice.DueDate, asOf)
		entries = append(entries, dto.InvoiceAgingEntry{
			TransactionID: invoice.TransactionID,
			CustomerRef:   invoice.CustomerRef,
			TotalAmount:   invoice.TotalAmount,
			DueDate:       invoice.DueDate.Format(glmapping.DueDateLayout),
			DaysPastDue:   glmapping.DaysPastDue(*invoice.DueDate, asOf),
			Bucket:        bucket,
		})
		summary := summaries[bucket]
		summary.InvoiceCount++
		summary.TotalAmount = summary.TotalAmount.Add(invoice.TotalAmount)
	}

	buckets := make([]dto.AgingBucketSummary, 0, len(summaries))
	for _, bucket := range glmapping.AgingBuckets() {
		buckets = append(buckets, *summaries[bucket])
	}

	return &dto.AgingReportResponse{
		OrganizationID: organizationID,
		AsOf:           asOf.Format(glmapping.DueDateLayout),
		Buckets:        buckets,
		Invoices:       entries,
	}, nil
}
