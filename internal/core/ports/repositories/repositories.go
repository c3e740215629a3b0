package repositories

import (
	"context"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
)

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context, limit, offset int) ([]domain.Organization, error)
}

// AccountRepository defines persistence operations for the per-organization
// chart of accounts. The chart is seeded once from the registry; invoice
// flows only read it.
type AccountRepository interface {
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)
}

// TransactionRepository defines persistence operations for ledger
// transactions and their GL lines. Saving a transaction persists its lines
// atomically; a header without its lines must never be observable.
type TransactionRepository interface {
	// SaveTransaction persists a transaction header and its lines in one
	// database transaction.
	SaveTransaction(ctx context.Context, txn domain.LedgerTransaction) error

	// SaveSettlement persists a payment or cancellation transaction and
	// moves the settled invoice to the given status, atomically.
	SaveSettlement(ctx context.Context, txn domain.LedgerTransaction, invoiceTxnID string, invoiceStatus domain.TransactionStatus) error

	FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.LedgerTransaction, error)
	ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.LedgerTransaction, error)
	ListOpenInvoices(ctx context.Context, organizationID string) ([]domain.LedgerTransaction, error)
}
