package services

import (
	"context"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
)

// AccountSvc defines read and seeding operations on the per-organization
// chart of accounts. There is no mutation surface: the chart is registry
// data, not user data.
type AccountSvc interface {
	// SeedChartOfAccounts writes the registry accounts for a new
	// organization. Idempotent for an already-seeded organization.
	SeedChartOfAccounts(ctx context.Context, organizationID, creatorID string) error

	// GetAccountByCode retrieves one chart entry by account code.
	GetAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)

	// ListAccounts retrieves the full chart for an organization.
	ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)
}
