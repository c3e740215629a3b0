package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	portsrepo "github.com/finvo/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/google/uuid"
)

// accountService exposes the per-organization chart of accounts. The chart
// is registry-defined; this service only seeds and reads it.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvc {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

// SeedChartOfAccounts writes every registry account for the organization.
func (s *accountService) SeedChartOfAccounts(ctx context.Context, organizationID, creatorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	registry := glmapping.Accounts()
	accounts := make([]domain.Account, len(registry))
	for i, entry := range registry {
		accounts[i] = domain.Account{
			AccountID:      uuid.NewString(),
			OrganizationID: organizationID,
			Code:           entry.Code,
			Name:           entry.Name,
			AccountType:    entry.Type,
			NormalBalance:  entry.NormalBalance,
			SmartCode:      entry.SmartCode,
			Description:    entry.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorID,
			},
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}

	logger.Info("Chart of accounts seeded", slog.String("organization_id", organizationID), slog.Int("accounts", len(accounts)))
	return nil
}

// GetAccountByCode retrieves a single chart entry.
func (s *accountService) GetAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, organizationID, code)
}

// ListAccounts retrieves the full chart for an organization.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, organizationID)
}
