package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/finvo/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/dto"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/google/uuid"
)

// organizationService provides tenant management.
type organizationService struct {
	orgRepo    portsrepo.OrganizationRepository
	accountSvc portssvc.AccountSvc
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepository, accountSvc portssvc.AccountSvc) portssvc.OrganizationSvc {
	return &organizationService{
		orgRepo:    orgRepo,
		accountSvc: accountSvc,
	}
}

var _ portssvc.OrganizationSvc = (*organizationService)(nil)

// CreateOrganization persists a new organization and seeds its chart of
// accounts from the GL registry so invoice postings can resolve accounts
// immediately.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	if err := s.accountSvc.SeedChartOfAccounts(ctx, org.OrganizationID, creatorID); err != nil {
		// The organization row exists but has no chart; surface the error so
		// the caller retries seeding rather than posting into the void.
		logger.Error("Failed to seed chart of accounts", slog.String("organization_id", org.OrganizationID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to seed chart of accounts for organization %s: %w", org.OrganizationID, err)
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID), slog.String("name", org.Name))
	return &org, nil
}

// GetOrganizationByID retrieves an organization by ID.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	return s.orgRepo.FindOrganizationByID(ctx, organizationID)
}

// ListOrganizations retrieves organizations, newest first.
func (s *organizationService) ListOrganizations(ctx context.Context, limit, offset int) ([]domain.Organization, error) {
	return s.orgRepo.ListOrganizations(ctx, limit, offset)
}
