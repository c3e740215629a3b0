package services

import (
	"context"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/dto"
)

// OrganizationSvc defines operations on organizations (tenants).
type OrganizationSvc interface {
	// CreateOrganization persists a new organization and seeds its chart of
	// accounts from the GL registry.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorID string) (*domain.Organization, error)

	// GetOrganizationByID retrieves an organization by its identifier.
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves organizations, newest first.
	ListOrganizations(ctx context.Context, limit, offset int) ([]domain.Organization, error)
}
