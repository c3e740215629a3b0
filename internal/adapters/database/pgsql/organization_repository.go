package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finvo/invoice_ledger_app/internal/apperrors"
	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/finvo/invoice_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	pool *pgxpool.Pool
}

// NewPgxOrganizationRepository creates a new repository for organization data.
func NewPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepository {
	return &PgxOrganizationRepository{pool: pool}
}

var _ portsrepo.OrganizationRepository = (*PgxOrganizationRepository)(nil)

// SaveOrganization inserts a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		INSERT INTO organizations (organization_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: organization %s already exists", apperrors.ErrDuplicate, org.OrganizationID)
		}
		return fmt.Errorf("failed to insert organization %s: %w", org.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var org domain.Organization
	err := r.pool.QueryRow(ctx, query, organizationID).Scan(
		&org.OrganizationID,
		&org.Name,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}
	return &org, nil
}

// ListOrganizations retrieves organizations, newest first.
func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context, limit, offset int) ([]domain.Organization, error) {
	query := `
		SELECT organization_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		ORDER BY created_at DESC, organization_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(
			&org.OrganizationID,
			&org.Name,
			&org.CreatedAt,
			&org.CreatedBy,
			&org.LastUpdatedAt,
			&org.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", err)
	}
	return orgs, nil
}
