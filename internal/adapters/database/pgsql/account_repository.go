package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finvo/invoice_ledger_app/internal/apperrors"
	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/finvo/invoice_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for chart-of-accounts data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// SaveAccounts inserts chart entries for an organization. Conflicts on
// (organization_id, code) are ignored so re-seeding is idempotent.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO gl_accounts (account_id, organization_id, code, name, account_type, normal_balance, smart_code, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (organization_id, code) DO NOTHING;
	`
	for _, acc := range accounts {
		batch.Queue(query,
			acc.AccountID,
			acc.OrganizationID,
			acc.Code,
			acc.Name,
			acc.AccountType,
			acc.NormalBalance,
			acc.SmartCode,
			acc.Description,
			acc.CreatedAt,
			acc.CreatedBy,
			acc.LastUpdatedAt,
			acc.LastUpdatedBy,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute account batch: %w", err)
	}
	return nil
}

// FindAccountByCode retrieves one chart entry by organization and code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	query := `
		SELECT account_id, organization_id, code, name, account_type, normal_balance, smart_code, description, created_at, created_by, last_updated_at, last_updated_by
		FROM gl_accounts
		WHERE organization_id = $1 AND code = $2;
	`
	var acc domain.Account
	err := r.pool.QueryRow(ctx, query, organizationID, code).Scan(
		&acc.AccountID,
		&acc.OrganizationID,
		&acc.Code,
		&acc.Name,
		&acc.AccountType,
		&acc.NormalBalance,
		&acc.SmartCode,
		&acc.Description,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s for organization %s: %w", code, organizationID, err)
	}
	return &acc, nil
}

// ListAccounts retrieves the chart of accounts for an organization, ordered
// by account code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, organization_id, code, name, account_type, normal_balance, smart_code, description, created_at, created_by, last_updated_at, last_updated_by
		FROM gl_accounts
		WHERE organization_id = $1
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(
			&acc.AccountID,
			&acc.OrganizationID,
			&acc.Code,
			&acc.Name,
			&acc.AccountType,
			&acc.NormalBalance,
			&acc.SmartCode,
			&acc.Description,
			&acc.CreatedAt,
			&acc.CreatedBy,
			&acc.LastUpdatedAt,
			&acc.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
