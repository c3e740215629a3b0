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

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for ledger
// transactions and their GL lines.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO ledger_transactions (transaction_id, organization_id, kind, smart_code, transaction_date, total_amount, customer_ref, due_date, reference_txn_id, payment_method, status, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertLineQuery = `
	INSERT INTO ledger_transaction_lines (transaction_id, line_number, line_type, description, quantity, unit_amount, line_amount, entity_ref, gl_account_code, gl_account_name, side, account_type, amount, smart_code, payment_method, invoice_txn_ref)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// queueTransactionInserts stages the header and line inserts for a
// transaction on the given batch.
func queueTransactionInserts(batch *pgx.Batch, txn domain.LedgerTransaction) {
	batch.Queue(insertTransactionQuery,
		txn.TransactionID,
		txn.OrganizationID,
		txn.Kind,
		txn.SmartCode,
		txn.TransactionDate,
		txn.TotalAmount,
		txn.CustomerRef,
		txn.DueDate,
		nullable(txn.ReferenceTxnID),
		nullable(txn.PaymentMethod),
		txn.Status,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	for _, line := range txn.Lines {
		batch.Queue(insertLineQuery,
			txn.TransactionID,
			line.LineNumber,
			line.LineType,
			line.Description,
			line.Quantity,
			line.UnitAmount,
			line.LineAmount,
			nullable(line.EntityRef),
			line.LineData.GLAccountCode,
			line.LineData.GLAccountName,
			line.LineData.Side,
			line.LineData.AccountType,
			line.LineData.Amount,
			line.LineData.SmartCode,
			nullable(line.LineData.PaymentMethod),
			nullable(line.LineData.InvoiceTransactionRef),
		)
	}
}

// SaveTransaction saves a transaction header and its GL lines within one
// database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.LedgerTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	queueTransactionInserts(batch, txn)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute insert batch for transaction %s: %w", txn.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveSettlement saves a payment or cancellation transaction and updates the
// settled invoice's status within the same database transaction, so a
// settlement can never post without its status flip (or vice versa).
func (r *PgxTransactionRepository) SaveSettlement(ctx context.Context, txn domain.LedgerTransaction, invoiceTxnID string, invoiceStatus domain.TransactionStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	queueTransactionInserts(batch, txn)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute insert batch for settlement %s: %w", txn.TransactionID, err)
	}

	// Guard on OPEN so a concurrent settlement of the same invoice loses.
	tag, err := tx.Exec(ctx, `
		UPDATE ledger_transactions
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4 AND organization_id = $5 AND status = $6;
	`, invoiceStatus, txn.CreatedAt, txn.CreatedBy, invoiceTxnID, txn.OrganizationID, domain.StatusOpen)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s status: %w", invoiceTxnID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s is no longer open", apperrors.ErrConflict, invoiceTxnID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement %s: %w", txn.TransactionID, err)
	}
	return nil
}

const selectTransactionColumns = `
	transaction_id, organization_id, kind, smart_code, transaction_date, total_amount, customer_ref, due_date, reference_txn_id, payment_method, status, created_at, created_by, last_updated_at, last_updated_by
`

func scanTransaction(row pgx.Row) (*domain.LedgerTransaction, error) {
	var txn domain.LedgerTransaction
	var referenceTxnID, paymentMethod *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.OrganizationID,
		&txn.Kind,
		&txn.SmartCode,
		&txn.TransactionDate,
		&txn.TotalAmount,
		&txn.CustomerRef,
		&txn.DueDate,
		&referenceTxnID,
		&paymentMethod,
		&txn.Status,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if referenceTxnID != nil {
		txn.ReferenceTxnID = *referenceTxnID
	}
	if paymentMethod != nil {
		txn.PaymentMethod = *paymentMethod
	}
	return &txn, nil
}

// FindTransactionByID retrieves a transaction header and its lines.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.LedgerTransaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM ledger_transactions
		WHERE organization_id = $1 AND transaction_id = $2;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, organizationID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	lines, err := r.findLines(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines
	return txn, nil
}

func (r *PgxTransactionRepository) findLines(ctx context.Context, transactionID string) ([]domain.GLTransactionLine, error) {
	query := `
		SELECT line_number, line_type, description, quantity, unit_amount, line_amount, entity_ref, gl_account_code, gl_account_name, side, account_type, amount, smart_code, payment_method, invoice_txn_ref
		FROM ledger_transaction_lines
		WHERE transaction_id = $1
		ORDER BY line_number;
	`
	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var lines []domain.GLTransactionLine
	for rows.Next() {
		var line domain.GLTransactionLine
		var entityRef, paymentMethod, invoiceTxnRef *string
		if err := rows.Scan(
			&line.LineNumber,
			&line.LineType,
			&line.Description,
			&line.Quantity,
			&line.UnitAmount,
			&line.LineAmount,
			&entityRef,
			&line.LineData.GLAccountCode,
			&line.LineData.GLAccountName,
			&line.LineData.Side,
			&line.LineData.AccountType,
			&line.LineData.Amount,
			&line.LineData.SmartCode,
			&paymentMethod,
			&invoiceTxnRef,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		if entityRef != nil {
			line.EntityRef = *entityRef
		}
		if paymentMethod != nil {
			line.LineData.PaymentMethod = *paymentMethod
		}
		if invoiceTxnRef != nil {
			line.LineData.InvoiceTransactionRef = *invoiceTxnRef
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// ListInvoices retrieves invoice headers (without lines) for an
// organization, newest first.
func (r *PgxTransactionRepository) ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.LedgerTransaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM ledger_transactions
		WHERE organization_id = $1 AND kind = $2
		ORDER BY transaction_date DESC, transaction_id
		LIMIT $3 OFFSET $4;
	`
	return r.listTransactions(ctx, query, organizationID, domain.KindInvoice, limit, offset)
}

// ListOpenInvoices retrieves every OPEN invoice header for an organization.
func (r *PgxTransactionRepository) ListOpenInvoices(ctx context.Context, organizationID string) ([]domain.LedgerTransaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM ledger_transactions
		WHERE organization_id = $1 AND kind = $2 AND status = $3
		ORDER BY due_date, transaction_id;
	`
	return r.listTransactions(ctx, query, organizationID, domain.KindInvoice, domain.StatusOpen)
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.LedgerTransaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.LedgerTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
