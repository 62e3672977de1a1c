package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	"github.com/sapataria/caixa_backend/internal/models"
	"github.com/sapataria/caixa_backend/internal/utils/mapping"
	"github.com/sapataria/caixa_backend/internal/utils/pagination"
)

const transactionColumns = `transaction_id, type, amount, description, category, reference_type, reference_id, reference_number, payment_method, transaction_date, source_account_id, destination_account_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger data.
// It needs the account repository for row locking and balance updates inside
// its write transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var sourceID, destinationID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.ReferenceNumber,
		&m.PaymentMethod,
		&m.TransactionDate,
		&sourceID,
		&destinationID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	m.SourceAccountID = sourceID.String
	m.DestinationAccountID = destinationID.String
	return m, nil
}

// lockAccounts locks every account touched by the balance changes and returns
// the locked rows keyed by account ID.
func (r *PgxTransactionRepository) lockAccounts(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	return r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
}

func (r *PgxTransactionRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.Amount,
		m.Description,
		m.Category,
		m.ReferenceType,
		m.ReferenceID,
		m.ReferenceNumber,
		m.PaymentMethod,
		m.TransactionDate,
		nullIfEmpty(m.SourceAccountID),
		nullIfEmpty(m.DestinationAccountID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction persists a ledger entry and applies its balance deltas in a
// single database transaction. For transfers the source balance is re-checked
// under the row lock; this is the check that actually prevents overdrawing.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockedAccounts, err := r.lockAccounts(ctx, tx, balanceChanges)
	if err != nil {
		return err
	}

	if txn.Type == domain.Transfer {
		source, ok := lockedAccounts[txn.SourceAccountID]
		if !ok {
			return fmt.Errorf("%w: source account %s", apperrors.ErrNotFound, txn.SourceAccountID)
		}
		if source.Balance.LessThan(txn.Amount) {
			return fmt.Errorf("%w: balance %s is less than transfer amount %s",
				apperrors.ErrInsufficientFunds, source.Balance.String(), txn.Amount.String())
		}
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	if err := r.insertTransactionInTx(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveAccountWithOpeningEntry inserts the account row and its opening-balance
// ledger entry in one database transaction. The freshly inserted row is
// already locked by this transaction, so no explicit FOR UPDATE is needed.
func (r *PgxTransactionRepository) SaveAccountWithOpeningEntry(ctx context.Context, account domain.Account, opening domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		return err
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, opening.BalanceChanges(), opening.CreatedBy, opening.CreatedAt); err != nil {
		return err
	}

	if err := r.insertTransactionInTx(ctx, tx, mapping.ToModelTransaction(opening)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites a ledger entry's mutable fields and applies the
// compensating balance deltas in the same transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $2, description = $3, category = $4, reference_number = $5, payment_method = $6, transaction_date = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Description,
		m.Category,
		m.ReferenceNumber,
		m.PaymentMethod,
		m.TransactionDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes one entry, reversing its balance effect before the
// row disappears.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// DeleteTransactionsByReference removes every entry caused by one external
// domain object. The aggregate reversal is computed from the rows themselves
// inside the transaction, so a concurrent writer cannot skew it.
func (r *PgxTransactionRepository) DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string, userID string, now time.Time) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference_type = $1 AND reference_id = $2
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, string(refType), refID)
	if err != nil {
		return 0, fmt.Errorf("failed to query transactions for reference %s/%s: %w", refType, refID, err)
	}

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan transaction row for reference delete: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating transaction rows for reference delete: %w", err)
	}

	if len(txns) == 0 {
		return 0, nil
	}

	reversal := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		for accountID, delta := range txn.ReversalChanges() {
			reversal[accountID] = reversal[accountID].Add(delta)
		}
	}
	for accountID, delta := range reversal {
		if delta.IsZero() {
			delete(reversal, accountID)
		}
	}

	if _, err := r.lockAccounts(ctx, tx, reversal); err != nil {
		return 0, err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, reversal, userID, now); err != nil {
		return 0, err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE reference_type = $1 AND reference_id = $2;`, string(refType), refID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions for reference %s/%s: %w", refType, refID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// FindTransactionByID retrieves a single ledger entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactionsByDateRange retrieves all entries in [from, to] inclusive,
// ordered by business date then creation order.
func (r *PgxTransactionRepository) ListTransactionsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_date >= $1 AND transaction_date <= $2
		ORDER BY transaction_date, created_at;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by date range: %w", err)
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListTransactionsByAccountID retrieves a cursor-paginated account statement,
// newest first. The cursor is the (transaction_date, created_at) pair of the
// last row of the previous page.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (source_account_id = $1 OR destination_account_id = $1)
	`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // one extra row to detect the next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, rows.Err())
	}

	var newToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newToken = &token
	}

	return mapping.ToDomainTransactionSlice(ms), newToken, nil
}

// FindTransactionsByReference retrieves every entry caused by one external domain object.
func (r *PgxTransactionRepository) FindTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at;
	`

	rows, err := r.Pool.Query(ctx, query, string(refType), refID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by reference %s/%s: %w", refType, refID, err)
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row by reference: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows by reference: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(ms), nil
}

// SumCashEffects returns the net signed effect of cash-method income and
// expense entries created at or after the given instant. The signed storage
// convention makes this a plain SUM; transfers never carry a payment method
// and are excluded by type.
func (r *PgxTransactionRepository) SumCashEffects(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE payment_method = $1
		  AND type IN ('INCOME', 'EXPENSE')
		  AND created_at >= $2;
	`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, domain.PaymentMethodCash, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum cash effects since %s: %w", since, err)
	}
	return total, nil
}
