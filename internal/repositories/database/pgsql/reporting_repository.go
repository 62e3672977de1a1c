package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for ledger aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetDailyCashFlow sums income and expense magnitudes for one business date.
// Expenses are stored negative, so the magnitude is the negated sum.
func (r *PgxReportingRepository) GetDailyCashFlow(ctx context.Context, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN -amount ELSE 0 END), 0)
		FROM transactions
		WHERE transaction_date = $1 AND type IN ('INCOME', 'EXPENSE');
	`

	var income, expenses decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, date).Scan(&income, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to compute daily cash flow for %s: %w", date.Format("2006-01-02"), err)
	}
	return income, expenses, nil
}

// GetCategorySummary aggregates absolute amounts per (category, type) over an
// inclusive date range, largest first. Transfers carry no category and are
// excluded by type.
func (r *PgxReportingRepository) GetCategorySummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummaryRow, error) {
	query := `
		SELECT category, type, COALESCE(SUM(ABS(amount)), 0) AS total
		FROM transactions
		WHERE transaction_date >= $1 AND transaction_date <= $2
		  AND type IN ('INCOME', 'EXPENSE')
		GROUP BY category, type
		ORDER BY total DESC, category;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer rows.Close()

	summary := []domain.CategorySummaryRow{}
	for rows.Next() {
		var row domain.CategorySummaryRow
		var txnType string
		if err := rows.Scan(&row.Category, &txnType, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category summary row: %w", err)
		}
		row.Type = domain.TransactionType(txnType)
		summary = append(summary, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category summary rows: %w", rows.Err())
	}

	return summary, nil
}

// GetTotalBalance sums the cached balances of all active accounts.
func (r *PgxReportingRepository) GetTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE is_active = TRUE;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total balance: %w", err)
	}
	return total, nil
}
