package repositories

import (
	"context"
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only aggregate queries over the ledger.
type ReportingRepository interface {
	// GetDailyCashFlow sums income and expense magnitudes for one business
	// date. Transfers are excluded.
	GetDailyCashFlow(ctx context.Context, date time.Time) (income, expenses decimal.Decimal, err error)

	// GetCategorySummary aggregates absolute amounts per (category, type) over
	// an inclusive date range, sorted descending by amount.
	GetCategorySummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummaryRow, error)

	// GetTotalBalance sums the cached balances of all active accounts.
	GetTotalBalance(ctx context.Context) (decimal.Decimal, error)
}
