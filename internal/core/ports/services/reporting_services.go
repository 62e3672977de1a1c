package services

import (
	"context"
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade provides read-only aggregate views over the ledger.
type ReportingSvcFacade interface {
	// GetDailyCashFlow summarizes one calendar day. Transfers are excluded.
	GetDailyCashFlow(ctx context.Context, date time.Time) (*domain.DailyCashFlow, error)

	// GetCashFlowSeries produces one point per day over [from, to] inclusive,
	// including zero rows for days with no activity, with a running balance
	// accumulated across the range.
	GetCashFlowSeries(ctx context.Context, from, to time.Time) ([]domain.CashFlowPoint, error)

	// GetCategorySummary aggregates absolute amounts per (category, type) over
	// an inclusive date range, sorted descending by amount.
	GetCategorySummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummaryRow, error)

	// GetTotalBalance sums the cached balances of all active accounts.
	GetTotalBalance(ctx context.Context) (decimal.Decimal, error)

	// GetAccountStatementWithRunningBalance replays an account's entries in
	// chronological order, pairing each with the balance after it applied.
	GetAccountStatementWithRunningBalance(ctx context.Context, accountID string, from, to time.Time) ([]domain.TransactionWithRunningBalance, error)
}
