package dto

import (
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailyCashFlowParams defines query parameters for the single-day summary.
type DailyCashFlowParams struct {
	Date time.Time `form:"date" binding:"required" time_format:"2006-01-02"`
}

// DailyCashFlowResponse summarizes one calendar day of ledger activity.
type DailyCashFlowResponse struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToDailyCashFlowResponse converts a domain.DailyCashFlow to its DTO
func ToDailyCashFlowResponse(d *domain.DailyCashFlow) DailyCashFlowResponse {
	return DailyCashFlowResponse{
		Date:     d.Date.Format("2006-01-02"),
		Income:   d.Income,
		Expenses: d.Expenses,
		Balance:  d.Balance,
	}
}

// CashFlowSeriesParams defines query parameters for the day-by-day series.
type CashFlowSeriesParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// CashFlowPointResponse is one row of the day-by-day cash flow series.
type CashFlowPointResponse struct {
	Date           string          `json:"date"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Balance        decimal.Decimal `json:"balance"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// CashFlowSeriesResponse wraps the series rows.
type CashFlowSeriesResponse struct {
	Points []CashFlowPointResponse `json:"points"`
}

// ToCashFlowSeriesResponse converts domain series points to their DTO form
func ToCashFlowSeriesResponse(points []domain.CashFlowPoint) CashFlowSeriesResponse {
	res := CashFlowSeriesResponse{Points: make([]CashFlowPointResponse, len(points))}
	for i, p := range points {
		res.Points[i] = CashFlowPointResponse{
			Date:           p.Date.Format("2006-01-02"),
			Income:         p.Income,
			Expenses:       p.Expenses,
			Balance:        p.Balance,
			RunningBalance: p.RunningBalance,
		}
	}
	return res
}

// CategorySummaryParams defines query parameters for the category breakdown.
type CategorySummaryParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// CategorySummaryRowResponse aggregates one category for one transaction type.
type CategorySummaryRowResponse struct {
	Category string                 `json:"category"`
	Type     domain.TransactionType `json:"type"`
	Amount   decimal.Decimal        `json:"amount"`
}

// CategorySummaryResponse wraps the category breakdown rows.
type CategorySummaryResponse struct {
	Rows []CategorySummaryRowResponse `json:"rows"`
}

// ToCategorySummaryResponse converts domain summary rows to their DTO form
func ToCategorySummaryResponse(rows []domain.CategorySummaryRow) CategorySummaryResponse {
	res := CategorySummaryResponse{Rows: make([]CategorySummaryRowResponse, len(rows))}
	for i, r := range rows {
		res.Rows[i] = CategorySummaryRowResponse{
			Category: r.Category,
			Type:     r.Type,
			Amount:   r.Amount,
		}
	}
	return res
}

// TotalBalanceResponse is the sum of all active account balances.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// TransactionWithRunningBalanceResponse pairs a ledger entry with its running balance.
type TransactionWithRunningBalanceResponse struct {
	TransactionResponse
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// RunningBalanceResponse wraps the replayed statement rows.
type RunningBalanceResponse struct {
	Transactions []TransactionWithRunningBalanceResponse `json:"transactions"`
}

// ToRunningBalanceResponse converts replayed rows to their DTO form
func ToRunningBalanceResponse(rows []domain.TransactionWithRunningBalance) RunningBalanceResponse {
	res := RunningBalanceResponse{Transactions: make([]TransactionWithRunningBalanceResponse, len(rows))}
	for i, r := range rows {
		res.Transactions[i] = TransactionWithRunningBalanceResponse{
			TransactionResponse: ToTransactionResponse(&r.Transaction),
			RunningBalance:      r.RunningBalance,
		}
	}
	return res
}
