package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
)

// reportingService produces read-only aggregate views over the ledger. Single
// day and category rollups run as SQL aggregates; the day-by-day series and
// the running balance replay are computed here so their row order and zero
// filling are deterministic.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	txnRepo       portsrepo.TransactionRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		txnRepo:       txnRepo,
		accountRepo:   accountRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetDailyCashFlow(ctx context.Context, date time.Time) (*domain.DailyCashFlow, error) {
	date = domain.DateOnly(date)
	income, expenses, err := s.reportingRepo.GetDailyCashFlow(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute daily cash flow")
		return nil, err
	}
	return &domain.DailyCashFlow{
		Date:     date,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}, nil
}

// GetCashFlowSeries produces one point per calendar day over [from, to],
// including zero rows for idle days. The running balance accumulates across
// the whole range.
func (s *reportingService) GetCashFlowSeries(ctx context.Context, from, to time.Time) ([]domain.CashFlowPoint, error) {
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListTransactionsByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for cash flow series")
		return nil, err
	}

	type dayTotals struct {
		income   decimal.Decimal
		expenses decimal.Decimal
	}
	perDay := make(map[time.Time]dayTotals)
	for _, txn := range txns {
		day := domain.DateOnly(txn.TransactionDate)
		totals := perDay[day]
		switch txn.Type {
		case domain.Income:
			totals.income = totals.income.Add(txn.Amount)
		case domain.Expense:
			totals.expenses = totals.expenses.Add(txn.Amount)
		}
		perDay[day] = totals
	}

	var points []domain.CashFlowPoint
	running := decimal.Zero
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		totals := perDay[day]
		balance := totals.income.Sub(totals.expenses)
		running = running.Add(balance)
		points = append(points, domain.CashFlowPoint{
			Date:           day,
			Income:         totals.income,
			Expenses:       totals.expenses,
			Balance:        balance,
			RunningBalance: running,
		})
	}
	return points, nil
}

func (s *reportingService) GetCategorySummary(ctx context.Context, from, to time.Time) ([]domain.CategorySummaryRow, error) {
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.GetCategorySummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute category summary")
		return nil, err
	}
	return rows, nil
}

func (s *reportingService) GetTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.reportingRepo.GetTotalBalance(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute total balance")
		return decimal.Zero, err
	}
	return total, nil
}

// GetAccountStatementWithRunningBalance replays one account's entries in
// chronological order. The running balance is relative to the start of the
// range: it begins at zero and accumulates each entry's signed effect on the
// account, so the same range always yields the same rows.
func (s *reportingService) GetAccountStatementWithRunningBalance(ctx context.Context, accountID string, from, to time.Time) ([]domain.TransactionWithRunningBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListTransactionsByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for statement")
		return nil, err
	}

	// The repository returns the range in chronological order; the replay
	// itself keeps whatever order it is handed.
	return domain.AttachRunningBalances(accountID, txns), nil
}
