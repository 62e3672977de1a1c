package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyCashFlow summarizes one calendar day of ledger activity.
// Income and Expenses are positive magnitudes; Balance is their difference.
// Transfers are internal movements and are excluded from all three.
type DailyCashFlow struct {
	Date     time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// CashFlowPoint is one row of a day-by-day cash flow series. RunningBalance
// accumulates across the whole requested range, not per day.
type CashFlowPoint struct {
	Date           time.Time
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Balance        decimal.Decimal
	RunningBalance decimal.Decimal
}

// CategorySummaryRow aggregates the absolute amount recorded under one
// category for one transaction type.
type CategorySummaryRow struct {
	Category string
	Type     TransactionType
	Amount   decimal.Decimal
}

// TransactionWithRunningBalance pairs a ledger entry with the running balance
// computed by replaying the containing list.
type TransactionWithRunningBalance struct {
	Transaction
	RunningBalance decimal.Decimal
}

// AttachRunningBalances replays the given entries in the order the caller
// supplies them and attaches the cumulative effect on the given account to
// each. The balance starts at zero, so it is relative to whatever point the
// list begins at. Entries with no effect on the account are dropped.
func AttachRunningBalances(accountID string, txns []Transaction) []TransactionWithRunningBalance {
	var rows []TransactionWithRunningBalance
	running := decimal.Zero
	for _, txn := range txns {
		effect := txn.EffectOn(accountID)
		if effect.IsZero() {
			continue
		}
		running = running.Add(effect)
		rows = append(rows, TransactionWithRunningBalance{
			Transaction:    txn,
			RunningBalance: running,
		})
	}
	return rows
}
