package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSession is the persistence model for the cash_sessions table.
// A partial unique index on status (WHERE status = 'OPEN') enforces the
// at-most-one-open-session invariant at the database level.
type CashSession struct {
	SessionID      string           `db:"session_id"`
	Status         string           `db:"status"`
	OpenedAt       time.Time        `db:"opened_at"`
	OpenedBy       string           `db:"opened_by"`
	OpeningAmount  decimal.Decimal  `db:"opening_amount"`
	ClosedAt       *time.Time       `db:"closed_at"`
	ClosedBy       *string          `db:"closed_by"`
	ClosingAmount  *decimal.Decimal `db:"closing_amount"`
	ExpectedAmount *decimal.Decimal `db:"expected_amount"`
	Difference     *decimal.Decimal `db:"difference"`
	Notes          string           `db:"notes"`
}
