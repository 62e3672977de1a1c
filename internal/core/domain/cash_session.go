package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSessionStatus indicates the state of a cash register session.
type CashSessionStatus string

const (
	SessionOpen   CashSessionStatus = "OPEN"
	SessionClosed CashSessionStatus = "CLOSED"
)

// CashSession represents one cash-drawer shift. At most one session is OPEN at
// any time; a session transitions once to CLOSED and is never reopened or
// deleted. Opening the drawer records a physical fact and writes no ledger row.
//
// ExpectedAmount is computed at close as the opening amount plus the net effect
// of every cash-method ledger entry recorded while the session was open.
// Difference = ClosingAmount - ExpectedAmount and is persisted even when zero.
type CashSession struct {
	SessionID      string
	Status         CashSessionStatus
	OpenedAt       time.Time
	OpenedBy       string
	OpeningAmount  decimal.Decimal
	ClosedAt       *time.Time
	ClosedBy       string
	ClosingAmount  *decimal.Decimal
	ExpectedAmount *decimal.Decimal
	Difference     *decimal.Decimal
	Notes          string
}
