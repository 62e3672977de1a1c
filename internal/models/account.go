package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persistence model for the accounts table.
type Account struct {
	AccountID string          `db:"account_id"`
	Name      string          `db:"name"`
	BankRef   string          `db:"bank_ref"`
	Balance   decimal.Decimal `db:"balance"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}
