package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence model for the transactions table.
// Amount is stored signed: income positive, expense negative, transfer
// positive (direction carried by the two account columns). The domain layer
// always sees a positive magnitude plus the type tag; the mapping helpers
// convert between the two conventions.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	Type                 string          `db:"type"`
	Amount               decimal.Decimal `db:"amount"`
	Description          string          `db:"description"`
	Category             string          `db:"category"`
	ReferenceType        string          `db:"reference_type"`
	ReferenceID          string          `db:"reference_id"`
	ReferenceNumber      string          `db:"reference_number"`
	PaymentMethod        string          `db:"payment_method"`
	TransactionDate      time.Time       `db:"transaction_date"`
	SourceAccountID      string          `db:"source_account_id"`      // nullable
	DestinationAccountID string          `db:"destination_account_id"` // nullable
	AuditFields
}
