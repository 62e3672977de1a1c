package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to move money between two accounts.
type CreateTransferRequest struct {
	SourceAccountID      string          `json:"sourceAccountID" binding:"required"`
	DestinationAccountID string          `json:"destinationAccountID" binding:"required"`
	Amount               decimal.Decimal `json:"amount" binding:"gt=0"`
	Description          string          `json:"description" binding:"required"`
	TransferDate         time.Time       `json:"transferDate" binding:"required" time_format:"2006-01-02"`
}
