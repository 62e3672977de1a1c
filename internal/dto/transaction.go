package dto

import (
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a manual ledger entry.
// Transfers are not created through this path; they go through the transfer endpoint.
type CreateTransactionRequest struct {
	Type            domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"gt=0"`
	Description     string                 `json:"description" binding:"required"`
	Category        string                 `json:"category"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ReferenceNumber string                 `json:"referenceNumber"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required" time_format:"2006-01-02"`
	AccountID       string                 `json:"accountID" binding:"required"`
}

// CreateReferencedTransactionRequest defines the data needed to record a
// ledger entry on behalf of an external domain object (a repair order, sale
// or supplier bill). The host application calls this when one of those
// workflows moves money.
type CreateReferencedTransactionRequest struct {
	Type            domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"gt=0"`
	Description     string                 `json:"description" binding:"required"`
	Category        string                 `json:"category"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ReferenceType   domain.ReferenceType   `json:"referenceType" binding:"required,oneof=order sale bill"`
	ReferenceID     string                 `json:"referenceID" binding:"required"`
	ReferenceNumber string                 `json:"referenceNumber"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required" time_format:"2006-01-02"`
	AccountID       string                 `json:"accountID" binding:"required"`
}

// ToTransaction maps the request onto a domain transaction. Audit fields and
// the transaction ID are filled in by the service.
func (r CreateReferencedTransactionRequest) ToTransaction() domain.Transaction {
	txn := domain.Transaction{
		Type:            r.Type,
		Amount:          r.Amount,
		Description:     r.Description,
		Category:        r.Category,
		PaymentMethod:   r.PaymentMethod,
		ReferenceType:   r.ReferenceType,
		ReferenceID:     r.ReferenceID,
		ReferenceNumber: r.ReferenceNumber,
		TransactionDate: r.TransactionDate,
	}
	if r.Type == domain.Expense {
		txn.SourceAccountID = r.AccountID
	} else {
		txn.DestinationAccountID = r.AccountID
	}
	return txn
}

// UpdateTransactionRequest defines the fields an operator may rewrite on a
// manual entry. Pointers distinguish omitted fields from zero values.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	PaymentMethod   *string          `json:"paymentMethod"`
	ReferenceNumber *string          `json:"referenceNumber"`
	TransactionDate *time.Time       `json:"transactionDate" time_format:"2006-01-02"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	Type                 domain.TransactionType `json:"type"`
	Amount               decimal.Decimal        `json:"amount"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category,omitempty"`
	ReferenceType        domain.ReferenceType   `json:"referenceType"`
	ReferenceID          string                 `json:"referenceID,omitempty"`
	ReferenceNumber      string                 `json:"referenceNumber,omitempty"`
	PaymentMethod        string                 `json:"paymentMethod,omitempty"`
	TransactionDate      time.Time              `json:"transactionDate"`
	SourceAccountID      string                 `json:"sourceAccountID,omitempty"`
	DestinationAccountID string                 `json:"destinationAccountID,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	CreatedBy            string                 `json:"createdBy"`
	LastUpdatedAt        time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy        string                 `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Type:                 txn.Type,
		Amount:               txn.Amount,
		Description:          txn.Description,
		Category:             txn.Category,
		ReferenceType:        txn.ReferenceType,
		ReferenceID:          txn.ReferenceID,
		ReferenceNumber:      txn.ReferenceNumber,
		PaymentMethod:        txn.PaymentMethod,
		TransactionDate:      txn.TransactionDate,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		CreatedAt:            txn.CreatedAt,
		CreatedBy:            txn.CreatedBy,
		LastUpdatedAt:        txn.LastUpdatedAt,
		LastUpdatedBy:        txn.LastUpdatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for the date-range listing.
type ListTransactionsParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// ListTransactionsByAccountParams defines query parameters for an account statement.
type ListTransactionsByAccountParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a list of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TransactionsByReferenceParams identifies every ledger entry caused by one
// external domain object.
type TransactionsByReferenceParams struct {
	ReferenceType domain.ReferenceType `form:"referenceType" binding:"required,oneof=order sale bill"`
	ReferenceID   string               `form:"referenceID" binding:"required"`
}

// DeleteByReferenceResponse reports how many entries a cascade delete removed.
type DeleteByReferenceResponse struct {
	DeletedCount int `json:"deletedCount"`
}
