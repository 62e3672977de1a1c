package mapping

import (
	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/sapataria/caixa_backend/internal/models"
)

// ToModelTransaction converts a domain transaction for DB storage, applying
// the signed-amount storage convention: expenses are stored negative.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	amount := d.Amount
	if d.Type == domain.Expense {
		amount = amount.Neg()
	}
	return models.Transaction{
		TransactionID:        d.TransactionID,
		Type:                 string(d.Type),
		Amount:               amount,
		Description:          d.Description,
		Category:             d.Category,
		ReferenceType:        string(d.ReferenceType),
		ReferenceID:          d.ReferenceID,
		ReferenceNumber:      d.ReferenceNumber,
		PaymentMethod:        d.PaymentMethod,
		TransactionDate:      d.TransactionDate,
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: d.DestinationAccountID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a persisted transaction back to the domain
// form, restoring the positive-magnitude convention.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		Type:                 domain.TransactionType(m.Type),
		Amount:               m.Amount.Abs(),
		Description:          m.Description,
		Category:             m.Category,
		ReferenceType:        domain.ReferenceType(m.ReferenceType),
		ReferenceID:          m.ReferenceID,
		ReferenceNumber:      m.ReferenceNumber,
		PaymentMethod:        m.PaymentMethod,
		TransactionDate:      m.TransactionDate,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of persisted transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
