package mapping

import (
	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/sapataria/caixa_backend/internal/models"
)

// ToModelCashSession converts a domain session for DB storage.
func ToModelCashSession(d domain.CashSession) models.CashSession {
	m := models.CashSession{
		SessionID:      d.SessionID,
		Status:         string(d.Status),
		OpenedAt:       d.OpenedAt,
		OpenedBy:       d.OpenedBy,
		OpeningAmount:  d.OpeningAmount,
		ClosedAt:       d.ClosedAt,
		ClosingAmount:  d.ClosingAmount,
		ExpectedAmount: d.ExpectedAmount,
		Difference:     d.Difference,
		Notes:          d.Notes,
	}
	if d.ClosedBy != "" {
		m.ClosedBy = &d.ClosedBy
	}
	return m
}

// ToDomainCashSession converts a persisted session back to the domain form.
func ToDomainCashSession(m models.CashSession) domain.CashSession {
	d := domain.CashSession{
		SessionID:      m.SessionID,
		Status:         domain.CashSessionStatus(m.Status),
		OpenedAt:       m.OpenedAt,
		OpenedBy:       m.OpenedBy,
		OpeningAmount:  m.OpeningAmount,
		ClosedAt:       m.ClosedAt,
		ClosingAmount:  m.ClosingAmount,
		ExpectedAmount: m.ExpectedAmount,
		Difference:     m.Difference,
		Notes:          m.Notes,
	}
	if m.ClosedBy != nil {
		d.ClosedBy = *m.ClosedBy
	}
	return d
}

// ToDomainCashSessionSlice converts a slice of persisted sessions.
func ToDomainCashSessionSlice(ms []models.CashSession) []domain.CashSession {
	ds := make([]domain.CashSession, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashSession(m)
	}
	return ds
}
