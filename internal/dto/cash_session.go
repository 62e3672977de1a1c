package dto

import (
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenCashSessionRequest defines the data needed to open the register drawer.
type OpenCashSessionRequest struct {
	OpeningAmount decimal.Decimal `json:"openingAmount" binding:"gte=0"`
	Notes         string          `json:"notes"`
}

// CloseCashSessionRequest defines the data needed to close the register drawer.
type CloseCashSessionRequest struct {
	ClosingAmount decimal.Decimal `json:"closingAmount" binding:"gte=0"`
	Notes         string          `json:"notes"`
}

// CashSessionResponse defines the data returned for a register session.
type CashSessionResponse struct {
	SessionID      string                   `json:"sessionID"`
	Status         domain.CashSessionStatus `json:"status"`
	OpenedAt       time.Time                `json:"openedAt"`
	OpenedBy       string                   `json:"openedBy"`
	OpeningAmount  decimal.Decimal          `json:"openingAmount"`
	ClosedAt       *time.Time               `json:"closedAt,omitempty"`
	ClosedBy       string                   `json:"closedBy,omitempty"`
	ClosingAmount  *decimal.Decimal         `json:"closingAmount,omitempty"`
	ExpectedAmount *decimal.Decimal         `json:"expectedAmount,omitempty"`
	Difference     *decimal.Decimal         `json:"difference,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
}

// ToCashSessionResponse converts a domain.CashSession to CashSessionResponse DTO
func ToCashSessionResponse(s *domain.CashSession) CashSessionResponse {
	return CashSessionResponse{
		SessionID:      s.SessionID,
		Status:         s.Status,
		OpenedAt:       s.OpenedAt,
		OpenedBy:       s.OpenedBy,
		OpeningAmount:  s.OpeningAmount,
		ClosedAt:       s.ClosedAt,
		ClosedBy:       s.ClosedBy,
		ClosingAmount:  s.ClosingAmount,
		ExpectedAmount: s.ExpectedAmount,
		Difference:     s.Difference,
		Notes:          s.Notes,
	}
}

// ToListCashSessionResponse converts a slice of sessions to response DTOs
func ToListCashSessionResponse(sessions []domain.CashSession) []CashSessionResponse {
	res := make([]CashSessionResponse, len(sessions))
	for i, s := range sessions {
		res[i] = ToCashSessionResponse(&s)
	}
	return res
}

// ListCashSessionsParams defines query parameters for the session history.
type ListCashSessionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListCashSessionsResponse wraps the session history page.
type ListCashSessionsResponse struct {
	Sessions  []CashSessionResponse `json:"sessions"`
	NextToken *string               `json:"nextToken,omitempty"`
}
