package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
	"github.com/sapataria/caixa_backend/internal/dto"
	"github.com/sapataria/caixa_backend/internal/middleware"
)

// cashSessionService manages the register drawer lifecycle. Expected cash at
// close is reconstructed from the ledger, never tracked incrementally.
type cashSessionService struct {
	BaseService
	sessionRepo portsrepo.CashSessionRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewCashSessionService creates a new CashSessionService.
func NewCashSessionService(sessionRepo portsrepo.CashSessionRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.CashSessionSvcFacade {
	return &cashSessionService{
		sessionRepo: sessionRepo,
		txnRepo:     txnRepo,
	}
}

// Ensure cashSessionService implements the portssvc.CashSessionSvcFacade interface
var _ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)

func (s *cashSessionService) OpenSession(ctx context.Context, req dto.OpenCashSessionRequest, userID string) (*domain.CashSession, error) {
	if req.OpeningAmount.IsNegative() {
		return nil, fmt.Errorf("%w: opening amount cannot be negative", apperrors.ErrValidation)
	}

	session := domain.CashSession{
		SessionID:     uuid.NewString(),
		Status:        domain.SessionOpen,
		OpenedAt:      time.Now().UTC(),
		OpenedBy:      userID,
		OpeningAmount: req.OpeningAmount,
		Notes:         req.Notes,
	}

	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: a session is already open", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to open cash session")
		return nil, err
	}

	s.LogInfo(ctx, "Cash session opened",
		slog.String("session_id", session.SessionID),
		slog.String("opening_amount", session.OpeningAmount.String()))
	return &session, nil
}

func (s *cashSessionService) CloseSession(ctx context.Context, req dto.CloseCashSessionRequest, userID string) (*domain.CashSession, error) {
	if req.ClosingAmount.IsNegative() {
		return nil, fmt.Errorf("%w: closing amount cannot be negative", apperrors.ErrValidation)
	}

	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no open session to close", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load open session")
		return nil, err
	}

	cashEffect, err := s.txnRepo.SumCashEffects(ctx, session.OpenedAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum cash movements", slog.String("session_id", session.SessionID))
		return nil, err
	}

	expected := session.OpeningAmount.Add(cashEffect)
	difference := req.ClosingAmount.Sub(expected)

	// A mismatch between counted and expected cash is a shortage or surplus
	// and needs a manager to sign off on it.
	if !difference.IsZero() && middleware.GetRoleFromCtx(ctx) != middleware.RoleManager {
		return nil, fmt.Errorf("%w: closing with a difference of %s requires the manager role",
			apperrors.ErrForbidden, difference.String())
	}

	now := time.Now().UTC()
	session.Status = domain.SessionClosed
	session.ClosedAt = &now
	session.ClosedBy = userID
	session.ClosingAmount = &req.ClosingAmount
	session.ExpectedAmount = &expected
	session.Difference = &difference
	if req.Notes != "" {
		session.Notes = req.Notes
	}

	if err := s.sessionRepo.CloseSession(ctx, *session); err != nil {
		s.LogError(ctx, err, "Failed to close cash session", slog.String("session_id", session.SessionID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash session closed",
		slog.String("session_id", session.SessionID),
		slog.String("expected_amount", expected.String()),
		slog.String("difference", difference.String()))
	return session, nil
}

func (s *cashSessionService) GetCurrentSession(ctx context.Context) (*domain.CashSession, error) {
	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find open session")
		}
		return nil, err
	}
	return session, nil
}

func (s *cashSessionService) GetSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find session", slog.String("session_id", sessionID))
		}
		return nil, err
	}
	return session, nil
}

func (s *cashSessionService) ListSessions(ctx context.Context, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	sessions, token, err := s.sessionRepo.ListSessions(ctx, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sessions")
		return nil, nil, err
	}
	return sessions, token, nil
}
