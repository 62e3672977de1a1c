package services

import (
	"context"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// CashSessionSvcFacade manages the lifecycle of cash register sessions.
type CashSessionSvcFacade interface {
	// OpenSession opens the register drawer. Fails with apperrors.ErrConflict
	// when a session is already open.
	OpenSession(ctx context.Context, req dto.OpenCashSessionRequest, userID string) (*domain.CashSession, error)

	// CloseSession closes the open session, computing the expected cash amount
	// from the opening amount plus the net cash movements recorded while the
	// session was open. A nonzero difference requires the manager role.
	CloseSession(ctx context.Context, req dto.CloseCashSessionRequest, userID string) (*domain.CashSession, error)

	// GetCurrentSession retrieves the currently open session, or
	// apperrors.ErrNotFound when the drawer is closed.
	GetCurrentSession(ctx context.Context) (*domain.CashSession, error)

	// GetSessionByID retrieves one session by its identifier.
	GetSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// ListSessions retrieves a cursor-paginated session history, newest first.
	ListSessions(ctx context.Context, limit int, nextToken *string) ([]domain.CashSession, *string, error)
}
