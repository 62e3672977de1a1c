package repositories

import (
	"context"

	"github.com/sapataria/caixa_backend/internal/core/domain"
)

// CashSessionRepositoryFacade defines persistence for cash register sessions.
type CashSessionRepositoryFacade interface {
	// SaveSession persists a newly opened session. The partial unique index on
	// open sessions turns a race between two openers into apperrors.ErrConflict.
	SaveSession(ctx context.Context, session domain.CashSession) error

	// FindSessionByID retrieves a session by its identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenSession retrieves the currently open session, or
	// apperrors.ErrNotFound when the drawer is closed.
	FindOpenSession(ctx context.Context) (*domain.CashSession, error)

	// CloseSession persists the close of the given session: counted, expected
	// and difference amounts, closing actor and timestamp, status CLOSED. It
	// only matches a row that is still OPEN.
	CloseSession(ctx context.Context, session domain.CashSession) error

	// ListSessions retrieves a cursor-paginated session history, newest first.
	ListSessions(ctx context.Context, limit int, nextToken *string) ([]domain.CashSession, *string, error)
}
