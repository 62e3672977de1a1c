package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	"github.com/sapataria/caixa_backend/internal/models"
	"github.com/sapataria/caixa_backend/internal/utils/mapping"
	"github.com/sapataria/caixa_backend/internal/utils/pagination"
)

const cashSessionColumns = `session_id, status, opened_at, opened_by, opening_amount, closed_at, closed_by, closing_amount, expected_amount, difference, notes`

type PgxCashSessionRepository struct {
	BaseRepository
}

// newPgxCashSessionRepository creates a new repository for cash session data.
func newPgxCashSessionRepository(pool *pgxpool.Pool) portsrepo.CashSessionRepositoryFacade {
	return &PgxCashSessionRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCashSessionRepository implements portsrepo.CashSessionRepositoryFacade
var _ portsrepo.CashSessionRepositoryFacade = (*PgxCashSessionRepository)(nil)

func scanCashSession(row pgx.Row) (models.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.SessionID,
		&m.Status,
		&m.OpenedAt,
		&m.OpenedBy,
		&m.OpeningAmount,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.ClosingAmount,
		&m.ExpectedAmount,
		&m.Difference,
		&m.Notes,
	)
	return m, err
}

// SaveSession persists a newly opened session. The partial unique index on
// open sessions rejects a second concurrent opener with a unique violation,
// which surfaces as apperrors.ErrConflict.
func (r *PgxCashSessionRepository) SaveSession(ctx context.Context, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)

	query := `
		INSERT INTO cash_sessions (` + cashSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SessionID,
		m.Status,
		m.OpenedAt,
		m.OpenedBy,
		m.OpeningAmount,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingAmount,
		m.ExpectedAmount,
		m.Difference,
		m.Notes,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: an open session already exists", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to save cash session %s: %w", m.SessionID, err)
	}
	return nil
}

// FindSessionByID retrieves a session by its identifier.
func (r *PgxCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE session_id = $1;`

	m, err := scanCashSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash session by ID %s: %w", sessionID, err)
	}

	d := mapping.ToDomainCashSession(m)
	return &d, nil
}

// FindOpenSession retrieves the currently open session.
func (r *PgxCashSessionRepository) FindOpenSession(ctx context.Context) (*domain.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE status = 'OPEN';`

	m, err := scanCashSession(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open cash session: %w", err)
	}

	d := mapping.ToDomainCashSession(m)
	return &d, nil
}

// CloseSession persists the close of the given session. Matching on status
// OPEN makes a double close a no-op that surfaces as a conflict.
func (r *PgxCashSessionRepository) CloseSession(ctx context.Context, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)

	query := `
		UPDATE cash_sessions
		SET status = $2, closed_at = $3, closed_by = $4, closing_amount = $5, expected_amount = $6, difference = $7, notes = $8
		WHERE session_id = $1 AND status = 'OPEN';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SessionID,
		m.Status,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingAmount,
		m.ExpectedAmount,
		m.Difference,
		m.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to close cash session %s: %w", m.SessionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindSessionByID(ctx, m.SessionID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check session status after close attempt for %s: %w", m.SessionID, findErr)
		}
		return fmt.Errorf("%w: session %s is already closed", apperrors.ErrConflict, m.SessionID)
	}

	return nil
}

// ListSessions retrieves a cursor-paginated session history, newest first.
// The cursor is the (opened_at, opened_at) pair of the last row; sessions have
// no separate business date, so opened_at serves as both halves.
func (r *PgxCashSessionRepository) ListSessions(ctx context.Context, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastOpenedAt, _, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` WHERE opened_at < $1`
		args = append(args, lastOpenedAt)
	}

	query += fmt.Sprintf(` ORDER BY opened_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query cash sessions: %w", err)
	}
	defer rows.Close()

	ms := []models.CashSession{}
	for rows.Next() {
		m, err := scanCashSession(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan cash session row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating cash session rows: %w", rows.Err())
	}

	var newToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.OpenedAt, last.OpenedAt)
		newToken = &token
	}

	return mapping.ToDomainCashSessionSlice(ms), newToken, nil
}
