package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playware/game_lounge_app/internal/apperrors"
	"github.com/playware/game_lounge_app/internal/core/domain"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	"github.com/playware/game_lounge_app/internal/models"
)

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for game session data.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryWithTx {
	return &PgxSessionRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxSessionRepository implements portsrepo.SessionRepositoryWithTx
var _ portsrepo.SessionRepositoryWithTx = (*PgxSessionRepository)(nil)

// Helper to convert domain.GameSession to models.GameSession for DB storage
func toModelSession(d domain.GameSession) models.GameSession {
	m := models.GameSession{
		SessionID:       d.SessionID,
		CustomerName:    d.CustomerName,
		ControllerCount: d.ControllerCount,
		StationType:     string(d.StationType),
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		DurationMinutes: d.DurationMinutes,
		CalculatedPrice: d.CalculatedPrice,
		TotalPrice:      d.TotalPrice,
		CashReceived:    d.CashReceived,
		OnlineReceived:  d.OnlineReceived,
		Status:          models.SessionStatus(d.Status),
		IsMismatch:      d.IsMismatch,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.MismatchReason != "" {
		reason := d.MismatchReason
		m.MismatchReason = &reason
	}
	return m
}

// Helper to convert models.GameSession from DB to domain.GameSession
func toDomainSession(m models.GameSession) domain.GameSession {
	d := domain.GameSession{
		SessionID:       m.SessionID,
		CustomerName:    m.CustomerName,
		ControllerCount: m.ControllerCount,
		StationType:     domain.StationType(m.StationType),
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		DurationMinutes: m.DurationMinutes,
		CalculatedPrice: m.CalculatedPrice,
		TotalPrice:      m.TotalPrice,
		CashReceived:    m.CashReceived,
		OnlineReceived:  m.OnlineReceived,
		Status:          domain.SessionStatus(m.Status),
		IsMismatch:      m.IsMismatch,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.MismatchReason != nil {
		d.MismatchReason = *m.MismatchReason
	}
	return d
}

const sessionColumns = `session_id, customer_name, controller_count, station_type, start_time, end_time,
	duration_minutes, calculated_price, total_price, cash_received, online_received, status,
	is_mismatch, mismatch_reason, created_at, last_updated_at`

func scanSession(row pgx.Row) (*models.GameSession, error) {
	var m models.GameSession
	err := row.Scan(
		&m.SessionID,
		&m.CustomerName,
		&m.ControllerCount,
		&m.StationType,
		&m.StartTime,
		&m.EndTime,
		&m.DurationMinutes,
		&m.CalculatedPrice,
		&m.TotalPrice,
		&m.CashReceived,
		&m.OnlineReceived,
		&m.Status,
		&m.IsMismatch,
		&m.MismatchReason,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSession inserts a newly opened session.
func (r *PgxSessionRepository) SaveSession(ctx context.Context, session domain.GameSession) error {
	m := toModelSession(session)

	query := `
		INSERT INTO game_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SessionID,
		m.CustomerName,
		m.ControllerCount,
		m.StationType,
		m.StartTime,
		m.EndTime,
		m.DurationMinutes,
		m.CalculatedPrice,
		m.TotalPrice,
		m.CashReceived,
		m.OnlineReceived,
		m.Status,
		m.IsMismatch,
		m.MismatchReason,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: session with ID %s already exists", apperrors.ErrDuplicate, m.SessionID)
		}
		return fmt.Errorf("failed to save session %s: %w", m.SessionID, err)
	}
	return nil
}

// FindSessionByID retrieves a single session.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM game_sessions WHERE session_id = $1;`

	m, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}

	session := toDomainSession(*m)
	return &session, nil
}

// CompleteSession writes the terminal session state and, when cashEntry is
// non-nil, the matching ledger entry, in one database transaction. The row
// update is guarded on status so a session can only transition out of ACTIVE
// once, whatever the service saw beforehand.
func (r *PgxSessionRepository) CompleteSession(ctx context.Context, session domain.GameSession, cashEntry *domain.LedgerEntry) error {
	m := toModelSession(session)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE game_sessions
		SET end_time = $2,
		    duration_minutes = $3,
		    calculated_price = $4,
		    total_price = $5,
		    cash_received = $6,
		    online_received = $7,
		    status = $8,
		    is_mismatch = $9,
		    mismatch_reason = $10,
		    last_updated_at = $11
		WHERE session_id = $1 AND status = 'ACTIVE';
	`,
		m.SessionID,
		m.EndTime,
		m.DurationMinutes,
		m.CalculatedPrice,
		m.TotalPrice,
		m.CashReceived,
		m.OnlineReceived,
		m.Status,
		m.IsMismatch,
		m.MismatchReason,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session %s: %w", m.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: session %s is not active", apperrors.ErrNotFound, m.SessionID)
	}

	if cashEntry != nil {
		if _, err := appendEntryTx(ctx, tx, toModelLedgerEntry(*cashEntry)); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ListActiveSessions retrieves ACTIVE sessions, newest first by creation time.
func (r *PgxSessionRepository) ListActiveSessions(ctx context.Context) ([]domain.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE status = 'ACTIVE'
		ORDER BY created_at DESC;
	`
	return r.querySessions(ctx, query)
}

// ListCompletedSessions retrieves COMPLETED sessions, optionally restricted to
// a creation-time range, newest first by creation time.
func (r *PgxSessionRepository) ListCompletedSessions(ctx context.Context, from, to *time.Time) ([]domain.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE status = 'COMPLETED'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC;
	`
	return r.querySessions(ctx, query, from, to)
}

// ListSessionsEndedBetween retrieves COMPLETED sessions whose end time falls
// within [from, to], most recently ended first.
func (r *PgxSessionRepository) ListSessionsEndedBetween(ctx context.Context, from, to time.Time) ([]domain.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE status = 'COMPLETED'
		  AND end_time >= $1
		  AND end_time <= $2
		ORDER BY end_time DESC;
	`
	return r.querySessions(ctx, query, from, to)
}

func (r *PgxSessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]domain.GameSession, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.GameSession
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, toDomainSession(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
