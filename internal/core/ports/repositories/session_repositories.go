package repositories

import (
	"context"
	"time"

	"github.com/playware/game_lounge_app/internal/core/domain"
)

// SessionReader defines read operations for game session data
type SessionReader interface {
	// FindSessionByID retrieves a specific session by its unique identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.GameSession, error)

	// ListActiveSessions retrieves all sessions still in the ACTIVE state,
	// newest first by creation time.
	ListActiveSessions(ctx context.Context) ([]domain.GameSession, error)

	// ListCompletedSessions retrieves COMPLETED sessions, optionally restricted
	// to those created within [from, to], newest first by creation time.
	ListCompletedSessions(ctx context.Context, from, to *time.Time) ([]domain.GameSession, error)

	// ListSessionsEndedBetween retrieves COMPLETED sessions whose end time falls
	// within [from, to], most recently ended first. This intentionally filters
	// on end time where ListCompletedSessions filters on creation time; the two
	// views serve different screens.
	ListSessionsEndedBetween(ctx context.Context, from, to time.Time) ([]domain.GameSession, error)
}

// SessionWriter defines write operations for game session data
type SessionWriter interface {
	// SaveSession persists a newly opened session.
	SaveSession(ctx context.Context, session domain.GameSession) error

	// CompleteSession persists the terminal state of a closed session and, when
	// cashEntry is non-nil, appends the cash ledger entry in the same database
	// transaction so neither store can be updated without the other. The
	// entry's running balance is stamped inside that transaction.
	CompleteSession(ctx context.Context, session domain.GameSession, cashEntry *domain.LedgerEntry) error
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}

// SessionRepositoryWithTx extends SessionRepositoryFacade with transaction capabilities
type SessionRepositoryWithTx interface {
	SessionRepositoryFacade
	TransactionManager
}
