package services

import (
	"context"
	"time"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/playware/game_lounge_app/internal/dto"
)

// SessionSvcFacade defines the game session lifecycle and query operations.
type SessionSvcFacade interface {
	// StartSession opens a new ACTIVE session starting now.
	StartSession(ctx context.Context, req dto.StartSessionRequest) (*domain.GameSession, error)

	// CloseSession moves an ACTIVE session to COMPLETED, computing the amount
	// due from elapsed time and reconciling it against the collected payment.
	// When cash was received, a CREDIT ledger entry is appended atomically with
	// the session update. Closing an unknown or already-completed session fails
	// with apperrors.ErrNotFound.
	CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest) (*domain.GameSession, error)

	// GetSessionByID retrieves a single session.
	GetSessionByID(ctx context.Context, sessionID string) (*domain.GameSession, error)

	// ListActiveSessions lists sessions still running, newest first.
	ListActiveSessions(ctx context.Context) ([]domain.GameSession, error)

	// ListCompletedSessions lists completed sessions, optionally restricted to
	// a creation-time range, newest first by creation time.
	ListCompletedSessions(ctx context.Context, from, to *time.Time) ([]domain.GameSession, error)

	// ListRecentCompletedSessions lists sessions that ended within the trailing
	// 24 hours, most recently ended first.
	ListRecentCompletedSessions(ctx context.Context) ([]domain.GameSession, error)
}
