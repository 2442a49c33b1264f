package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playware/game_lounge_app/internal/apperrors"
	"github.com/playware/game_lounge_app/internal/core/domain"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/utils/pricing"
)

// cashPaymentDescription is the ledger description for entries generated
// automatically when a session closes with cash collected.
const cashPaymentDescription = "Game session cash payment"

// mismatchTolerance is one currency minor unit: collected and due amounts
// differing by no more than this are considered reconciled.
var mismatchTolerance = decimal.NewFromFloat(0.01)

// sessionService implements the game session lifecycle.
type sessionService struct {
	BaseService
	sessionRepo portsrepo.SessionRepositoryFacade
}

// SessionServiceOption is a functional option for configuring the session service.
type SessionServiceOption func(*sessionService)

// WithSessionClock overrides the service clock, used in tests.
func WithSessionClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// NewSessionService creates a new session service.
func NewSessionService(repo portsrepo.SessionRepositoryFacade, options ...SessionServiceOption) portssvc.SessionSvcFacade {
	svc := &sessionService{
		sessionRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure sessionService implements the SessionSvcFacade interface
var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// StartSession opens a new ACTIVE session. Validation failures are rejected
// before anything is persisted.
func (s *sessionService) StartSession(ctx context.Context, req dto.StartSessionRequest) (*domain.GameSession, error) {
	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	stationType := domain.StationType(req.StationType)
	if !stationType.IsValid() {
		return nil, fmt.Errorf("%w: unknown station type %q", apperrors.ErrValidation, req.StationType)
	}

	controllerCount := req.ControllerCount
	if stationType == domain.StationPool {
		// Pool tables have no controllers; normalise whatever the caller sent.
		controllerCount = 0
	} else if controllerCount < 1 || controllerCount > 4 {
		return nil, fmt.Errorf("%w: controller count must be between 1 and 4", apperrors.ErrValidation)
	}

	now := s.Now()
	session := domain.GameSession{
		SessionID:       uuid.NewString(),
		CustomerName:    customer,
		ControllerCount: controllerCount,
		StationType:     stationType,
		StartTime:       now,
		CalculatedPrice: decimal.Zero,
		TotalPrice:      decimal.Zero,
		CashReceived:    decimal.Zero,
		OnlineReceived:  decimal.Zero,
		Status:          domain.SessionActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to save new session", slog.String("session_id", session.SessionID))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.LogInfo(ctx, "Session started",
		slog.String("session_id", session.SessionID),
		slog.String("station_type", string(stationType)),
		slog.Int("controller_count", controllerCount))
	return &session, nil
}

// CloseSession completes an ACTIVE session: it meters elapsed time, computes
// the amount due, reconciles it against what was collected, and persists the
// terminal state. When cash was received the matching CREDIT ledger entry is
// written in the same database transaction as the session update.
func (s *sessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest) (*domain.GameSession, error) {
	if req.CashReceived.IsNegative() || req.OnlineReceived.IsNegative() {
		return nil, fmt.Errorf("%w: received amounts cannot be negative", apperrors.ErrValidation)
	}

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionActive {
		// A completed session is terminal; it cannot be closed again.
		return nil, fmt.Errorf("%w: session %s is already completed", apperrors.ErrNotFound, sessionID)
	}

	now := s.Now()
	elapsed := pricing.ElapsedMinutes(session.StartTime, now)
	billableHours := pricing.RoundToBillableHours(elapsed)

	due, err := pricing.CalculatePrice(session.StationType, session.ControllerCount, billableHours)
	if err != nil {
		// Capacity is validated at open, so this indicates a corrupted record.
		s.LogError(ctx, err, "Session has no applicable tariff",
			slog.String("session_id", sessionID),
			slog.Int("controller_count", session.ControllerCount))
		return nil, fmt.Errorf("%w: session %s", err, sessionID)
	}

	collected := req.CashReceived.Add(req.OnlineReceived)
	isMismatch := collected.Sub(due).Abs().GreaterThan(mismatchTolerance)

	mismatchReason := strings.TrimSpace(req.MismatchReason)
	if isMismatch && mismatchReason == "" {
		return nil, fmt.Errorf("%w: mismatch reason is required when collected amount differs from price", apperrors.ErrValidation)
	}
	if !isMismatch {
		mismatchReason = ""
	}

	session.EndTime = &now
	session.DurationMinutes = &elapsed
	session.CalculatedPrice = due
	session.TotalPrice = collected
	session.CashReceived = req.CashReceived
	session.OnlineReceived = req.OnlineReceived
	session.Status = domain.SessionCompleted
	session.IsMismatch = isMismatch
	session.MismatchReason = mismatchReason
	session.LastUpdatedAt = now

	var cashEntry *domain.LedgerEntry
	if req.CashReceived.IsPositive() {
		cashEntry = &domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			GameSessionID: session.SessionID,
			Amount:        req.CashReceived,
			Description:   cashPaymentDescription,
			Direction:     domain.Credit,
			EntryDate:     now,
			CreatedAt:     now,
		}
	}

	if err := s.sessionRepo.CompleteSession(ctx, *session, cashEntry); err != nil {
		s.LogError(ctx, err, "Failed to complete session", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	s.LogInfo(ctx, "Session completed",
		slog.String("session_id", sessionID),
		slog.Int("duration_minutes", elapsed),
		slog.String("billable_hours", billableHours.String()),
		slog.String("calculated_price", due.String()),
		slog.String("collected", collected.String()),
		slog.Bool("is_mismatch", isMismatch))
	return session, nil
}

// GetSessionByID retrieves a single session.
func (s *sessionService) GetSessionByID(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

// ListActiveSessions lists sessions still running, newest first.
func (s *sessionService) ListActiveSessions(ctx context.Context) ([]domain.GameSession, error) {
	sessions, err := s.sessionRepo.ListActiveSessions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active sessions")
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	return sessions, nil
}

// ListCompletedSessions lists completed sessions filtered by creation time.
func (s *sessionService) ListCompletedSessions(ctx context.Context, from, to *time.Time) ([]domain.GameSession, error) {
	sessions, err := s.sessionRepo.ListCompletedSessions(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list completed sessions")
		return nil, fmt.Errorf("failed to list completed sessions: %w", err)
	}
	return sessions, nil
}

// ListRecentCompletedSessions lists sessions that ended within the trailing
// 24 hours. Unlike ListCompletedSessions this filters on end time.
func (s *sessionService) ListRecentCompletedSessions(ctx context.Context) ([]domain.GameSession, error) {
	now := s.Now()
	sessions, err := s.sessionRepo.ListSessionsEndedBetween(ctx, now.Add(-24*time.Hour), now)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent completed sessions")
		return nil, fmt.Errorf("failed to list recent completed sessions: %w", err)
	}
	return sessions, nil
}
