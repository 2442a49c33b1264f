package services

import (
	"context"
	"fmt"
	"time"

	"github.com/playware/game_lounge_app/internal/core/domain"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
)

// reportingService implements the dashboard aggregation.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	ledgerRepo    portsrepo.LedgerReader
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the service clock, used in tests.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, ledgerRepo portsrepo.LedgerReader, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		ledgerRepo:    ledgerRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DashboardStats derives today's counters on demand. "Today" is the local
// calendar day [midnight, midnight+24h) of the service clock; income counts
// only sessions both created today and already completed.
func (s *reportingService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	now := s.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	todaySessions, err := s.reportingRepo.CountSessionsCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to count today's sessions")
		return nil, fmt.Errorf("failed to count today's sessions: %w", err)
	}

	activeSessions, err := s.reportingRepo.CountActiveSessions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count active sessions")
		return nil, fmt.Errorf("failed to count active sessions: %w", err)
	}

	todaysIncome, err := s.reportingRepo.SumCompletedIncomeBetween(ctx, dayStart, dayEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum today's income")
		return nil, fmt.Errorf("failed to sum today's income: %w", err)
	}

	cashBalance, err := s.ledgerRepo.CurrentBalance(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read cash balance")
		return nil, fmt.Errorf("failed to read cash balance: %w", err)
	}

	return &domain.DashboardStats{
		TodaySessions:  todaySessions,
		ActiveSessions: activeSessions,
		TodaysIncome:   todaysIncome,
		CashBalance:    cashBalance,
	}, nil
}
