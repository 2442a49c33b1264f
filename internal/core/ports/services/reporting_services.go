package services

import (
	"context"

	"github.com/playware/game_lounge_app/internal/core/domain"
)

// ReportingSvcFacade defines the dashboard aggregation operations.
type ReportingSvcFacade interface {
	// DashboardStats derives today's counters from the session and ledger stores.
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
