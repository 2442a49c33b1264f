package dto

import (
	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse defines the counters shown on the operator dashboard.
type DashboardStatsResponse struct {
	TodaySessions  int             `json:"todaySessions"`
	ActiveSessions int             `json:"activeSessions"`
	TodaysIncome   decimal.Decimal `json:"todaysIncome"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
}

// ToDashboardStatsResponse converts domain.DashboardStats to its DTO.
func ToDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TodaySessions:  s.TodaySessions,
		ActiveSessions: s.ActiveSessions,
		TodaysIncome:   s.TodaysIncome,
		CashBalance:    s.CashBalance,
	}
}
