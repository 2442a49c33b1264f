package domain

import "github.com/shopspring/decimal"

// DashboardStats holds the derived counters shown on the operator dashboard.
// All values are recomputed on demand from the session and ledger stores.
type DashboardStats struct {
	TodaySessions  int             `json:"todaySessions"`
	ActiveSessions int             `json:"activeSessions"`
	TodaysIncome   decimal.Decimal `json:"todaysIncome"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
}
