package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingRepository defines aggregate queries for the operator dashboard.
// All values are computed on demand; nothing is cached.
type ReportingRepository interface {
	// CountSessionsCreatedBetween counts sessions created within [from, to).
	CountSessionsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)

	// CountActiveSessions counts sessions currently in the ACTIVE state.
	CountActiveSessions(ctx context.Context) (int, error)

	// SumCompletedIncomeBetween sums the collected total over COMPLETED
	// sessions created within [from, to).
	SumCompletedIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
