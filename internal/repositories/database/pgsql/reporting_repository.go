package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for dashboard aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CountSessionsCreatedBetween counts sessions created within [from, to).
func (r *PgxReportingRepository) CountSessionsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM game_sessions WHERE created_at >= $1 AND created_at < $2;
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// CountActiveSessions counts sessions currently in the ACTIVE state.
func (r *PgxReportingRepository) CountActiveSessions(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM game_sessions WHERE status = 'ACTIVE';
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return count, nil
}

// SumCompletedIncomeBetween sums collected totals over COMPLETED sessions
// created within [from, to).
func (r *PgxReportingRepository) SumCompletedIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_price), 0)
		FROM game_sessions
		WHERE status = 'COMPLETED' AND created_at >= $1 AND created_at < $2;
	`, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed income: %w", err)
	}
	return sum, nil
}
