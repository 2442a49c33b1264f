package pgsql

import (
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SessionRepo:   newPgxSessionRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
