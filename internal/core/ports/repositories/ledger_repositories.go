package repositories

import (
	"context"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for cash ledger data
type LedgerReader interface {
	// ListEntries retrieves all ledger entries, newest first by creation time.
	ListEntries(ctx context.Context) ([]domain.LedgerEntry, error)

	// CurrentBalance returns the ledger's running balance, zero for an empty
	// ledger. The balance is maintained as its own transactional counter, not
	// recomputed by summing entries.
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

// LedgerWriter defines write operations for cash ledger data
type LedgerWriter interface {
	// AppendEntry persists a new ledger entry, stamping it with the running
	// balance after it is applied. The stamp and the balance counter update
	// happen in one database transaction; the stored entry is returned.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
