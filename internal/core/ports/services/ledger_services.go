package services

import (
	"context"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines the cash ledger operations.
type LedgerSvcFacade interface {
	// AddEntry appends a manual cash movement to the ledger and returns the
	// stored entry with its stamped running balance.
	AddEntry(ctx context.Context, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error)

	// ListEntries lists all ledger entries, newest first.
	ListEntries(ctx context.Context) ([]domain.LedgerEntry, error)

	// CurrentBalance returns the ledger's running balance, zero when empty.
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}
