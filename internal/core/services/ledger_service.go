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
)

// ledgerService implements the cash ledger operations.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// LedgerServiceOption is a functional option for configuring the ledger service.
type LedgerServiceOption func(*ledgerService)

// WithLedgerClock overrides the service clock, used in tests.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AddEntry appends a manual cash movement. Amount must be positive and the
// description non-empty; both are rejected before any write. The running
// balance is stamped by the repository inside its transaction, so serialized
// appends can never corrupt the balance chain. A negative balance is accepted.
func (s *ledgerService) AddEntry(ctx context.Context, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	direction := domain.EntryDirection(req.Direction)
	if direction != domain.Credit && direction != domain.Debit {
		return nil, fmt.Errorf("%w: direction must be CREDIT or DEBIT", apperrors.ErrValidation)
	}

	now := s.Now()
	entryDate := now
	if req.EntryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: entry date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		entryDate = parsed
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		Amount:      req.Amount,
		Description: description,
		Direction:   direction,
		EntryDate:   entryDate,
		CreatedAt:   now,
	}

	stored, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry appended",
		slog.String("entry_id", stored.EntryID),
		slog.String("direction", string(stored.Direction)),
		slog.String("amount", stored.Amount.String()),
		slog.String("running_balance", stored.RunningBalance.String()))
	return stored, nil
}

// ListEntries lists all ledger entries, newest first.
func (s *ledgerService) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// CurrentBalance returns the ledger's running balance.
func (s *ledgerService) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := s.ledgerRepo.CurrentBalance(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger balance")
		return decimal.Zero, fmt.Errorf("failed to read ledger balance: %w", err)
	}
	return balance, nil
}
