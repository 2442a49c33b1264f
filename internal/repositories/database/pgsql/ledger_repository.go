package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/playware/game_lounge_app/internal/core/domain"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	"github.com/playware/game_lounge_app/internal/models"
)

// PgxLedgerRepository persists cash ledger entries. The running balance is an
// explicit single-row counter (cash_ledger_balance) locked and updated in the
// same transaction as every insert, so the per-entry balance stamps form an
// unbroken chain even though readers never re-sum the entries.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// Helper to convert domain.LedgerEntry to models.LedgerEntry for DB storage
func toModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:        d.EntryID,
		Amount:         d.Amount,
		RunningBalance: d.RunningBalance,
		Description:    d.Description,
		Direction:      models.EntryDirection(d.Direction),
		EntryDate:      d.EntryDate,
		CreatedAt:      d.CreatedAt,
	}
	if d.GameSessionID != "" {
		sessionID := d.GameSessionID
		m.GameSessionID = &sessionID
	}
	return m
}

// Helper to convert models.LedgerEntry from DB to domain.LedgerEntry
func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:        m.EntryID,
		Amount:         m.Amount,
		RunningBalance: m.RunningBalance,
		Description:    m.Description,
		Direction:      domain.EntryDirection(m.Direction),
		EntryDate:      m.EntryDate,
		CreatedAt:      m.CreatedAt,
	}
	if m.GameSessionID != nil {
		d.GameSessionID = *m.GameSessionID
	}
	return d
}

// appendEntryTx stamps and inserts one ledger entry inside tx. It locks the
// balance counter row, computes the new balance, writes the entry with that
// balance, and moves the counter — all or nothing with the caller's tx.
// Shared with the session repository so a session close and its cash entry
// commit together.
func appendEntryTx(ctx context.Context, tx pgx.Tx, entry models.LedgerEntry) (models.LedgerEntry, error) {
	var current decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT balance FROM cash_ledger_balance WHERE singleton = TRUE FOR UPDATE;
	`).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		current = decimal.Zero
		if _, err := tx.Exec(ctx, `
			INSERT INTO cash_ledger_balance (singleton, balance) VALUES (TRUE, 0);
		`); err != nil {
			return models.LedgerEntry{}, fmt.Errorf("failed to initialise balance counter: %w", err)
		}
	} else if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to lock balance counter: %w", err)
	}

	if entry.Direction == models.Credit {
		entry.RunningBalance = current.Add(entry.Amount)
	} else {
		entry.RunningBalance = current.Sub(entry.Amount)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (entry_id, game_session_id, amount, running_balance, description, direction, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		entry.EntryID,
		entry.GameSessionID,
		entry.Amount,
		entry.RunningBalance,
		entry.Description,
		entry.Direction,
		entry.EntryDate,
		entry.CreatedAt,
	)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE cash_ledger_balance SET balance = $1 WHERE singleton = TRUE;
	`, entry.RunningBalance); err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to update balance counter: %w", err)
	}

	return entry, nil
}

// AppendEntry persists a new ledger entry with its stamped running balance.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	stored, err := appendEntryTx(ctx, tx, toModelLedgerEntry(entry))
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	result := toDomainLedgerEntry(stored)
	return &result, nil
}

// ListEntries retrieves all ledger entries, newest first by creation time.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT entry_id, game_session_id, amount, running_balance, description, direction, entry_date, created_at
		FROM ledger_entries
		ORDER BY created_at DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.GameSessionID,
			&m.Amount,
			&m.RunningBalance,
			&m.Description,
			&m.Direction,
			&m.EntryDate,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, toDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}
	return entries, nil
}

// CurrentBalance reads the balance counter; an uninitialised ledger is zero.
func (r *PgxLedgerRepository) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT balance FROM cash_ledger_balance WHERE singleton = TRUE;
	`).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read ledger balance: %w", err)
	}
	return balance, nil
}
