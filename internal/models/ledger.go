package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection mirrors domain.EntryDirection at the storage layer.
type EntryDirection string

const (
	Credit EntryDirection = "CREDIT"
	Debit  EntryDirection = "DEBIT"
)

// LedgerEntry is the database representation of a cash ledger movement.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	GameSessionID  *string         `db:"game_session_id"` // nullable FK to game_sessions
	Amount         decimal.Decimal `db:"amount"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	Description    string          `db:"description"`
	Direction      EntryDirection  `db:"direction"`
	EntryDate      time.Time       `db:"entry_date"`
	CreatedAt      time.Time       `db:"created_at"`
}
