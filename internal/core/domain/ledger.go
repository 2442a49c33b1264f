package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether a ledger entry adds to or removes from the cash box.
type EntryDirection string

const (
	Credit EntryDirection = "CREDIT"
	Debit  EntryDirection = "DEBIT"
)

// LedgerEntry is one immutable movement in the cash ledger. RunningBalance is
// the ledger balance immediately after this entry was applied; the chain
// balance[i] = balance[i-1] +/- amount[i] holds over entries in creation order.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	GameSessionID  string          `json:"gameSessionID,omitempty"` // weak back-reference, lookup only
	Amount         decimal.Decimal `json:"amount"`                  // positive magnitude
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Description    string          `json:"description"`
	Direction      EntryDirection  `json:"direction"`
	EntryDate      time.Time       `json:"entryDate"` // calendar date of the transaction
	CreatedAt      time.Time       `json:"createdAt"`
}
