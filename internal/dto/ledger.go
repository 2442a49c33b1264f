package dto

import (
	"time"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest defines the data for a manual cash movement.
// EntryDate is the calendar date of the transaction in 2006-01-02 form;
// it defaults to today when omitted.
type CreateLedgerEntryRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Direction   string          `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
	Description string          `json:"description" binding:"required"`
	EntryDate   string          `json:"entryDate" binding:"omitempty,datetime=2006-01-02"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID        string          `json:"entryID"`
	GameSessionID  string          `json:"gameSessionID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Description    string          `json:"description"`
	Direction      string          `json:"direction"`
	EntryDate      string          `json:"entryDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListLedgerEntriesResponse wraps the ledger listing together with the
// current running balance.
type ListLedgerEntriesResponse struct {
	Entries        []LedgerEntryResponse `json:"entries"`
	CurrentBalance decimal.Decimal       `json:"currentBalance"`
}

// BalanceResponse carries the ledger's current running balance.
type BalanceResponse struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:        e.EntryID,
		GameSessionID:  e.GameSessionID,
		Amount:         e.Amount,
		RunningBalance: e.RunningBalance,
		Description:    e.Description,
		Direction:      string(e.Direction),
		EntryDate:      e.EntryDate.Format("2006-01-02"),
		CreatedAt:      e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to []LedgerEntryResponse.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
