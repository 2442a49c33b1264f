package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus indicates the lifecycle state of a game session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
)

// StationType identifies the kind of station a session is billed against.
type StationType string

const (
	StationScreen1 StationType = "screen1"
	StationScreen2 StationType = "screen2"
	StationScreen3 StationType = "screen3"
	StationScreen4 StationType = "screen4"
	StationPool    StationType = "pool"
)

// IsValid reports whether the station type is one of the known kinds.
func (s StationType) IsValid() bool {
	switch s {
	case StationScreen1, StationScreen2, StationScreen3, StationScreen4, StationPool:
		return true
	}
	return false
}

// GameSession represents a single metered station rental.
// EndTime, DurationMinutes and IsMismatch are unset while the session is
// ACTIVE and are all populated by the close operation. MismatchReason is
// present exactly when IsMismatch is true.
type GameSession struct {
	SessionID       string          `json:"sessionID"`
	CustomerName    string          `json:"customerName"`
	ControllerCount int             `json:"controllerCount"` // 1-4; 0 for pool stations
	StationType     StationType     `json:"stationType"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         *time.Time      `json:"endTime,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	CalculatedPrice decimal.Decimal `json:"calculatedPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	CashReceived    decimal.Decimal `json:"cashReceived"`
	OnlineReceived  decimal.Decimal `json:"onlineReceived"`
	Status          SessionStatus   `json:"status"`
	IsMismatch      bool            `json:"isMismatch"`
	MismatchReason  string          `json:"mismatchReason,omitempty"`
	AuditFields
}
