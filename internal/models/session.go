package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus mirrors domain.SessionStatus at the storage layer.
type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
)

// GameSession is the database representation of a station rental.
// Nullable columns use pointers; they are NULL exactly while status = ACTIVE.
type GameSession struct {
	SessionID       string          `db:"session_id"`
	CustomerName    string          `db:"customer_name"`
	ControllerCount int             `db:"controller_count"`
	StationType     string          `db:"station_type"`
	StartTime       time.Time       `db:"start_time"`
	EndTime         *time.Time      `db:"end_time"`
	DurationMinutes *int            `db:"duration_minutes"`
	CalculatedPrice decimal.Decimal `db:"calculated_price"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	CashReceived    decimal.Decimal `db:"cash_received"`
	OnlineReceived  decimal.Decimal `db:"online_received"`
	Status          SessionStatus   `db:"status"`
	IsMismatch      bool            `db:"is_mismatch"`
	MismatchReason  *string         `db:"mismatch_reason"`
	AuditFields
}
