package dto

import (
	"time"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StartSessionRequest defines the data needed to open a new game session.
// ControllerCount is ignored for pool tables.
type StartSessionRequest struct {
	CustomerName    string `json:"customerName" binding:"required"`
	StationType     string `json:"stationType" binding:"required,oneof=screen1 screen2 screen3 screen4 pool"`
	ControllerCount int    `json:"controllerCount"`
}

// CloseSessionRequest defines the payment details supplied when a session ends.
// MismatchReason is required whenever collected payment differs from the
// computed price by more than the currency tolerance.
type CloseSessionRequest struct {
	CashReceived   decimal.Decimal `json:"cashReceived" binding:"gte=0"`
	OnlineReceived decimal.Decimal `json:"onlineReceived" binding:"gte=0"`
	MismatchReason string          `json:"mismatchReason"`
}

// SessionResponse defines the data returned for a game session.
type SessionResponse struct {
	SessionID       string          `json:"sessionID"`
	CustomerName    string          `json:"customerName"`
	ControllerCount int             `json:"controllerCount"`
	StationType     string          `json:"stationType"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         *time.Time      `json:"endTime,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	CalculatedPrice decimal.Decimal `json:"calculatedPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	CashReceived    decimal.Decimal `json:"cashReceived"`
	OnlineReceived  decimal.Decimal `json:"onlineReceived"`
	Status          string          `json:"status"`
	IsMismatch      bool            `json:"isMismatch"`
	MismatchReason  string          `json:"mismatchReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ListSessionsResponse wraps a list of sessions.
type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// ToSessionResponse converts a domain.GameSession to SessionResponse DTO.
func ToSessionResponse(s *domain.GameSession) SessionResponse {
	return SessionResponse{
		SessionID:       s.SessionID,
		CustomerName:    s.CustomerName,
		ControllerCount: s.ControllerCount,
		StationType:     string(s.StationType),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.DurationMinutes,
		CalculatedPrice: s.CalculatedPrice,
		TotalPrice:      s.TotalPrice,
		CashReceived:    s.CashReceived,
		OnlineReceived:  s.OnlineReceived,
		Status:          string(s.Status),
		IsMismatch:      s.IsMismatch,
		MismatchReason:  s.MismatchReason,
		CreatedAt:       s.CreatedAt,
		LastUpdatedAt:   s.LastUpdatedAt,
	}
}

// ToSessionResponses converts a slice of domain.GameSession to []SessionResponse.
func ToSessionResponses(sessions []domain.GameSession) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToSessionResponse(&sessions[i])
	}
	return responses
}
