package dto

import "github.com/shopspring/decimal"

// PriceQuoteRequest defines the query parameters for a standalone price quote.
type PriceQuoteRequest struct {
	Minutes         int    `form:"minutes" binding:"min=0"`
	StationType     string `form:"stationType" binding:"required,oneof=screen1 screen2 screen3 screen4 pool"`
	ControllerCount int    `form:"controllerCount"`
}

// PriceQuoteResponse returns the billable duration and amount for a quote.
type PriceQuoteResponse struct {
	BillableHours decimal.Decimal `json:"billableHours"`
	Price         decimal.Decimal `json:"price"`
}
