// Package pricing converts elapsed play time into billable amounts.
//
// Duration is first snapped onto a half-hour lattice with non-uniform buckets
// (short stays are forgiven, the first hour is generous), then priced against
// a tiered per-hour table. Several fractional durations have flat prices that
// differ from rate*hours; those come from the posted price list and must be
// reproduced exactly rather than derived.
package pricing

import (
	"errors"
	"math"
	"time"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedCapacity is returned when a non-pool station has a controller
// count outside the priced 1-4 range. Session creation validates the range, so
// hitting this after the fact means a misconfigured record, not a user error.
var ErrUnsupportedCapacity = errors.New("no tariff for controller count")

var (
	two         = decimal.NewFromInt(2)
	halfHour    = decimal.NewFromFloat(0.5)
	hourAndHalf = decimal.NewFromFloat(1.5)

	ratePool   = decimal.NewFromInt(250)
	rateSingle = decimal.NewFromInt(150)
	rateDouble = decimal.NewFromInt(250)
	rateTriple = decimal.NewFromInt(400)
	rateQuad   = decimal.NewFromInt(450)

	flatPoolHalf     = decimal.NewFromInt(150)
	flatSingleHalf   = decimal.NewFromInt(100)
	flatDoubleHalf   = decimal.NewFromInt(150)
	flatDoubleInHalf = decimal.NewFromInt(400)
)

// RoundToBillableHours converts elapsed minutes into billable hours on a
// half-hour lattice. The buckets are deliberately non-uniform:
//
//	0-19    -> 0
//	20-40   -> 0.5
//	41-75   -> 1.0
//	76-105  -> 1.5
//	106-135 -> 2.0
//	136-165 -> 2.5
//	166-195 -> 3.0
//	>195    -> nearest half hour
//
// Negative input is a caller bug; elapsed time is always derived from
// start <= now.
func RoundToBillableHours(minutes int) decimal.Decimal {
	switch {
	case minutes < 20:
		return decimal.Zero
	case minutes <= 40:
		return halfHour
	case minutes <= 75:
		return decimal.NewFromInt(1)
	case minutes <= 105:
		return hourAndHalf
	case minutes <= 135:
		return decimal.NewFromInt(2)
	case minutes <= 165:
		return decimal.NewFromFloat(2.5)
	case minutes <= 195:
		return decimal.NewFromInt(3)
	}

	// Beyond three hours the lattice is a plain nearest-half-hour rounding,
	// halves rounding up: minutes/60 hours * 2, rounded, back over 2.
	halves := math.Round(float64(minutes) / 30.0)
	return decimal.NewFromInt(int64(halves)).Div(two)
}

// CalculatePrice returns the amount due for a billable duration on the given
// station. Pool tables ignore the controller count.
func CalculatePrice(stationType domain.StationType, controllerCount int, billableHours decimal.Decimal) (decimal.Decimal, error) {
	if stationType == domain.StationPool {
		if billableHours.Equal(halfHour) {
			return flatPoolHalf, nil
		}
		return ratePool.Mul(billableHours), nil
	}

	switch controllerCount {
	case 1:
		if billableHours.Equal(halfHour) {
			return flatSingleHalf, nil
		}
		return rateSingle.Mul(billableHours), nil
	case 2:
		if billableHours.Equal(halfHour) {
			return flatDoubleHalf, nil
		}
		if billableHours.Equal(hourAndHalf) {
			return flatDoubleInHalf, nil
		}
		return rateDouble.Mul(billableHours), nil
	case 3:
		return rateTriple.Mul(billableHours), nil
	case 4:
		return rateQuad.Mul(billableHours), nil
	default:
		return decimal.Zero, ErrUnsupportedCapacity
	}
}

// ElapsedMinutes returns the whole minutes between start and end, truncated.
func ElapsedMinutes(start, end time.Time) int {
	return int(end.Sub(start).Minutes())
}
