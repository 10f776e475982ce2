package sla

import (
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of scoring one review.
type Result struct {
	ResponseTimeHours float64
	Score             float64
	Status            string
}

var (
	hundred      = decimal.NewFromInt(100)
	onTimeFloor  = decimal.NewFromInt(80)
	onTimeSpan   = decimal.NewFromInt(20)
	breachedBase = decimal.NewFromInt(79)
	breachedSpan = decimal.NewFromInt(40)
)

// Evaluate scores a review that happened at respondedAt for a request
// submitted at submittedAt. Elapsed time is rounded to 0.1h before scoring.
//
// Within target the score falls linearly from 100 to 80. Past target it
// restarts at 79 and loses 40 points per additional target window, floored
// at 0. A review stamped before submission counts as instant.
func Evaluate(submittedAt, respondedAt time.Time, targetHours float64) Result {
	if targetHours <= 0 {
		targetHours = DefaultTargetResponseHours
	}

	elapsed := respondedAt.Sub(submittedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	h := decimal.NewFromFloat(elapsed.Hours()).Round(1)
	target := decimal.NewFromFloat(targetHours)

	var score decimal.Decimal
	status := StatusOnTime
	if h.LessThanOrEqual(target) {
		score = decimal.Max(onTimeFloor, hundred.Sub(h.Div(target).Mul(onTimeSpan)))
	} else {
		status = StatusBreached
		over := h.Sub(target).Div(target)
		score = decimal.Max(decimal.Zero, breachedBase.Sub(over.Mul(breachedSpan)))
	}

	return Result{
		ResponseTimeHours: h.InexactFloat64(),
		Score:             score.Round(1).InexactFloat64(),
		Status:            status,
	}
}
