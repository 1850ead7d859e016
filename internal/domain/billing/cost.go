// Package billing holds the pure money rules of a table session: how
// elapsed time turns into a table charge and how tax applies to it.
package billing

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// RateCard is the pair of rates a session is priced with
type RateCard struct {
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	PerMinuteRate decimal.Decimal `json:"per_minute_rate"`
}

// NewRateCard builds a rate card, deriving a missing rate from the other one
func NewRateCard(hourly, perMinute *decimal.Decimal) RateCard {
	var rc RateCard
	if hourly != nil {
		rc.HourlyRate = *hourly
	}
	if perMinute != nil && perMinute.IsPositive() {
		rc.PerMinuteRate = *perMinute
	} else {
		rc.PerMinuteRate = rc.HourlyRate.Div(sixty)
	}
	if rc.HourlyRate.IsZero() && rc.PerMinuteRate.IsPositive() {
		rc.HourlyRate = rc.PerMinuteRate.Mul(sixty)
	}
	return rc
}

// Rate returns the rate applied in the given mode
func (rc RateCard) Rate(mode enum.DurationType) decimal.Decimal {
	if mode == enum.DurationTypePerMinute {
		return rc.PerMinuteRate
	}
	return rc.HourlyRate
}

// BillableHours rounds minutes up to whole hours
func BillableHours(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + 59) / 60
}

// ComputeTableCost prices minutes of play. Hourly billing charges every
// started hour in full; per-minute billing charges minutes exactly.
func ComputeTableCost(minutes int, mode enum.DurationType, rc RateCard) decimal.Decimal {
	if minutes < 0 {
		minutes = 0
	}
	var cost decimal.Decimal
	switch mode {
	case enum.DurationTypePerMinute:
		cost = rc.PerMinuteRate.Mul(decimal.NewFromInt(int64(minutes)))
	default:
		cost = rc.HourlyRate.Mul(decimal.NewFromInt(int64(BillableHours(minutes))))
	}
	return cost.Round(2)
}

// ElapsedMinutes returns whole minutes between start and now, never negative
func ElapsedMinutes(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
