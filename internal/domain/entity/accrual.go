package entity

import (
	"math"
	"time"
)

// Default accrual parameters. A full uninterrupted day of mining is worth
// DefaultDailyMax currency units.
const (
	DefaultDaySeconds = 86400
	DefaultDailyMax   = 4.8
)

// AccrualRates converts elapsed mining time into reward amounts.
// The zero value is unusable; construct with NewAccrualRates.
type AccrualRates struct {
	DaySeconds int64
	DailyMax   float64
}

// NewAccrualRates returns rates with defaults applied for unset fields.
func NewAccrualRates(daySeconds int64, dailyMax float64) AccrualRates {
	if daySeconds <= 0 {
		daySeconds = DefaultDaySeconds
	}
	if dailyMax <= 0 {
		dailyMax = DefaultDailyMax
	}
	return AccrualRates{DaySeconds: daySeconds, DailyMax: dailyMax}
}

// Accrue computes the claimable reward for a session measured from checkpoint
// to now. Elapsed time is floored to whole seconds and capped at one day's
// worth; time beyond the cap is discarded, not carried forward. Returns 0 for
// an inactive session or a missing checkpoint.
func (r AccrualRates) Accrue(checkpoint *time.Time, now time.Time, miningActive bool) float64 {
	if !miningActive || checkpoint == nil {
		return 0
	}
	elapsed := int64(math.Floor(now.Sub(*checkpoint).Seconds()))
	if elapsed <= 0 {
		return 0
	}
	if elapsed > r.DaySeconds {
		elapsed = r.DaySeconds
	}
	return RoundAmount(float64(elapsed) / float64(r.DaySeconds) * r.DailyMax)
}

// Project returns the balance the UI should display: the authoritative
// balance plus whatever the session has accrued since the checkpoint.
func (r AccrualRates) Project(state *MiningState, now time.Time) float64 {
	return RoundAmount(state.Balance + r.Accrue(state.Checkpoint(), now, state.MiningActive))
}

// RoundAmount normalizes a reward amount to nanocurrency precision so that
// repeated float64 additions stay comparable across claim generations.
func RoundAmount(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
