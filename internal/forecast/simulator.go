package forecast

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Simulate computes the pump price for a product on a calendar date.
//
// The pseudo-variation is a sine over day-of-month and zero-based month
// instead of a seeded RNG, so the same (base, variance, date) triple
// always reproduces the same price. Chart redraws and neighbouring-day
// lookups rely on that. Only the calendar date is consulted; time of
// day and timezone play no part.
func Simulate(base, variance decimal.Decimal, date time.Time) decimal.Decimal {
	day := date.Day()
	month := int(date.Month()) - 1

	randomOffset := math.Sin(float64(day*month)*0.5) * variance.InexactFloat64()
	trendOffset := float64(day%10) * 0.002

	return decimal.NewFromFloat(base.InexactFloat64() + randomOffset + trendOffset).Round(3)
}
