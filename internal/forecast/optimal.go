package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// Suggestion is a recommended future fill-up slot with its expected
// price and saving.
type Suggestion struct {
	Date            time.Time
	Hour            int
	PredictedPrice  decimal.Decimal
	EstimatedSaving decimal.Decimal
}

// OptimalTimePolicy produces a fill-up suggestion from the target price
// point. Kept behind an interface so the placeholder below can be
// swapped for a real model without touching the rest of the engine.
type OptimalTimePolicy interface {
	Suggest(target PricePoint) Suggestion
}

// FixedOffsetPolicy is a placeholder policy, not a forecast: it always
// suggests two days after the target at 06:00, prices the slot at the
// target price minus a fixed discount, and claims a fixed saving.
type FixedOffsetPolicy struct{}

const (
	fixedOffsetDays = 2
	fixedOffsetHour = 6
)

var (
	fixedDiscount = decimal.NewFromFloat(0.08)
	fixedSaving   = decimal.NewFromFloat(4.50)
)

// Suggest implements OptimalTimePolicy.
func (FixedOffsetPolicy) Suggest(target PricePoint) Suggestion {
	return Suggestion{
		Date:            target.Date.AddDate(0, 0, fixedOffsetDays),
		Hour:            fixedOffsetHour,
		PredictedPrice:  target.Price.Sub(fixedDiscount),
		EstimatedSaving: fixedSaving,
	}
}

var _ OptimalTimePolicy = FixedOffsetPolicy{}
