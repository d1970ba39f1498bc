package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSimulateDeterministic(t *testing.T) {
	base := decimal.NewFromFloat(1.95)
	variance := decimal.NewFromFloat(0.15)

	for _, d := range []time.Time{
		date(2024, time.March, 15),
		date(2023, time.December, 31),
		date(2024, time.January, 1),
		date(2024, time.July, 9),
	} {
		first := Simulate(base, variance, d)
		second := Simulate(base, variance, d)
		assert.True(t, first.Equal(second), "price for %s must be reproducible", d.Format("2006-01-02"))
	}
}

func TestSimulateKnownValue(t *testing.T) {
	// 2024-03-15: day=15, zero-based month=2, so the sine argument is
	// 15*2*0.5 = 15 and the trend term is (15 mod 10)*0.002 = 0.01.
	got := Simulate(decimal.NewFromFloat(1.95), decimal.NewFromFloat(0.15), date(2024, time.March, 15))
	require.Equal(t, "2.058", got.StringFixed(3))
}

func TestSimulateJanuaryHasNoSineOffset(t *testing.T) {
	// January is month zero, so the sine term vanishes and the price is
	// base plus the day trend alone, regardless of variance.
	got := Simulate(decimal.NewFromFloat(1.95), decimal.NewFromFloat(0.15), date(2024, time.January, 7))
	require.Equal(t, "1.964", got.StringFixed(3))

	noVariance := Simulate(decimal.NewFromFloat(1.95), decimal.Zero, date(2024, time.January, 7))
	assert.True(t, got.Equal(noVariance))
}

func TestSimulateRoundsToThreeDecimals(t *testing.T) {
	base := decimal.NewFromFloat(2.25)
	variance := decimal.NewFromFloat(0.18)

	for day := 1; day <= 28; day++ {
		got := Simulate(base, variance, date(2024, time.May, day))
		assert.True(t, got.Equal(got.Round(3)), "day %d: %s carries more than 3 decimal places", day, got)
	}
}

func TestSimulateTotalOverInputs(t *testing.T) {
	// Nonsensical inputs still produce a finite number; validation is
	// the catalog's job, not the simulator's.
	got := Simulate(decimal.NewFromFloat(-1.0), decimal.NewFromFloat(0.5), date(2024, time.June, 3))
	assert.True(t, got.LessThan(decimal.Zero))
	assert.True(t, got.Equal(got.Round(3)))
}
