package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pricePoints(prices ...float64) []PricePoint {
	points := make([]PricePoint, len(prices))
	for i, p := range prices {
		points[i] = PricePoint{Price: decimal.NewFromFloat(p)}
	}
	return points
}

func TestSeriesStatsConstantSeries(t *testing.T) {
	stats := SeriesStats(pricePoints(2.0, 2.0, 2.0, 2.0))

	assert.Equal(t, "2.000", stats.Mean.StringFixed(3))
	assert.Equal(t, "0.000", stats.StdDev.StringFixed(3))
	assert.Equal(t, "2.000", stats.Min.StringFixed(3))
	assert.Equal(t, "2.000", stats.Max.StringFixed(3))
}

func TestSeriesStatsExtrema(t *testing.T) {
	stats := SeriesStats(pricePoints(1.90, 2.10, 1.80, 2.30))

	assert.Equal(t, "1.800", stats.Min.StringFixed(3))
	assert.Equal(t, "2.300", stats.Max.StringFixed(3))
	assert.Equal(t, "2.025", stats.Mean.StringFixed(3))
	assert.True(t, stats.StdDev.GreaterThan(decimal.Zero))
}

func TestSeriesStatsDegenerateInputs(t *testing.T) {
	assert.Equal(t, Stats{}, SeriesStats(nil))

	single := SeriesStats(pricePoints(1.95))
	assert.Equal(t, "1.950", single.Mean.StringFixed(3))
	assert.True(t, single.StdDev.IsZero())
}
