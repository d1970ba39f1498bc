package forecast

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the price dispersion over one historical series.
type Stats struct {
	Mean   decimal.Decimal
	StdDev decimal.Decimal
	Min    decimal.Decimal
	Max    decimal.Decimal
}

// SeriesStats computes mean, sample standard deviation, and extrema of
// a series. Empty input yields zero stats; a single point has zero
// standard deviation.
func SeriesStats(points []PricePoint) Stats {
	if len(points) == 0 {
		return Stats{}
	}

	prices := make([]float64, len(points))
	min, max := points[0].Price, points[0].Price
	for i, p := range points {
		prices[i] = p.Price.InexactFloat64()
		if p.Price.LessThan(min) {
			min = p.Price
		}
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}

	stddev := 0.0
	if len(prices) > 1 {
		stddev = stat.StdDev(prices, nil)
	}

	return Stats{
		Mean:   decimal.NewFromFloat(stat.Mean(prices, nil)).Round(3),
		StdDev: decimal.NewFromFloat(stddev).Round(3),
		Min:    min,
		Max:    max,
	}
}
