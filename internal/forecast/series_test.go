package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelcast/internal/catalog"
)

func testProduct() catalog.Product {
	return catalog.Product{
		ID:        "e10",
		Name:      "E10 Unleaded",
		BasePrice: decimal.NewFromFloat(1.91),
		Variance:  decimal.NewFromFloat(0.12),
	}
}

func TestBuildSeriesWindow(t *testing.T) {
	target := date(2024, time.January, 1)
	points := BuildSeries(target, testProduct(), Window)

	require.Len(t, points, 15)

	assert.Equal(t, date(2023, time.December, 25), points[0].Date)
	assert.Equal(t, date(2024, time.January, 8), points[14].Date)

	targets := 0
	for i, point := range points {
		if point.IsTarget {
			targets++
			assert.Equal(t, 7, i, "target must sit at the window midpoint")
			assert.Equal(t, target, point.Date)
		}
		if i > 0 {
			assert.True(t, point.Date.After(points[i-1].Date), "dates must ascend")
		}
	}
	assert.Equal(t, 1, targets)
}

func TestBuildSeriesLabels(t *testing.T) {
	points := BuildSeries(date(2024, time.January, 1), testProduct(), Window)

	assert.Equal(t, "Dec 25", points[0].DisplayDate)
	assert.Equal(t, "Dec 25, 2023", points[0].FullDate)
	assert.Equal(t, "Jan 01", points[7].DisplayDate)
	assert.Equal(t, "Jan 01, 2024", points[7].FullDate)
}

func TestBuildSeriesPricesMatchSimulator(t *testing.T) {
	product := testProduct()
	points := BuildSeries(date(2024, time.March, 15), product, Window)

	for _, point := range points {
		want := Simulate(product.BasePrice, product.Variance, point.Date)
		assert.True(t, point.Price.Equal(want), "point %s diverges from the simulator", point.FullDate)
	}
}

func TestBuildSeriesZeroWindow(t *testing.T) {
	points := BuildSeries(date(2024, time.March, 15), testProduct(), 0)

	require.Len(t, points, 1)
	assert.True(t, points[0].IsTarget)
}
