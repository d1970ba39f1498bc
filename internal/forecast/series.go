package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"fuelcast/internal/catalog"
)

// Window is the half-width, in days, of the historical series built
// around a target date.
const Window = 7

// PricePoint is one simulated day in a historical series.
type PricePoint struct {
	Date        time.Time
	DisplayDate string
	FullDate    string
	Price       decimal.Decimal
	IsTarget    bool
}

// BuildSeries simulates prices for every day from target-window to
// target+window inclusive. The result always holds exactly 2*window+1
// points in ascending date order with the target at index window.
//
// BuildSeries never consults the catalog; resolving an unknown product
// id to a default is the caller's job.
func BuildSeries(target time.Time, product catalog.Product, window int) []PricePoint {
	points := make([]PricePoint, 0, 2*window+1)
	for i := -window; i <= window; i++ {
		date := target.AddDate(0, 0, i)
		points = append(points, PricePoint{
			Date:        date,
			DisplayDate: date.Format("Jan 02"),
			FullDate:    date.Format("Jan 02, 2006"),
			Price:       Simulate(product.BasePrice, product.Variance, date),
			IsTarget:    i == 0,
		})
	}
	return points
}
