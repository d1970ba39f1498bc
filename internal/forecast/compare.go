package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fuelcast/internal/catalog"
)

// RankedPrice pairs a product with its simulated price on the
// comparison date and its 1-based position in the ranking.
type RankedPrice struct {
	Product catalog.Product
	Price   decimal.Decimal
	Rank    int
}

// Comparison is the cross-product ranking for a single date: every
// catalog product exactly once, ordered by ascending price, ties broken
// by catalog order.
type Comparison struct {
	Date    time.Time
	entries []RankedPrice
}

// Rank simulates every product's price on date and ranks them. An empty
// product list is a programmer error.
func Rank(date time.Time, products []catalog.Product) Comparison {
	if len(products) == 0 {
		panic("forecast: cannot rank an empty catalog")
	}

	entries := make([]RankedPrice, len(products))
	for i, p := range products {
		entries[i] = RankedPrice{
			Product: p,
			Price:   Simulate(p.BasePrice, p.Variance, date),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Price.LessThan(entries[j].Price)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return Comparison{Date: date, entries: entries}
}

// Entries returns the full ranking, cheapest first.
func (c Comparison) Entries() []RankedPrice {
	out := make([]RankedPrice, len(c.entries))
	copy(out, c.entries)
	return out
}

// Cheapest returns the lowest-priced entry.
func (c Comparison) Cheapest() RankedPrice {
	return c.entries[0]
}

// MostExpensive returns the highest-priced entry.
func (c Comparison) MostExpensive() RankedPrice {
	return c.entries[len(c.entries)-1]
}
