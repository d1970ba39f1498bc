package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelcast/internal/catalog"
)

// fixedProduct has no variance, so on a day where the trend term is
// zero (day mod 10 == 0) its simulated price equals its base price.
func fixedProduct(id string, base float64) catalog.Product {
	return catalog.Product{
		ID:        id,
		Name:      id,
		BasePrice: decimal.NewFromFloat(base),
		Variance:  decimal.Zero,
	}
}

func TestRankSortsAscending(t *testing.T) {
	products := []catalog.Product{
		fixedProduct("diesel", 2.10),
		fixedProduct("u91", 1.95),
		fixedProduct("p98", 2.25),
		fixedProduct("e10", 1.91),
	}

	comparison := Rank(date(2024, time.March, 10), products)
	entries := comparison.Entries()

	require.Len(t, entries, 4)

	wantOrder := []string{"e10", "u91", "diesel", "p98"}
	for i, want := range wantOrder {
		assert.Equal(t, want, entries[i].Product.ID)
		assert.Equal(t, i+1, entries[i].Rank)
	}

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Price.LessThan(entries[i-1].Price), "ranking must be non-decreasing")
	}

	assert.Equal(t, "e10", comparison.Cheapest().Product.ID)
	assert.Equal(t, "p98", comparison.MostExpensive().Product.ID)
}

func TestRankContainsEveryProductOnce(t *testing.T) {
	products := catalog.Default().Products()
	comparison := Rank(date(2024, time.June, 21), products)

	seen := map[string]int{}
	for _, entry := range comparison.Entries() {
		seen[entry.Product.ID]++
	}

	require.Len(t, seen, len(products))
	for id, count := range seen {
		assert.Equal(t, 1, count, "product %s must rank exactly once", id)
	}
}

func TestRankTiesKeepCatalogOrder(t *testing.T) {
	products := []catalog.Product{
		fixedProduct("first", 2.00),
		fixedProduct("second", 2.00),
		fixedProduct("cheap", 1.50),
	}

	entries := Rank(date(2024, time.March, 10), products).Entries()

	assert.Equal(t, "cheap", entries[0].Product.ID)
	assert.Equal(t, "first", entries[1].Product.ID)
	assert.Equal(t, "second", entries[2].Product.ID)
}

func TestRankEmptyCatalogPanics(t *testing.T) {
	assert.Panics(t, func() {
		Rank(date(2024, time.March, 10), nil)
	})
}
