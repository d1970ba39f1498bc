package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"fuelcast/internal/session"
	"fuelcast/internal/storage"
)

// Predict runs one prediction request and prints the result. When a
// database is configured the derived snapshot is persisted as well.
func (a *App) Predict(ctx context.Context, opts PredictOptions) error {
	sess := a.newSession()
	sess.SelectProduct(opts.FuelID)
	sess.SelectStore(opts.StoreID)
	if opts.Date != nil {
		sess.SelectDate(*opts.Date)
	}
	if opts.Hour >= 0 {
		sess.SelectHour(opts.Hour)
	}

	result := sess.RequestPrediction()
	printResult(result)

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}
	if store != nil {
		if err := store.InsertSnapshot(ctx, snapshotOf(result)); err != nil {
			a.Logger.Error().Err(err).Msg("failed to persist prediction snapshot")
		}
	}

	return nil
}

// Compare prints the cross-fuel ranking for a single date.
func (a *App) Compare(ctx context.Context, date time.Time) error {
	sess := a.newSession()
	sess.SelectDate(date)
	result := sess.RequestPrediction()
	printComparison(result)
	return nil
}

func snapshotOf(r *session.Result) storage.PredictionSnapshot {
	snap := storage.PredictionSnapshot{
		ID:          r.ID,
		ProductID:   r.Product.ID,
		StoreID:     r.Store.ID,
		TargetDate:  r.TargetDate,
		Hour:        r.Hour,
		TargetPrice: r.Target.Price,
		CheapestID:  r.Comparison.Cheapest().Product.ID,
		PriciestID:  r.Comparison.MostExpensive().Product.ID,
	}
	if r.Prev != nil {
		trend := r.TrendPct
		snap.TrendPct = &trend
	}
	return snap
}

func printResult(r *session.Result) {
	fmt.Fprintf(os.Stdout, "%s at %s (%s)\n", r.Product.Name, r.Store.Name, r.Store.Distance)
	fmt.Fprintf(os.Stdout, "Target: %s around %02d:00\n\n", r.Target.FullDate, r.Hour)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Date\tPrice ($/L)\t")
	for _, point := range r.History {
		marker := ""
		if point.IsTarget {
			marker = "<- target"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", point.DisplayDate, point.Price.StringFixed(3), marker)
	}
	writer.Flush()

	fmt.Fprintln(os.Stdout)
	printTrend(r)
	fmt.Fprintf(os.Stdout, "Window: mean %s, stddev %s, range %s-%s\n\n",
		r.Stats.Mean.StringFixed(3),
		r.Stats.StdDev.StringFixed(3),
		r.Stats.Min.StringFixed(3),
		r.Stats.Max.StringFixed(3),
	)

	printComparison(r)

	fmt.Fprintf(os.Stdout, "\nBest time to fill up: %s around %02d:00\n", r.Optimal.Date.Format("Monday, Jan 02"), r.Optimal.Hour)
	fmt.Fprintf(os.Stdout, "Predicted price $%s/litre, estimated saving $%s\n",
		r.Optimal.PredictedPrice.StringFixed(3),
		r.Optimal.EstimatedSaving.StringFixed(2),
	)
}

func printTrend(r *session.Result) {
	if r.Prev == nil {
		fmt.Fprintln(os.Stdout, "Trend vs previous day: no data")
		return
	}
	sign := ""
	if r.TrendDelta.Sign() > 0 {
		sign = "+"
	}
	fmt.Fprintf(os.Stdout, "Trend vs previous day: %s%s (%s%s%%)\n",
		sign, r.TrendDelta.StringFixed(3), sign, r.TrendPct.StringFixed(2))
}

func printComparison(r *session.Result) {
	fmt.Fprintf(os.Stdout, "Fuel comparison for %s:\n", r.Comparison.Date.Format("Jan 02, 2006"))
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Rank\tFuel\tOctane\tPrice ($/L)\t")
	for _, entry := range r.Comparison.Entries() {
		marker := ""
		switch entry.Rank {
		case r.Comparison.Cheapest().Rank:
			marker = "cheapest"
		case r.Comparison.MostExpensive().Rank:
			marker = "most expensive"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			entry.Rank, entry.Product.Name, entry.Product.Octane, entry.Price.StringFixed(3), marker)
	}
	writer.Flush()
}
