package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

// Show prints recent prediction snapshots.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show snapshots")
	}
	if closeStore != nil {
		defer closeStore()
	}

	snaps, err := store.ListRecentSnapshots(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(os.Stdout, "no snapshots found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Created (UTC)\tFuel\tStore\tTarget Date\tPrice\tTrend%\tCheapest")

	for _, snap := range snaps {
		trend := "-"
		if snap.TrendPct != nil {
			trend = formatDecimal(*snap.TrendPct, 2)
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			snap.CreatedAt.UTC().Format(time.RFC3339),
			snap.ProductID,
			snap.StoreID,
			snap.TargetDate.Format("2006-01-02"),
			formatDecimal(snap.TargetPrice, 3),
			trend,
			snap.CheapestID,
		)
	}

	writer.Flush()
	return nil
}

// Alerts prints recent alert events.
func (a *App) Alerts(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show alert events")
	}
	if closeStore != nil {
		defer closeStore()
	}

	events, err := store.ListRecentAlertEvents(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stdout, "no alert events found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Occurred (UTC)\tFuel\tPrice\tThreshold\tMethod")

	for _, event := range events {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\n",
			event.OccurredAt.UTC().Format(time.RFC3339),
			event.ProductID,
			formatDecimal(event.Price, 3),
			formatDecimal(event.Threshold, 2),
			event.Method,
		)
	}

	writer.Flush()
	return nil
}
