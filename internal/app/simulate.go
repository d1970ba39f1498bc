package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"fuelcast/internal/alerting"
)

// SimulateAlert evaluates the alert configuration against a given
// price and reports the outcome, optionally dispatching through the
// configured gateway when triggered.
func (a *App) SimulateAlert(ctx context.Context, opts SimulateOptions) error {
	cfg := a.Config.AlertConfig()
	cfg.Enabled = true
	if opts.Threshold > 0 {
		cfg.Threshold = decimal.NewFromFloat(opts.Threshold)
	}
	if opts.Method != "" {
		method, err := alerting.ParseMethod(opts.Method)
		if err != nil {
			return err
		}
		cfg.Method = method
	}

	price := decimal.NewFromFloat(opts.Price)
	status := alerting.Evaluate(cfg, price)

	fmt.Fprintf(os.Stdout, "active: %t\ntriggered: %t\naction: %s\n",
		status.Active, status.Triggered, status.DescribedAction)

	if !status.Triggered || !opts.Dispatch {
		return nil
	}

	notifier := a.newNotifier()
	if notifier == nil {
		return fmt.Errorf("no alert gateway configured for dispatch")
	}

	cat := a.Config.BuildCatalog()
	product := cat.ProductByID(a.Config.Watch.Fuel)
	store := cat.StoreByID(a.Config.Watch.Store)

	note := alerting.Notification{
		ProductID:   product.ID,
		ProductName: product.Name,
		StoreName:   store.Name,
		Price:       price,
		Threshold:   cfg.Threshold,
		Method:      cfg.Method,
		OccurredAt:  time.Now().UTC(),
	}
	return notifier.Notify(ctx, note)
}
