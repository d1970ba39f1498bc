package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"fuelcast/internal/alerting"
	"fuelcast/internal/forecast"
	"fuelcast/internal/scheduler"
	"fuelcast/internal/storage"
)

// Watch runs the periodic alert-evaluation loop: each cycle simulates
// the configured fuel's price for the cycle's date, evaluates the
// alert setting, and dispatches on trigger.
func (a *App) Watch(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !a.Config.Alerting.Enabled {
		a.Logger.Warn().Msg("alerting.enabled is false; watch will only log prices")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; alert auditing disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Watch.Interval,
		AlignToCycle: a.Config.Watch.AlignToCycle,
		StartupDelay: a.Config.Watch.StartupDelay,
	}, a.Logger)

	loop := &watchLoop{
		app:      a,
		notifier: a.newNotifier(),
		store:    store,
		cooldown: a.Config.Alerting.Cooldown,
	}

	a.Logger.Info().
		Str("fuel", a.Config.Watch.Fuel).
		Dur("interval", a.Config.Watch.Interval).
		Msg("starting watch loop")

	err = sched.Run(ctx, loop.processCycle)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("watch terminated with error")
		return err
	}

	a.Logger.Info().Msg("watch stopped")
	return nil
}

type watchLoop struct {
	app       *App
	notifier  alerting.Notifier
	store     *storage.Store
	cooldown  time.Duration
	lastAlert time.Time
}

func (w *watchLoop) processCycle(ctx context.Context, cycle time.Time) error {
	unlock, proceed, err := w.acquireLock(ctx)
	if err != nil {
		return err
	}
	if !proceed {
		w.app.Logger.Debug().Time("cycle", cycle).Msg("skip cycle because advisory lock held elsewhere")
		return nil
	}
	if unlock != nil {
		defer unlock()
	}

	cfg := w.app.Config
	cat := cfg.BuildCatalog()
	product := cat.ProductByID(cfg.Watch.Fuel)
	store := cat.StoreByID(cfg.Watch.Store)

	price := forecast.Simulate(product.BasePrice, product.Variance, cycle)
	status := alerting.Evaluate(cfg.AlertConfig(), price)

	w.app.Logger.Info().
		Time("cycle", cycle).
		Str("fuel", product.ID).
		Str("price", price.StringFixed(3)).
		Bool("triggered", status.Triggered).
		Msg("cycle evaluated")

	if !status.Triggered {
		return nil
	}
	if w.cooldown > 0 && !w.lastAlert.IsZero() && cycle.Sub(w.lastAlert) < w.cooldown {
		w.app.Logger.Debug().Time("cycle", cycle).Msg("alert suppressed by cooldown")
		return nil
	}
	w.lastAlert = cycle

	alertCfg := cfg.AlertConfig()
	if w.store != nil {
		event := storage.AlertEvent{
			ProductID:  product.ID,
			Price:      price,
			Threshold:  alertCfg.Threshold,
			Method:     string(alertCfg.Method),
			OccurredAt: cycle,
		}
		if _, err := w.store.InsertAlertEvent(ctx, event); err != nil {
			w.app.Logger.Error().Err(err).Time("cycle", cycle).Msg("failed to persist alert event")
		}
	}

	if w.notifier == nil {
		w.app.Logger.Warn().Time("cycle", cycle).Msg("alert triggered but no gateway configured")
		return nil
	}

	note := alerting.Notification{
		ProductID:   product.ID,
		ProductName: product.Name,
		StoreName:   store.Name,
		Price:       price,
		Threshold:   alertCfg.Threshold,
		Method:      alertCfg.Method,
		OccurredAt:  cycle,
	}
	if err := w.notifier.Notify(ctx, note); err != nil {
		w.app.Logger.Error().Err(err).Time("cycle", cycle).Msg("failed to dispatch alert")
	}

	return nil
}

func (w *watchLoop) acquireLock(ctx context.Context) (func(), bool, error) {
	key := w.app.Config.Watch.AdvisoryLockKey
	if key == 0 || w.store == nil {
		return nil, true, nil
	}
	unlock, acquired, err := w.store.TryAdvisoryLock(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}
	return unlock, true, nil
}
