package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fuelcast/internal/alerting"
	"fuelcast/internal/config"
	"fuelcast/internal/forecast"
	"fuelcast/internal/session"
	"fuelcast/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI
// commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newSession() *session.Session {
	return session.New(a.Config.BuildCatalog(), session.Options{
		Window:      &a.Config.Prediction.Window,
		DefaultHour: a.Config.Prediction.DefaultHour,
		Policy:      forecast.FixedOffsetPolicy{},
	}, a.Logger)
}

func (a *App) newNotifier() alerting.Notifier {
	hooks := a.Config.Alerting.Webhooks
	endpoints := make(map[alerting.Method]string)
	if hooks.EmailURL != "" {
		endpoints[alerting.MethodEmail] = hooks.EmailURL
	}
	if hooks.SMSURL != "" {
		endpoints[alerting.MethodSMS] = hooks.SMSURL
	}
	if len(endpoints) == 0 {
		return nil
	}
	return alerting.NewWebhookNotifier(endpoints, a.Config.Alerting.RequestTimeout, a.Logger)
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// PredictOptions select the prediction inputs. Zero values defer to
// configuration defaults.
type PredictOptions struct {
	FuelID  string
	StoreID string
	Date    *time.Time
	Hour    int
}

// ExportOptions hold parameters for exporting a prediction series.
type ExportOptions struct {
	FuelID    string
	Date      *time.Time
	CSVPath   string
	PNGPath   string
	MaxPoints int
}

// ShowOptions configure the show and alerts commands.
type ShowOptions struct {
	Limit int
}

// SimulateOptions configure a one-off alert evaluation.
type SimulateOptions struct {
	Price     float64
	Threshold float64
	Method    string
	Dispatch  bool
}
