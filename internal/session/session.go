package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fuelcast/internal/alerting"
	"fuelcast/internal/catalog"
	"fuelcast/internal/forecast"
)

// Result is one complete, immutable prediction. A new request replaces
// the session's result wholesale; nothing patches a Result in place.
type Result struct {
	ID         string
	Product    catalog.Product
	Store      catalog.Store
	TargetDate time.Time
	Hour       int

	History []forecast.PricePoint
	Target  *forecast.PricePoint
	Prev    *forecast.PricePoint
	Next    *forecast.PricePoint

	// TrendDelta and TrendPct compare the target against the previous
	// day. Both are zero when no previous-day point exists.
	TrendDelta decimal.Decimal
	TrendPct   decimal.Decimal

	Comparison forecast.Comparison
	Stats      forecast.Stats
	Optimal    forecast.Suggestion
	CreatedAt  time.Time
}

// Options tune a session. A nil Window means the standard half-width;
// an explicit zero is honoured and yields a single-point history with
// no neighbouring days.
type Options struct {
	Window      *int
	DefaultHour int
	Policy      forecast.OptimalTimePolicy
}

// Session holds the user's current selection and the latest prediction.
// The engine functions it calls are pure; the mutex only guards the
// session's own input/result slots.
type Session struct {
	mu     sync.Mutex
	cat    catalog.Catalog
	window int
	policy forecast.OptimalTimePolicy
	logger zerolog.Logger

	productID  string
	storeID    string
	targetDate time.Time
	hour       int

	alert  alerting.Config
	result *Result
}

// New constructs a session over a catalog. A zero Options value gets
// the standard window and default hour.
func New(cat catalog.Catalog, opts Options, logger zerolog.Logger) *Session {
	window := forecast.Window
	if opts.Window != nil {
		window = *opts.Window
		if window < 0 {
			window = 0
		}
	}
	hour := opts.DefaultHour
	if hour < 0 || hour > 23 {
		hour = 6
	}
	policy := opts.Policy
	if policy == nil {
		policy = forecast.FixedOffsetPolicy{}
	}
	return &Session{
		cat:    cat,
		window: window,
		policy: policy,
		logger: logger.With().Str("component", "session").Logger(),
		hour:   hour,
	}
}

// SelectProduct records the product choice. Unknown ids resolve to the
// catalog's first product at request time.
func (s *Session) SelectProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productID = id
}

// SelectStore records the store choice.
func (s *Session) SelectStore(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeID = id
}

// SelectDate records the target date.
func (s *Session) SelectDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetDate = date
}

// SelectHour records the display hour-of-day. Values outside 0-23 are
// ignored. The hour never feeds the simulator.
func (s *Session) SelectHour(hour int) {
	if hour < 0 || hour > 23 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hour = hour
}

// RequestPrediction runs the engine over the current selection and
// replaces the session's result. The target date defaults to today
// when none was selected.
func (s *Session) RequestPrediction() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.targetDate
	if target.IsZero() {
		target = time.Now()
	}

	product := s.cat.ProductByID(s.productID)
	store := s.cat.StoreByID(s.storeID)

	history := forecast.BuildSeries(target, product, s.window)

	result := &Result{
		ID:         uuid.NewString(),
		Product:    product,
		Store:      store,
		TargetDate: target,
		Hour:       s.hour,
		History:    history,
		Target:     &history[s.window],
		Comparison: forecast.Rank(target, s.cat.Products()),
		Stats:      forecast.SeriesStats(history),
		CreatedAt:  time.Now().UTC(),
	}
	result.Optimal = s.policy.Suggest(*result.Target)

	// Neighbouring days exist only when the window is at least one day
	// wide; their absence is "no data", not an error.
	if s.window >= 1 {
		result.Prev = &history[s.window-1]
		result.Next = &history[s.window+1]
		if !result.Prev.Price.IsZero() {
			result.TrendDelta = result.Target.Price.Sub(result.Prev.Price)
			result.TrendPct = result.TrendDelta.
				Div(result.Prev.Price).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
	}

	s.result = result
	s.logger.Debug().
		Str("prediction_id", result.ID).
		Str("fuel", product.ID).
		Str("price", result.Target.Price.StringFixed(3)).
		Msg("prediction computed")
	return result
}

// Result returns the latest prediction, or nil when none was requested.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// UpdateAlertConfig replaces the session's alert configuration.
func (s *Session) UpdateAlertConfig(cfg alerting.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = cfg
}

// AlertConfig returns the current alert configuration.
func (s *Session) AlertConfig() alerting.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert
}

// AlertStatus evaluates the alert configuration against the selected
// product's simulated price on the selected date.
func (s *Session) AlertStatus() alerting.Status {
	s.mu.Lock()
	cfg := s.alert
	target := s.targetDate
	if target.IsZero() {
		target = time.Now()
	}
	product := s.cat.ProductByID(s.productID)
	s.mu.Unlock()

	price := forecast.Simulate(product.BasePrice, product.Variance, target)
	return alerting.Evaluate(cfg, price)
}
