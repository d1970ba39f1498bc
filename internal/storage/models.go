package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// PredictionSnapshot is the persisted summary of one prediction
// request. The full 15-point series is reproducible from the date, so
// only the derived values are stored.
type PredictionSnapshot struct {
	ID          string
	ProductID   string
	StoreID     string
	TargetDate  time.Time
	Hour        int
	TargetPrice decimal.Decimal
	TrendPct    *decimal.Decimal
	CheapestID  string
	PriciestID  string
	CreatedAt   time.Time
}

// AlertEvent records one triggered alert dispatch for auditing. The
// alert configuration itself is never persisted.
type AlertEvent struct {
	ID         int64
	ProductID  string
	Price      decimal.Decimal
	Threshold  decimal.Decimal
	Method     string
	OccurredAt time.Time
	CreatedAt  time.Time
}
