package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotConfigured indicates the storage pool was not initialised.
var ErrNotConfigured = errors.New("storage: pool not configured")

const (
	insertSnapshotSQL = `INSERT INTO prediction_snapshots (
        id,
        product_id,
        store_id,
        target_date,
        hour_of_day,
        target_price,
        trend_pct,
        cheapest_product,
        priciest_product
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9
    );`

	listRecentSnapshotsSQL = `SELECT
        id,
        product_id,
        store_id,
        target_date,
        hour_of_day,
        target_price,
        trend_pct,
        cheapest_product,
        priciest_product,
        created_at
    FROM prediction_snapshots
    ORDER BY created_at DESC
    LIMIT $1;`

	countSnapshotsSQL = `SELECT COUNT(*) FROM prediction_snapshots;`

	insertAlertEventSQL = `INSERT INTO alert_events (
        product_id,
        price,
        threshold,
        method,
        occurred_at
    ) VALUES (
        $1,$2,$3,$4,$5
    )
    RETURNING id, product_id, price, threshold, method, occurred_at, created_at;`

	listRecentAlertEventsSQL = `SELECT
        id,
        product_id,
        price,
        threshold,
        method,
        occurred_at,
        created_at
    FROM alert_events
    ORDER BY created_at DESC
    LIMIT $1;`

	deleteAlertEventsBeforeSQL = `DELETE FROM alert_events WHERE created_at < $1;`

	tryAdvisoryLockSQL = `SELECT pg_try_advisory_lock($1);`
	advisoryUnlockSQL  = `SELECT pg_advisory_unlock($1);`
)

// SnapshotStore defines operations for prediction snapshot persistence.
type SnapshotStore interface {
	InsertSnapshot(ctx context.Context, snap PredictionSnapshot) error
	ListRecentSnapshots(ctx context.Context, limit int) ([]PredictionSnapshot, error)
	CountSnapshots(ctx context.Context) (int64, error)
}

// AlertEventStore defines operations for alert auditing.
type AlertEventStore interface {
	InsertAlertEvent(ctx context.Context, event AlertEvent) (AlertEvent, error)
	ListRecentAlertEvents(ctx context.Context, limit int) ([]AlertEvent, error)
	DeleteAlertEventsBefore(ctx context.Context, olderThan time.Time) error
}

// AdvisoryLocker exposes advisory lock helpers.
type AdvisoryLocker interface {
	TryAdvisoryLock(ctx context.Context, key int64) (unlock func(), acquired bool, err error)
}

// Store aggregates access to snapshots and alert events.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// TryAdvisoryLock attempts to acquire a postgres advisory lock and
// returns a release func. Used by watch mode to keep multiple
// instances from double-dispatching alerts.
func (s *Store) TryAdvisoryLock(ctx context.Context, key int64) (func(), bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, false, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, tryAdvisoryLockSQL, key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	unlock := func() {
		ctxUnlock, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = conn.Exec(ctxUnlock, advisoryUnlockSQL, key)
		conn.Release()
	}
	return unlock, true, nil
}

// InsertSnapshot persists a prediction snapshot.
func (s *Store) InsertSnapshot(ctx context.Context, snap PredictionSnapshot) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	var trend interface{}
	if snap.TrendPct != nil {
		trend = snap.TrendPct.String()
	}

	_, execErr := pool.Exec(ctx, insertSnapshotSQL,
		snap.ID,
		snap.ProductID,
		snap.StoreID,
		snap.TargetDate,
		snap.Hour,
		snap.TargetPrice.String(),
		trend,
		snap.CheapestID,
		snap.PriciestID,
	)
	if execErr != nil {
		return fmt.Errorf("insert prediction snapshot: %w", execErr)
	}
	return nil
}

// ListRecentSnapshots lists the most recent snapshots.
func (s *Store) ListRecentSnapshots(ctx context.Context, limit int) ([]PredictionSnapshot, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentSnapshotsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent snapshots: %w", queryErr)
	}
	defer rows.Close()

	snaps := make([]PredictionSnapshot, 0, limit)
	for rows.Next() {
		snap, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		snaps = append(snaps, snap)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return snaps, nil
}

// CountSnapshots counts stored snapshots.
func (s *Store) CountSnapshots(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countSnapshotsSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count snapshots: %w", scanErr)
	}
	return count, nil
}

// InsertAlertEvent persists an alert dispatch.
func (s *Store) InsertAlertEvent(ctx context.Context, event AlertEvent) (AlertEvent, error) {
	pool, err := s.getPool()
	if err != nil {
		return AlertEvent{}, err
	}

	row := pool.QueryRow(ctx, insertAlertEventSQL,
		event.ProductID,
		event.Price.String(),
		event.Threshold.String(),
		event.Method,
		event.OccurredAt,
	)

	return scanAlertEvent(row)
}

// ListRecentAlertEvents lists most recent alert events.
func (s *Store) ListRecentAlertEvents(ctx context.Context, limit int) ([]AlertEvent, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentAlertEventsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent alert events: %w", queryErr)
	}
	defer rows.Close()

	events := make([]AlertEvent, 0, limit)
	for rows.Next() {
		event, scanErr := scanAlertEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return events, nil
}

// DeleteAlertEventsBefore prunes historical alert events.
func (s *Store) DeleteAlertEventsBefore(ctx context.Context, olderThan time.Time) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, deleteAlertEventsBeforeSQL, olderThan); execErr != nil {
		return fmt.Errorf("delete alert events before: %w", execErr)
	}
	return nil
}

func scanSnapshot(rows pgx.Rows) (PredictionSnapshot, error) {
	var (
		snap     PredictionSnapshot
		priceStr string
		trendStr *string
	)

	if err := rows.Scan(
		&snap.ID,
		&snap.ProductID,
		&snap.StoreID,
		&snap.TargetDate,
		&snap.Hour,
		&priceStr,
		&trendStr,
		&snap.CheapestID,
		&snap.PriciestID,
		&snap.CreatedAt,
	); err != nil {
		return PredictionSnapshot{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return PredictionSnapshot{}, fmt.Errorf("parse target price: %w", err)
	}
	snap.TargetPrice = price

	if trendStr != nil {
		trend, err := decimal.NewFromString(*trendStr)
		if err != nil {
			return PredictionSnapshot{}, fmt.Errorf("parse trend pct: %w", err)
		}
		snap.TrendPct = &trend
	}

	return snap, nil
}

func scanAlertEvent(row pgx.Row) (AlertEvent, error) {
	var (
		event        AlertEvent
		priceStr     string
		thresholdStr string
	)

	if err := row.Scan(
		&event.ID,
		&event.ProductID,
		&priceStr,
		&thresholdStr,
		&event.Method,
		&event.OccurredAt,
		&event.CreatedAt,
	); err != nil {
		return AlertEvent{}, fmt.Errorf("scan alert event: %w", err)
	}

	var convErr error
	event.Price, convErr = decimal.NewFromString(priceStr)
	if convErr != nil {
		return AlertEvent{}, fmt.Errorf("parse alert price: %w", convErr)
	}
	event.Threshold, convErr = decimal.NewFromString(thresholdStr)
	if convErr != nil {
		return AlertEvent{}, fmt.Errorf("parse alert threshold: %w", convErr)
	}

	return event, nil
}
