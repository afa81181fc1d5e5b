package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// poolMonitor reports callers that had to wait for a pooled connection.
type poolMonitor struct {
	logger *slog.Logger
	stats  func() sql.DBStats
	prev   sql.DBStats
}

func newPoolMonitor(logger *slog.Logger, sqlDB *sql.DB) *poolMonitor {
	return &poolMonitor{logger: logger, stats: sqlDB.Stats}
}

func (m *poolMonitor) run(ctx context.Context, interval time.Duration) {
	if m.logger == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.prev = m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.observe(ctx, m.stats())
		}
	}
}

// observe logs the waits since the previous sample. Long waits are warnings.
func (m *poolMonitor) observe(ctx context.Context, cur sql.DBStats) {
	defer func() { m.prev = cur }()

	waits := cur.WaitCount - m.prev.WaitCount
	if waits <= 0 {
		return
	}
	waited := cur.WaitDuration - m.prev.WaitDuration

	level := slog.LevelDebug
	if waited >= dbPoolWarnDurationThreshold {
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(ctx, level, "Postgres pool wait",
		slog.Int64("waitCountDelta", waits),
		slog.Duration("waitDurationDelta", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	)
}
