package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
)

// IdempotencySweeper purges expired idempotency records on an interval.
type IdempotencySweeper struct {
	svc      portssvc.IdempotencySvc
	interval time.Duration
	logger   *slog.Logger
}

// NewIdempotencySweeper creates a sweeper. A non-positive interval means 10 minutes.
func NewIdempotencySweeper(svc portssvc.IdempotencySvc, interval time.Duration, logger *slog.Logger) *IdempotencySweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IdempotencySweeper{svc: svc, interval: interval, logger: logger}
}

// Run sweeps until ctx is cancelled.
func (w *IdempotencySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Idempotency sweeper started", slog.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Idempotency sweeper stopped")
			return
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single purge and logs the outcome.
func (w *IdempotencySweeper) SweepOnce(ctx context.Context) {
	n, err := w.svc.PurgeExpired(ctx)
	if err != nil {
		w.logger.Error("Idempotency sweep failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		w.logger.Info("Purged expired idempotency records", slog.Int64("count", n))
	}
}
