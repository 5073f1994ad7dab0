// Package scheduler drives the world clock. A single Driver goroutine
// ticks the controller at the configured cadence and follows interval
// changes without restarting.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
)

// Ticker is the part of the world the driver needs
type Ticker interface {
	Tick(ctx context.Context) (*model.TickSummary, error)
}

// Driver runs the tick loop
type Driver struct {
	world    Ticker
	logger   *slog.Logger
	interval time.Duration

	reschedule chan time.Duration
}

// NewDriver creates a Driver ticking at the given interval
func NewDriver(world Ticker, interval time.Duration, logger *slog.Logger) *Driver {
	if interval <= 0 {
		interval = time.Duration(model.DefaultTickIntervalMS) * time.Millisecond
	}
	return &Driver{
		world:      world,
		logger:     logger.With(slog.String("component", "scheduler")),
		interval:   interval,
		reschedule: make(chan time.Duration, 1),
	}
}

// Reschedule switches the cadence starting with the next tick. Only the
// most recent request is kept if several arrive before the loop wakes.
func (d *Driver) Reschedule(interval time.Duration) {
	if interval <= 0 {
		return
	}
	select {
	case <-d.reschedule:
	default:
	}
	select {
	case d.reschedule <- interval:
	default:
	}
}

// Run ticks the world until the context is canceled. A failed generation
// is logged and skipped; the next tick retries from current state.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("scheduler started", slog.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := d.world.Tick(ctx); err != nil {
				d.logger.Error("tick failed", slog.Any("error", err))
			}

		case interval := <-d.reschedule:
			if interval == d.interval {
				continue
			}
			d.interval = interval
			ticker.Reset(interval)
			d.logger.Info("scheduler rescheduled", slog.Duration("interval", interval))

		case <-ctx.Done():
			d.logger.Info("scheduler stopped")
			return nil
		}
	}
}

var _ world.Rescheduler = (*Driver)(nil)
