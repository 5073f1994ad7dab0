// Package world owns the shared grid and drives it forward one generation
// at a time. Every grid mutation flows through a single Controller whose
// lock serializes seeding, ticking, and config changes, so a tick always
// sees a settled grid.
package world

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/life"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/player"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage"
	"github.com/Remblej/Game-of-Space-and-Time/internal/stream"
)

// Rescheduler is notified when the tick interval changes. The scheduler
// implements it; the indirection exists because the scheduler also calls
// back into the controller to tick.
type Rescheduler interface {
	Reschedule(interval time.Duration)
}

// Controller manages the grid and the generation counter
type Controller struct {
	storage     storage.Storage
	directory   *player.Directory
	broadcaster *stream.Broadcaster
	logger      *slog.Logger

	mu          sync.Mutex
	generation  uint64
	rescheduler Rescheduler
}

// NewController creates a new world Controller
func NewController(
	storage storage.Storage,
	directory *player.Directory,
	broadcaster *stream.Broadcaster,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		directory:   directory,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "world")),
	}
}

// SetRescheduler wires in the scheduler after construction
func (c *Controller) SetRescheduler(r Rescheduler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rescheduler = r
}

// Bootstrap seeds the config singleton on first run. Later runs find the
// stored config and leave it alone.
func (c *Controller) Bootstrap(ctx context.Context) error {
	_, err := c.storage.GetConfig(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrConfigNotFound) {
		return err
	}

	cfg := &model.Config{
		ID:             model.ConfigID,
		TickIntervalMS: model.DefaultTickIntervalMS,
	}
	if err := c.storage.SaveConfig(ctx, cfg); err != nil {
		return err
	}

	c.logger.Info("world config seeded",
		slog.Uint64("tick_interval_ms", uint64(cfg.TickIntervalMS)))
	return nil
}

// AddCells marks the given positions alive, owned by the caller. Positions
// are taken as sent: duplicates collapse to the last write, already alive
// cells change owner, and out of bounds cells are left for the next tick's
// cull to reap. An unknown identity rejects the whole request before any
// cell is written.
func (c *Controller) AddCells(ctx context.Context, identity model.Identity, cells []model.Cell) error {
	caller, err := c.directory.Resolve(ctx, identity)
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pos := range cells {
		cell := &model.AliveCell{X: pos.X, Y: pos.Y, PlayerID: caller.ID}
		if err := c.storage.UpsertCell(ctx, cell); err != nil {
			return err
		}
	}

	c.logger.Info("cells added",
		slog.Uint64("player_id", uint64(caller.ID)),
		slog.Int("count", len(cells)),
	)
	c.broadcaster.BroadcastCellsAdded(caller.ID, cells)

	return nil
}

// Tick advances the world one generation: snapshot the grid, evaluate the
// update rule, and apply the resulting delta as one unit.
func (c *Controller) Tick(ctx context.Context) (*model.TickSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	alive, err := c.storage.ListCells(ctx)
	if err != nil {
		return nil, err
	}

	delta := life.Step(alive)
	sortAliveCells(delta.Births)
	sortCells(delta.Deaths)

	if err := c.storage.ApplyGridDelta(ctx, delta.Births, delta.Deaths); err != nil {
		return nil, err
	}

	c.generation++
	summary := &model.TickSummary{
		Generation: c.generation,
		Births:     delta.Births,
		Deaths:     delta.Deaths,
		Alive:      len(alive) + len(delta.Births) - len(delta.Deaths),
	}

	c.logger.Info("generation completed",
		slog.Uint64("generation", summary.Generation),
		slog.Int("births", len(summary.Births)),
		slog.Int("deaths", len(summary.Deaths)),
		slog.Int("alive", summary.Alive),
	)
	c.broadcaster.BroadcastTickCompleted(summary)

	return summary, nil
}

// Snapshot returns the current generation and alive set, consistent with
// each other.
func (c *Controller) Snapshot(ctx context.Context) (uint64, []model.AliveCell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cells, err := c.storage.ListCells(ctx)
	if err != nil {
		return 0, nil, err
	}

	sortAliveCells(cells)
	return c.generation, cells, nil
}

// Config returns the current world configuration
func (c *Controller) Config(ctx context.Context) (*model.Config, error) {
	return c.storage.GetConfig(ctx)
}

// UpdateTickInterval persists a new tick cadence and pushes it to the
// scheduler. A zero interval is rejected; a missing config singleton is
// fatal to the operation.
func (c *Controller) UpdateTickInterval(ctx context.Context, tickIntervalMS uint32) (*model.Config, error) {
	if tickIntervalMS == 0 {
		return nil, model.ErrInvalidTickInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.storage.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	cfg.TickIntervalMS = tickIntervalMS
	if err := c.storage.SaveConfig(ctx, cfg); err != nil {
		return nil, err
	}

	if c.rescheduler != nil {
		c.rescheduler.Reschedule(cfg.TickInterval())
	}

	c.logger.Info("tick interval changed",
		slog.Uint64("tick_interval_ms", uint64(tickIntervalMS)))
	c.broadcaster.BroadcastTickIntervalChanged(tickIntervalMS)

	return cfg, nil
}

func sortCells(cells []model.Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

func sortAliveCells(cells []model.AliveCell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

// Interface for dependency injection
type ControllerInterface interface {
	Bootstrap(ctx context.Context) error
	AddCells(ctx context.Context, identity model.Identity, cells []model.Cell) error
	Tick(ctx context.Context) (*model.TickSummary, error)
	Snapshot(ctx context.Context) (uint64, []model.AliveCell, error)
	Config(ctx context.Context) (*model.Config, error)
	UpdateTickInterval(ctx context.Context, tickIntervalMS uint32) (*model.Config, error)
}

var _ ControllerInterface = (*Controller)(nil)
