package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/testutil"
)

type countingWorld struct {
	mu    sync.Mutex
	count int
	err   error
}

func (w *countingWorld) Tick(_ context.Context) (*model.TickSummary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.count++
	if w.err != nil {
		return nil, w.err
	}
	return &model.TickSummary{Generation: uint64(w.count)}, nil
}

func (w *countingWorld) ticks() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

func TestDriverTicksAtInterval(t *testing.T) {
	world := &countingWorld{}
	driver := NewDriver(world, 10*time.Millisecond, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, world.ticks(), 3, "expected several ticks in 100ms at 10ms cadence")
}

func TestDriverReschedule(t *testing.T) {
	world := &countingWorld{}
	// Effectively never ticks until rescheduled
	driver := NewDriver(world, time.Hour, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, world.ticks())

	driver.Reschedule(10 * time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, world.ticks(), 1, "expected ticks after reschedule")
}

func TestDriverRescheduleKeepsMostRecent(t *testing.T) {
	world := &countingWorld{}
	driver := NewDriver(world, time.Hour, testutil.NopLogger())

	// Both land before the loop runs; only the last should apply
	driver.Reschedule(time.Minute)
	driver.Reschedule(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, world.ticks(), 1)
}

func TestDriverRescheduleIgnoresNonPositive(t *testing.T) {
	world := &countingWorld{}
	driver := NewDriver(world, time.Hour, testutil.NopLogger())

	driver.Reschedule(0)
	driver.Reschedule(-time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.Zero(t, world.ticks())
}

func TestDriverKeepsRunningAfterTickError(t *testing.T) {
	world := &countingWorld{err: errors.New("storage down")}
	driver := NewDriver(world, 10*time.Millisecond, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, world.ticks(), 2, "driver should keep ticking past errors")
}

func TestDriverStopsOnCancel(t *testing.T) {
	world := &countingWorld{}
	driver := NewDriver(world, time.Hour, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("driver did not stop on context cancel")
	}
}

func TestNewDriverDefaultsInterval(t *testing.T) {
	driver := NewDriver(&countingWorld{}, 0, testutil.NopLogger())
	assert.Equal(t, time.Duration(model.DefaultTickIntervalMS)*time.Millisecond, driver.interval)
}
