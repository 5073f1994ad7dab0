package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Remblej/Game-of-Space-and-Time/internal/dependencies/clock"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/player"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/scheduler"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage/memory"
	mysqlstorage "github.com/Remblej/Game-of-Space-and-Time/internal/storage/mysql"
	redisstorage "github.com/Remblej/Game-of-Space-and-Time/internal/storage/redis"
	"github.com/Remblej/Game-of-Space-and-Time/internal/stream"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeMySQL  = "mysql"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Event plumbing
	Hub         *stream.Hub
	Broadcaster *stream.Broadcaster

	// Services
	PlayerDirectory *player.Directory
	WorldController *world.Controller
	Scheduler       *scheduler.Driver
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "mysql")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MySQLConfig holds MySQL connection settings (required if StorageType is "mysql")
	MySQLConfig *mysqlstorage.Config
}

// New creates a new application with all dependencies wired. The event hub
// is already running when New returns; Close releases it.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeMySQL:
		if cfg.MySQLConfig == nil {
			return nil, errors.New("MySQLConfig required when StorageType is mysql")
		}
		mysqlStore, err := mysqlstorage.New(*cfg.MySQLConfig)
		if err != nil {
			return nil, err
		}
		store = mysqlStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'mysql'")
	}

	// Create external dependencies
	clk := clock.New()

	return newWithDependencies(store, clk, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	hub := stream.NewHub(logger)
	go hub.Run()

	broadcaster := stream.NewBroadcaster(hub, clk, logger)
	directory := player.NewDirectory(store, broadcaster, clk, logger)
	worldController := world.NewController(store, directory, broadcaster, logger)

	driver := scheduler.NewDriver(worldController, 0, logger)
	worldController.SetRescheduler(driver)

	return &App{
		Storage:         store,
		Clock:           clk,
		Hub:             hub,
		Broadcaster:     broadcaster,
		PlayerDirectory: directory,
		WorldController: worldController,
		Scheduler:       driver,
	}
}

// Bootstrap seeds storage on first run and aligns the scheduler with the
// stored tick interval. Call it once before serving.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.WorldController.Bootstrap(ctx); err != nil {
		return err
	}

	cfg, err := a.WorldController.Config(ctx)
	if err != nil {
		return err
	}
	a.Scheduler.Reschedule(cfg.TickInterval())

	return nil
}

// Close releases background resources
func (a *App) Close() {
	a.Hub.Close()
}
