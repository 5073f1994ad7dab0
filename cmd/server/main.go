package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api"
	"github.com/Remblej/Game-of-Space-and-Time/internal/config"
	"github.com/Remblej/Game-of-Space-and-Time/internal/factory"
	mysqlstorage "github.com/Remblej/Game-of-Space-and-Time/internal/storage/mysql"
	redisstorage "github.com/Remblej/Game-of-Space-and-Time/internal/storage/redis"
	"github.com/Remblej/Game-of-Space-and-Time/internal/ws"
)

func main() {
	// GOST_CONFIG names an explicit config file; otherwise gost.yaml is
	// picked up from the working directory if present
	cfg, err := config.Load(os.Getenv("GOST_CONFIG"))
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}

	switch cfg.Storage.Type {
	case factory.StorageTypeRedis:
		if cfg.Storage.Redis.URL == "" {
			logger.Error("storage.redis.url required when storage.type=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.Redis.URL
		factoryCfg.RedisConfig = &redisCfg

	case factory.StorageTypeMySQL:
		if cfg.Storage.MySQL.DSN == "" {
			logger.Error("storage.mysql.dsn required when storage.type=mysql")
			os.Exit(1)
		}
		mysqlCfg := mysqlstorage.DefaultConfig()
		mysqlCfg.DSN = cfg.Storage.MySQL.DSN
		factoryCfg.MySQLConfig = &mysqlCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	// Seed storage and align the scheduler with the stored tick interval
	if err := app.Bootstrap(context.Background()); err != nil {
		logger.Error("failed to bootstrap world", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router with the websocket gateway mounted
	wsGateway := ws.NewGateway(app.PlayerDirectory, app.WorldController, app.Hub, app.Clock, logger)
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Directory:       app.PlayerDirectory,
		WorldController: app.WorldController,
		Hub:             app.Hub,
		WSHandler:       wsGateway,
		AdminTokenHash:  cfg.Admin.TokenHash,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := api.NewServer(router, serverConfig, logger)

	// Run the HTTP server and the tick loop until a signal or a failure
	// stops one of them
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start()
	})
	g.Go(func() error {
		return app.Scheduler.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		// Closing the hub first releases the open event streams and
		// websocket sessions, so the drain below does not wait on them
		app.Close()
		return server.Shutdown(context.Background())
	})

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
