package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/api"
	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/config"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/store/postgres"
	"github.com/VoidMesh/worldgen/internal/store/sqlite"
	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "gen-config" {
		if err := genConfig(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// Load configuration
	cfg, fromFile, err := config.LoadWithProperties()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	setupLogging(cfg.Logging)
	logger := logging.GetLogger()
	logger.Debug("Configuration loaded",
		"server_addr", cfg.Server.Addr(),
		"db_driver", cfg.Database.Driver,
		"properties_file", cfg.World.PropertiesFile,
		"properties_loaded", fromFile,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage and connection slots
	slots, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err, "driver", cfg.Database.Driver)
	}
	defer closeStore()

	// World
	w, err := loadWorld(ctx, slots, cfg.World.Seed)
	if err != nil {
		logger.Fatal("Failed to bootstrap world", "error", err)
	}
	logging.WithSeed(w.Seed).Info("World ready", "id", w.ID, "origin_time", w.OriginTime)

	// Chunk cache and manager
	generator := terrain.Default()
	cache := chunk.NewCache(generator, w)
	chunkManager := chunk.NewManager(cache, slots, nil)

	if cfg.World.PreloadRadius >= 0 {
		coords := chunk.Square(tile.ChunkCoord{}, int32(cfg.World.PreloadRadius))
		if err := chunkManager.Preload(ctx, coords); err != nil {
			logger.Error("Failed to preload chunks", "error", err, "radius", cfg.World.PreloadRadius)
		}
	}

	go chunkManager.Run(ctx, cfg.World.TickInterval)

	// HTTP server
	handler := api.NewHandler(chunkManager)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting world server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
		logger.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server...", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited", "cached_chunks", cache.Len())
}

func setupLogging(cfg config.LoggingConfig) {
	logger := logging.GetLogger()
	logging.SetLevel(logger, logging.ParseLevel(cfg.Level))

	if cfg.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}
	logger.SetReportTimestamp(cfg.Timestamp)
	if cfg.Prefix != "" {
		logger.SetPrefix(cfg.Prefix)
	}

	log.SetDefault(logger)
}

// openStore connects the configured backend, migrates it and sizes a slot manager to
// its pool. The "none" driver returns a zero-capacity manager.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*slot.Manager, func(), error) {
	logger := logging.WithComponent("storage")

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.URL, int32(cfg.MaxConns))
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("Postgres store ready", "max_conns", cfg.MaxConns)
		return slot.NewManager(postgres.NewPool(pool)), pool.Close, nil

	case config.DriverSQLite:
		database, err := sqlite.Open(cfg.Path, cfg.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(database); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info("SQLite store ready", "path", cfg.Path, "max_conns", cfg.MaxConns)
		return slot.NewManager(sqlite.NewPool(database, cfg.MaxConns)), func() { database.Close() }, nil

	case config.DriverNone:
		logger.Warn("No storage configured, chunks will not be persisted")
		return slot.NewTestHarness(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func loadWorld(ctx context.Context, slots *slot.Manager, seed *int64) (*world.World, error) {
	bootstrapper := world.NewBootstrapper()
	if slots.Capacity() == 0 {
		return bootstrapper.Ephemeral(seed), nil
	}

	var w *world.World
	err := slots.WithSlot(ctx, func(s *slot.Slot) error {
		var err error
		w, err = bootstrapper.Bootstrap(ctx, s, seed)
		return err
	})
	return w, err
}

func genConfig(args []string) error {
	path := config.DefaultPropertiesFile
	if len(args) > 0 {
		path = args[0]
	}

	p, err := config.WriteDefault(path)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (rpc_port=%d, tick_speed=%d)\n", path, p.RPCPort, p.TickSpeed)
	return nil
}
