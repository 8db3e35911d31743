package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/cmd/debug/models"
	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/store/sqlite"
	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/world"
)

func main() {
	dbPath := flag.String("db", "./world.db", "Path to the SQLite database, empty to run without persistence")
	seedFlag := flag.String("seed", "", "World seed; empty keeps the stored seed or picks a random one")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	startView := flag.String("view", "chunks", "Starting view (menu, chunks, overview)")
	radius := flag.Int("radius", models.DefaultStreamRadius, "Chunks kept loaded around the camera")
	maxConns := flag.Int("conns", 4, "SQLite connection slots")
	tick := flag.Duration("tick", 100*time.Millisecond, "Streaming tick interval")
	flag.Parse()

	// The terminal belongs to the UI; logs go to debug.log when DEBUG is set.
	var logOutput io.Writer = io.Discard
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}
	logging.Logger = log.NewWithOptions(logOutput, log.Options{ReportTimestamp: true})
	logging.SetLevel(logging.Logger, logging.ParseLevel(*logLevel))
	logger := logging.GetLogger()

	if *tick <= 0 {
		fmt.Println("fatal: -tick must be positive")
		os.Exit(2)
	}

	seed, err := parseSeed(*seedFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -seed:", err)
		os.Exit(2)
	}

	ctx := context.Background()

	slots, closeStore, err := openStore(*dbPath, *maxConns)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open database:", err)
		os.Exit(1)
	}
	defer closeStore()

	bootstrapper := world.NewBootstrapper()
	var w *world.World
	if slots.Capacity() == 0 {
		w = bootstrapper.Ephemeral(seed)
	} else {
		err = slots.WithSlot(ctx, func(s *slot.Slot) error {
			var err error
			w, err = bootstrapper.Bootstrap(ctx, s, seed)
			return err
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to load world:", err)
			os.Exit(1)
		}
	}

	cache := chunk.NewCache(terrain.Default(), w)
	manager := chunk.NewManager(cache, slots, nil)

	app := models.NewApp(manager, models.Options{
		StartView:    *startView,
		Radius:       int32(*radius),
		TickInterval: *tick,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())

	logger.Info("Starting debug viewer", "db_path", *dbPath, "seed", w.Seed, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error running debug viewer:", err)
		os.Exit(1)
	}
}

func parseSeed(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func openStore(path string, maxConns int) (*slot.Manager, func(), error) {
	if path == "" {
		return slot.NewTestHarness(), func() {}, nil
	}

	database, err := sqlite.Open(path, maxConns)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlite.Migrate(database); err != nil {
		database.Close()
		return nil, nil, err
	}
	return slot.NewManager(sqlite.NewPool(database, maxConns)), func() { database.Close() }, nil
}
