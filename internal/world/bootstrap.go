package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/store"
)

// Bootstrapper loads or creates the single world row at startup.
type Bootstrapper struct {
	logger *log.Logger
	now    func() time.Time
	seeds  func() int64
}

// NewBootstrapper creates a bootstrapper that draws random seeds from the wall clock.
func NewBootstrapper() *Bootstrapper {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Bootstrapper{
		logger: logging.WithComponent("world"),
		now:    func() time.Time { return time.Now().UTC() },
		seeds:  rng.Int63,
	}
}

// Bootstrap returns the persisted world. With no row it creates one from the configured
// seed, or a random seed when none is configured. A configured seed that disagrees with
// the persisted one replaces the world row; a failed replacement leaves the old row in place.
func (b *Bootstrapper) Bootstrap(ctx context.Context, st store.Store, configured *int64) (*World, error) {
	row, err := st.LoadWorld(ctx)
	switch {
	case err == nil:
		if configured == nil || *configured == row.Seed {
			b.logger.Info("Loaded world", "id", row.ID, "seed", row.Seed, "origin_time", row.OriginTime)
			return FromRow(row), nil
		}
		b.logger.Warn("Configured seed differs from stored world, resetting",
			"stored_seed", row.Seed,
			"configured_seed", *configured,
		)
		row, err = st.ReplaceWorld(ctx, b.now(), *configured)
		if err != nil {
			return nil, fmt.Errorf("failed to reset world: %w", err)
		}
		b.logger.Info("Replaced world", "id", row.ID, "seed", row.Seed)
		return FromRow(row), nil
	case errors.Is(err, store.ErrNotFound):
		b.logger.Info("No world stored, creating one")
	default:
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	seed := b.pickSeed(configured)
	row, err = st.CreateWorld(ctx, b.now(), seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	b.logger.Info("Created world", "id", row.ID, "seed", row.Seed)
	return FromRow(row), nil
}

// Ephemeral builds a world that is never persisted, for running without storage.
func (b *Bootstrapper) Ephemeral(configured *int64) *World {
	seed := b.pickSeed(configured)
	b.logger.Warn("Running with an unpersisted world", "seed", seed)
	return New(0, b.now(), seed)
}

func (b *Bootstrapper) pickSeed(configured *int64) int64 {
	if configured != nil {
		return *configured
	}
	return b.seeds()
}
