// Package world holds the immutable world configuration and its startup bootstrap.
package world

import (
	"time"

	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/store"
)

// World is the seed-bearing configuration every terrain layer samples from.
type World struct {
	ID         int32
	OriginTime time.Time
	Seed       int64

	noise noise.GeneratorInterface
}

// New builds a world whose noise field is derived from seed.
func New(id int32, originTime time.Time, seed int64) *World {
	return NewWithNoise(id, originTime, seed, noise.NewGenerator(seed))
}

// NewWithNoise builds a world around an existing noise field.
func NewWithNoise(id int32, originTime time.Time, seed int64, field noise.GeneratorInterface) *World {
	return &World{
		ID:         id,
		OriginTime: originTime,
		Seed:       seed,
		noise:      field,
	}
}

// FromRow builds a world from its persisted row.
func FromRow(row store.WorldRow) *World {
	return New(row.ID, row.OriginTime, row.Seed)
}

// Noise returns the field sampled at a tile position scaled by frequency.
func (w *World) Noise(x, y int32, frequency float64) float64 {
	return w.noise.Sample(x, y, frequency)
}
