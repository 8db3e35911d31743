// Package terrain composes priority-ranked layers into a deterministic
// position-to-tile function and builds whole chunks from it.
package terrain

import (
	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

// ValueFunc samples a layer's field at a world position.
type ValueFunc func(w *world.World, pos tile.WorldPos) float64

// Range is a half-open magnitude interval [Min, Max).
type Range struct {
	Min, Max uint32
}

// Layer is one membership rule. Kind decides the tile it produces; resource
// kinds also draw a magnitude from Magnitude.
type Layer struct {
	Name      string
	Priority  uint8
	Kind      tile.Kind
	Threshold float64
	Magnitude Range
	Field     ValueFunc
}

// NoiseField samples the world's noise at the given frequency.
func NoiseField(frequency float64) ValueFunc {
	return func(w *world.World, pos tile.WorldPos) float64 {
		return w.Noise(pos.X, pos.Y, frequency)
	}
}

func (l Layer) Value(w *world.World, pos tile.WorldPos) float64 {
	return l.Field(w, pos)
}

// IsMember reports whether Value(pos) - offset exceeds the layer threshold.
func (l Layer) IsMember(w *world.World, pos tile.WorldPos, offset float64) bool {
	return l.Value(w, pos)-offset > l.Threshold
}

// Tile returns the tile this layer places at pos.
func (l Layer) Tile(w *world.World, pos tile.WorldPos) tile.Tile {
	if !l.Kind.IsResource() {
		return tile.Static(l.Kind)
	}
	return tile.Resource(l.Kind, Magnitude(w.Seed, pos, l.Magnitude))
}
