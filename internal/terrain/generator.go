package terrain

import (
	"sort"

	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

// SoftThresholdOffset loosens base-layer membership when computing the modifier
// that suppresses resources next to base terrain.
const SoftThresholdOffset = -0.1

// Generator resolves world positions to tiles. Base and resource layers are each kept
// in descending priority; equal priorities keep insertion order.
// Generator is not safe for concurrent mutation, but Tile and Chunk may run concurrently
// once construction is done.
type Generator struct {
	base      []Layer
	resources []Layer
}

// NewGenerator builds a generator from explicit layer lists.
func NewGenerator(base, resources []Layer) *Generator {
	g := &Generator{
		base:      append([]Layer(nil), base...),
		resources: append([]Layer(nil), resources...),
	}
	sortByPriority(g.base)
	sortByPriority(g.resources)
	return g
}

// Default builds the generator with the built-in layers.
func Default() *Generator {
	return NewGenerator(
		[]Layer{Water(), Impassable()},
		[]Layer{Copper(), Iron(), Coal()},
	)
}

// AddBase inserts a base-terrain layer.
func (g *Generator) AddBase(l Layer) {
	g.base = append(g.base, l)
	sortByPriority(g.base)
}

// AddResource inserts a resource layer.
func (g *Generator) AddResource(l Layer) {
	g.resources = append(g.resources, l)
	sortByPriority(g.resources)
}

// BaseLayers returns the base layers in evaluation order.
func (g *Generator) BaseLayers() []Layer {
	return append([]Layer(nil), g.base...)
}

// ResourceLayers returns the resource layers in evaluation order.
func (g *Generator) ResourceLayers() []Layer {
	return append([]Layer(nil), g.resources...)
}

// Tile resolves one world position.
func (g *Generator) Tile(w *world.World, pos tile.WorldPos) tile.Tile {
	for _, l := range g.base {
		if l.IsMember(w, pos, 0) {
			return l.Tile(w, pos)
		}
	}

	modifier := 0.0
	for _, l := range g.base {
		if l.IsMember(w, pos, SoftThresholdOffset) {
			modifier = l.Value(w, pos)
			break
		}
	}

	for _, l := range g.resources {
		if l.IsMember(w, pos, modifier) {
			return l.Tile(w, pos)
		}
	}

	return tile.Static(tile.Stone)
}

// Chunk resolves every tile of a chunk.
func (g *Generator) Chunk(w *world.World, coord tile.ChunkCoord) *tile.Chunk {
	var c tile.Chunk
	for i := range c {
		c[i] = g.Tile(w, tile.TileWorldPosition(coord, i))
	}
	return &c
}

func sortByPriority(layers []Layer) {
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Priority > layers[j].Priority
	})
}
