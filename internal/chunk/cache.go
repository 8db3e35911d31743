package chunk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/store"
	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

type entry struct {
	chunk  *tile.Chunk
	visual uuid.NullUUID
	source Source
}

// Cache holds every loaded chunk, at most one entry per coordinate.
// Concurrent misses on the same coordinate share a single load or generation.
type Cache struct {
	generator *terrain.Generator
	world     *world.World
	logger    *log.Logger

	mu       sync.RWMutex
	entries  map[tile.ChunkCoord]*entry
	inflight singleflight.Group
}

// NewCache creates an empty cache generating terrain for w with generator.
func NewCache(generator *terrain.Generator, w *world.World) *Cache {
	return &Cache{
		generator: generator,
		world:     w,
		logger:    logging.WithComponent("chunk-cache"),
		entries:   make(map[tile.ChunkCoord]*entry),
	}
}

// World returns the world the cache generates for.
func (c *Cache) World() *world.World {
	return c.world
}

// Get returns the chunk at coord, filling the cache on a miss.
//
// With a slot the persisted record is loaded; a missing record (or a failed load) is
// generated and then saved through the same slot, best effort. Without a slot the chunk
// is generated and never persisted. A malformed record is returned as an error wrapping
// codec.ErrChunkMalformed and nothing is cached.
//
// Once started, a fill runs to completion even if ctx is cancelled.
func (c *Cache) Get(ctx context.Context, s *slot.Slot, coord tile.ChunkCoord) (Entry, error) {
	if !coord.InBounds() {
		return Entry{}, fmt.Errorf("failed to get chunk %s: %w", coord, tile.ErrOutOfBounds)
	}
	if e, ok := c.Peek(coord); ok {
		return e, nil
	}

	v, err, _ := c.inflight.Do(coord.String(), func() (interface{}, error) {
		if e, ok := c.Peek(coord); ok {
			return e, nil
		}
		return c.fill(context.WithoutCancel(ctx), s, coord)
	})
	if err != nil {
		return Entry{}, err
	}
	return v.(Entry), nil
}

func (c *Cache) fill(ctx context.Context, s *slot.Slot, coord tile.ChunkCoord) (Entry, error) {
	logger := c.logger.With("chunk_x", coord.X, "chunk_y", coord.Y)

	if s == nil {
		logger.Debug("No connection slot, generating without persistence")
		return c.insert(coord, c.generator.Chunk(c.world, coord), SourceDegraded), nil
	}

	rec, err := s.LoadChunk(ctx, coord)
	switch {
	case err == nil:
		chunk, err := codec.Decode(rec)
		if err != nil {
			logger.Error("Persisted chunk is malformed", "error", err)
			return Entry{}, fmt.Errorf("failed to decode chunk %s: %w", coord, err)
		}
		logger.Debug("Loaded chunk from store", "resource_tiles", len(rec.Metadata))
		return c.insert(coord, chunk, SourceLoaded), nil
	case errors.Is(err, store.ErrNotFound):
		logger.Debug("Chunk not persisted, generating")
	default:
		logger.Warn("Failed to load chunk, generating instead", "error", err)
	}

	chunk := c.generator.Chunk(c.world, coord)
	e := c.insert(coord, chunk, SourceGenerated)

	if err := s.SaveChunk(ctx, codec.Encode(coord, chunk)); err != nil {
		logger.Warn("Failed to persist generated chunk", "error", err)
	}
	return e, nil
}

// insert stores chunk unless coord is already present, and returns the entry that won.
func (c *Cache) insert(coord tile.ChunkCoord, chunk *tile.Chunk, source Source) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[coord]; ok {
		return existing.snapshot(coord)
	}
	e := &entry{chunk: chunk, source: source}
	c.entries[coord] = e
	return e.snapshot(coord)
}

// Peek returns the cached entry without filling on a miss.
func (c *Cache) Peek(coord tile.ChunkCoord) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[coord]
	if !ok {
		return Entry{}, false
	}
	return e.snapshot(coord), true
}

func (c *Cache) Contains(coord tile.ChunkCoord) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[coord]
	return ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Coords lists cached coordinates ordered by Y then X.
func (c *Cache) Coords() []tile.ChunkCoord {
	c.mu.RLock()
	coords := make([]tile.ChunkCoord, 0, len(c.entries))
	for coord := range c.entries {
		coords = append(coords, coord)
	}
	c.mu.RUnlock()

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// UpdateEntity attaches or replaces the visual link of a cached chunk.
// It reports false, and does nothing, when coord is not cached.
func (c *Cache) UpdateEntity(coord tile.ChunkCoord, handle uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[coord]
	if !ok {
		return false
	}
	e.visual = uuid.NullUUID{UUID: handle, Valid: true}
	return true
}

// ClearEntity detaches the visual link of a cached chunk.
func (c *Cache) ClearEntity(coord tile.ChunkCoord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[coord]; ok {
		e.visual = uuid.NullUUID{}
	}
}

// VisualLink returns the attached handle, if any.
func (c *Cache) VisualLink(coord tile.ChunkCoord) (uuid.UUID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[coord]
	if !ok || !e.visual.Valid {
		return uuid.UUID{}, false
	}
	return e.visual.UUID, true
}

// Remove evicts coord and returns the evicted entry. Callers that own a visual for
// the chunk should read the returned VisualLink and release it.
func (c *Cache) Remove(coord tile.ChunkCoord) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[coord]
	if !ok {
		return Entry{}, false
	}
	delete(c.entries, coord)
	return e.snapshot(coord), true
}

// TileAt reads a tile from the cached chunk that owns pos.
func (c *Cache) TileAt(pos tile.WorldPos) (tile.Tile, bool) {
	coord, local := tile.ChunkOf(pos)

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[coord]
	if !ok {
		return tile.Tile{}, false
	}
	return e.chunk.At(local.X, local.Y), true
}

func (e *entry) snapshot(coord tile.ChunkCoord) Entry {
	return Entry{
		Coord:      coord,
		Chunk:      e.chunk,
		VisualLink: e.visual,
		Source:     e.source,
	}
}
