package models

import (
	"sync"

	"github.com/google/uuid"

	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// TileRenderer is the viewer's side of the chunk lifecycle. Every chunk that becomes
// ready gets a visual handle; the grid is drawn only from chunks holding one.
type TileRenderer struct {
	cache *chunk.Cache

	mu      sync.Mutex
	visuals map[uuid.UUID]tile.ChunkCoord
	spawned int
	freed   int
}

func NewTileRenderer(cache *chunk.Cache) *TileRenderer {
	return &TileRenderer{
		cache:   cache,
		visuals: make(map[uuid.UUID]tile.ChunkCoord),
	}
}

func (r *TileRenderer) ChunkReady(entry chunk.Entry) {
	handle := uuid.New()

	r.mu.Lock()
	r.visuals[handle] = entry.Coord
	r.spawned++
	r.mu.Unlock()

	if !r.cache.UpdateEntity(entry.Coord, handle) {
		r.release(handle)
	}
}

func (r *TileRenderer) ChunkGone(coord tile.ChunkCoord, link uuid.NullUUID) {
	if link.Valid {
		r.release(link.UUID)
	}
}

func (r *TileRenderer) release(handle uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.visuals[handle]; ok {
		delete(r.visuals, handle)
		r.freed++
	}
}

// Visible reports whether coord has a live visual.
func (r *TileRenderer) Visible(coord tile.ChunkCoord) bool {
	handle, ok := r.cache.VisualLink(coord)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok = r.visuals[handle]
	return ok
}

// RendererStats counts visuals over the renderer's lifetime.
type RendererStats struct {
	Live    int
	Spawned int
	Freed   int
}

func (r *TileRenderer) Stats() RendererStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RendererStats{Live: len(r.visuals), Spawned: r.spawned, Freed: r.freed}
}
