package chunk

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// Manager is the consumer-facing side of the cache. Load and unload requests are
// queued and applied together by Tick, one request at a time, in the order received.
type Manager struct {
	cache    *Cache
	slots    *slot.Manager
	renderer Renderer
	logger   *log.Logger

	mu      sync.Mutex
	pending []Request
	last    map[tile.ChunkCoord]RequestKind
}

// NewManager creates a manager. renderer may be nil.
func NewManager(cache *Cache, slots *slot.Manager, renderer Renderer) *Manager {
	return &Manager{
		cache:    cache,
		slots:    slots,
		renderer: renderer,
		logger:   logging.WithComponent("chunk-manager"),
		last:     make(map[tile.ChunkCoord]RequestKind),
	}
}

// SetRenderer replaces the renderer notified by later ticks.
func (m *Manager) SetRenderer(r Renderer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renderer = r
}

func (m *Manager) Cache() *Cache {
	return m.cache
}

func (m *Manager) Slots() *slot.Manager {
	return m.slots
}

// RequestLoad queues coord to be loaded on the next tick.
func (m *Manager) RequestLoad(coord tile.ChunkCoord) {
	m.enqueue(Request{Kind: LoadRequest, Coord: coord})
}

// RequestUnload queues coord to be evicted on the next tick.
func (m *Manager) RequestUnload(coord tile.ChunkCoord) {
	m.enqueue(Request{Kind: UnloadRequest, Coord: coord})
}

// A request identical to the last pending one for the same coordinate is dropped.
func (m *Manager) enqueue(r Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if kind, ok := m.last[r.Coord]; ok && kind == r.Kind {
		return
	}
	m.last[r.Coord] = r.Kind
	m.pending = append(m.pending, r)
}

// Pending returns how many requests wait for the next tick.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// TileAt reads a tile from the cache. It never loads.
func (m *Manager) TileAt(pos tile.WorldPos) (tile.Tile, bool) {
	return m.cache.TileAt(pos)
}

// Focus queues loads for every chunk within radius of center and unloads for cached
// chunks more than radius+1 away on either axis.
func (m *Manager) Focus(center tile.ChunkCoord, radius int32) {
	for _, coord := range Square(center, radius) {
		if !m.cache.Contains(coord) {
			m.RequestLoad(coord)
		}
	}

	for _, coord := range m.cache.Coords() {
		if abs(coord.X-center.X) > radius+1 || abs(coord.Y-center.Y) > radius+1 {
			m.RequestUnload(coord)
		}
	}
}

// Tick drains the request queue.
func (m *Manager) Tick(ctx context.Context) TickResult {
	m.mu.Lock()
	requests := m.pending
	renderer := m.renderer
	m.pending = nil
	m.last = make(map[tile.ChunkCoord]RequestKind)
	m.mu.Unlock()

	var result TickResult
	for _, r := range requests {
		switch r.Kind {
		case LoadRequest:
			m.load(ctx, r.Coord, renderer, &result)
		case UnloadRequest:
			m.unload(r.Coord, renderer, &result)
		}
	}

	if len(requests) > 0 {
		m.logger.Debug("Tick processed",
			"requests", len(requests),
			"loaded", result.Loaded,
			"degraded", result.Degraded,
			"unloaded", result.Unloaded,
			"failed", result.Failed,
			"cached", m.cache.Len(),
		)
	}
	return result
}

func (m *Manager) load(ctx context.Context, coord tile.ChunkCoord, renderer Renderer, result *TickResult) {
	s, err := m.slots.TryAcquire(ctx)
	if err != nil {
		if !errors.Is(err, slot.ErrNoSlot) {
			m.logger.Warn("Failed to lease connection slot", "error", err, "chunk_x", coord.X, "chunk_y", coord.Y)
		}
		s = nil
	}
	if s != nil {
		defer s.Release()
	}

	e, err := m.cache.Get(ctx, s, coord)
	if err != nil {
		result.Failed++
		m.logger.Error("Failed to load chunk", "error", err, "chunk_x", coord.X, "chunk_y", coord.Y)
		return
	}

	if e.Source == SourceDegraded {
		result.Degraded++
	} else {
		result.Loaded++
	}

	if renderer != nil && !e.VisualLink.Valid {
		renderer.ChunkReady(e)
	}
}

func (m *Manager) unload(coord tile.ChunkCoord, renderer Renderer, result *TickResult) {
	e, ok := m.cache.Peek(coord)
	if !ok {
		return
	}
	if renderer != nil {
		renderer.ChunkGone(coord, e.VisualLink)
	}
	m.cache.Remove(coord)
	result.Unloaded++
}

// Run ticks every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info("Chunk manager started", "tick_interval", interval)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Chunk manager stopped")
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Preload fills the cache for coords in parallel, bounded by slot capacity, without
// announcing them to the renderer. The first malformed chunk aborts the rest.
func (m *Manager) Preload(ctx context.Context, coords []tile.ChunkCoord) error {
	start := time.Now()
	limit := m.slots.Capacity()
	if limit == 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, coord := range coords {
		g.Go(func() error {
			var s *slot.Slot
			if m.slots.Capacity() > 0 {
				leased, err := m.slots.Acquire(ctx)
				if err != nil {
					return err
				}
				defer leased.Release()
				s = leased
			}
			_, err := m.cache.Get(ctx, s, coord)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	m.logger.Info("Preloaded chunks", "count", len(coords), "duration", time.Since(start))
	return nil
}

// Square returns the chunk coordinates within radius of center, row by row.
func Square(center tile.ChunkCoord, radius int32) []tile.ChunkCoord {
	coords := make([]tile.ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			coords = append(coords, tile.ChunkCoord{X: x, Y: y})
		}
	}
	return coords
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
