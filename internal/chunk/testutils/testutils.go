// Package testutils provides in-memory store and pool doubles for chunk tests.
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/store"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// MemoryStore is a store.Store backed by maps. It counts calls and can be told to fail.
type MemoryStore struct {
	mu     sync.Mutex
	chunks map[tile.ChunkCoord]codec.Record
	world  *store.WorldRow
	nextID int32

	loadCalls int
	saveCalls int

	loadErr error
	saveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chunks: make(map[tile.ChunkCoord]codec.Record),
		nextID: 1,
	}
}

// SetLoadError makes LoadChunk fail with err. nil restores normal behaviour.
func (s *MemoryStore) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// SetSaveError makes SaveChunk fail with err. nil restores normal behaviour.
func (s *MemoryStore) SetSaveError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Put stores rec as if it had been saved earlier.
func (s *MemoryStore) Put(rec codec.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[rec.Coord] = rec
}

// Saved returns the stored record for coord.
func (s *MemoryStore) Saved(coord tile.ChunkCoord) (codec.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.chunks[coord]
	return rec, ok
}

// Calls returns the load and save call counts.
func (s *MemoryStore) Calls() (loads, saves int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCalls, s.saveCalls
}

func (s *MemoryStore) LoadChunk(ctx context.Context, coord tile.ChunkCoord) (codec.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadCalls++
	if s.loadErr != nil {
		return codec.Record{}, s.loadErr
	}
	rec, ok := s.chunks[coord]
	if !ok {
		return codec.Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) SaveChunk(ctx context.Context, rec codec.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, exists := s.chunks[rec.Coord]; !exists {
		s.chunks[rec.Coord] = rec
	}
	return nil
}

func (s *MemoryStore) LoadWorld(ctx context.Context) (store.WorldRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.world == nil {
		return store.WorldRow{}, store.ErrNotFound
	}
	return *s.world, nil
}

func (s *MemoryStore) CreateWorld(ctx context.Context, originTime time.Time, seed int64) (store.WorldRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := store.WorldRow{ID: s.nextID, OriginTime: originTime, Seed: seed}
	s.nextID++
	s.world = &row
	return row, nil
}

func (s *MemoryStore) ReplaceWorld(ctx context.Context, originTime time.Time, seed int64) (store.WorldRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := store.WorldRow{ID: s.nextID, OriginTime: originTime, Seed: seed}
	s.nextID++
	s.world = &row
	return row, nil
}

// Pool is a slot.Pool handing out size connections to one MemoryStore.
type Pool struct {
	Store *MemoryStore

	mu     sync.Mutex
	size   int
	leased int
}

func NewPool(st *MemoryStore, size int) *Pool {
	return &Pool{Store: st, size: size}
}

func (p *Pool) Acquire(ctx context.Context) (slot.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.leased++
	return &conn{MemoryStore: p.Store, pool: p}, nil
}

func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size - p.leased
}

// Leased returns how many connections are checked out.
func (p *Pool) Leased() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leased
}

type conn struct {
	*MemoryStore
	pool *Pool
}

func (c *conn) Release() {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()
	c.pool.leased--
}
