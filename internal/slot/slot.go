// Package slot bounds concurrent access to the persistent store. A Manager hands out
// leased Slots, each wrapping one pooled connection, behind a counting gate.
package slot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/store"
)

// ErrNoSlot is returned by TryAcquire when every slot is leased.
var ErrNoSlot = errors.New("no connection slot available")

// Conn is one pooled store connection.
type Conn interface {
	store.Store
	// Release returns the connection to its pool.
	Release()
}

// Pool is a fixed-size set of store connections.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
	// Available reports how many connections can be checked out right now.
	Available() int
}

// Manager gates a Pool with a weighted semaphore sized to the pool's available
// connections at construction.
type Manager struct {
	pool     Pool
	sem      *semaphore.Weighted
	capacity int64
	logger   *log.Logger

	mu     sync.Mutex
	leased int64
}

// NewManager wraps pool.
func NewManager(pool Pool) *Manager {
	capacity := int64(pool.Available())
	if capacity < 0 {
		capacity = 0
	}
	m := &Manager{
		pool:     pool,
		sem:      semaphore.NewWeighted(capacity),
		capacity: capacity,
		logger:   logging.WithComponent("slot-manager"),
	}
	m.logger.Debug("Slot manager created", "capacity", capacity)
	return m
}

// NewTestHarness returns a zero-capacity manager. TryAcquire always fails and
// Acquire waits until its context ends.
func NewTestHarness() *Manager {
	return &Manager{
		sem:    semaphore.NewWeighted(0),
		logger: logging.WithComponent("slot-manager"),
	}
}

// Capacity is the number of slots the manager was sized to.
func (m *Manager) Capacity() int {
	return int(m.capacity)
}

// Leased is the number of slots currently out.
func (m *Manager) Leased() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int(m.leased)
}

// Acquire waits for a free slot. Callers wanting a deadline put it on ctx.
func (m *Manager) Acquire(ctx context.Context) (*Slot, error) {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire connection slot: %w", err)
	}
	return m.lease(ctx)
}

// TryAcquire returns ErrNoSlot immediately when no slot is free.
func (m *Manager) TryAcquire(ctx context.Context) (*Slot, error) {
	if !m.sem.TryAcquire(1) {
		return nil, ErrNoSlot
	}
	return m.lease(ctx)
}

// WithSlot runs fn with a leased slot and releases it however fn exits.
func (m *Manager) WithSlot(ctx context.Context, fn func(*Slot) error) error {
	s, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.Release()
	return fn(s)
}

func (m *Manager) lease(ctx context.Context) (*Slot, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		m.sem.Release(1)
		return nil, fmt.Errorf("failed to acquire pooled connection: %w", err)
	}

	m.mu.Lock()
	m.leased++
	m.mu.Unlock()

	return &Slot{Conn: conn, manager: m}, nil
}

func (m *Manager) release(conn Conn) {
	conn.Release()

	m.mu.Lock()
	m.leased--
	m.mu.Unlock()

	m.sem.Release(1)
}

// Slot is a leased connection. It embeds the connection's store.Store.
// Release must be called exactly once per lease; later calls are no-ops.
type Slot struct {
	Conn

	manager *Manager
	once    sync.Once
}

// Release returns the connection and its permit.
func (s *Slot) Release() {
	s.once.Do(func() {
		s.manager.release(s.Conn)
	})
}
