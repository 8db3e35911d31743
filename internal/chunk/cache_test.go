package chunk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/worldgen/internal/chunk/testutils"
	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/store"
	"github.com/VoidMesh/worldgen/internal/store/mocks"
	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/testutil"
	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

func newTestCache(seed int64) *Cache {
	w := world.New(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), seed)
	return NewCache(terrain.Default(), w)
}

// mockPool hands out connections backed by a single store.Store, usually a gomock mock.
type mockPool struct {
	st store.Store
}

type mockConn struct {
	store.Store
}

func (mockConn) Release() {}

func (p mockPool) Acquire(context.Context) (slot.Conn, error) { return mockConn{p.st}, nil }
func (p mockPool) Available() int                             { return 1 }

func leaseMock(t *testing.T, st store.Store) *slot.Slot {
	t.Helper()
	s, err := slot.NewManager(mockPool{st}).TryAcquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

func TestCache_GetGeneratesAndPersistsOnMiss(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := context.Background()
	memory := testutils.NewMemoryStore()
	slots := slot.NewManager(testutils.NewPool(memory, 1))
	c := newTestCache(1337)
	coord := tile.ChunkCoord{X: 2, Y: -1}

	s, err := slots.TryAcquire(ctx)
	require.NoError(t, err)
	e, err := c.Get(ctx, s, coord)
	s.Release()
	require.NoError(t, err)

	assert.Equal(t, SourceGenerated, e.Source)
	assert.Equal(t, coord, e.Coord)
	assert.False(t, e.VisualLink.Valid)

	saved, ok := memory.Saved(coord)
	require.True(t, ok)
	assert.Equal(t, codec.Encode(coord, e.Chunk), saved)

	again, err := c.Get(ctx, nil, coord)
	require.NoError(t, err)
	assert.Same(t, e.Chunk, again.Chunk)

	loads, saves := memory.Calls()
	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, saves)
}

func TestCache_GetDecodesPersistedChunk(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	coord := tile.ChunkCoord{X: 0, Y: 0}
	var persisted tile.Chunk
	persisted[tile.LocalIndex(8, 32)] = tile.Resource(tile.Copper, 4562)
	persisted[0] = tile.Static(tile.Water)

	ctrl := gomock.NewController(t)
	m := mocks.NewMockStore(ctrl)
	m.EXPECT().LoadChunk(gomock.Any(), coord).Return(codec.Encode(coord, &persisted), nil)

	c := newTestCache(1337)
	e, err := c.Get(context.Background(), leaseMock(t, m), coord)
	require.NoError(t, err)

	assert.Equal(t, SourceLoaded, e.Source)
	assert.Equal(t, persisted, *e.Chunk)
}

func TestCache_GetMalformedIsNotCached(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	coord := tile.ChunkCoord{X: 4, Y: 4}
	ctrl := gomock.NewController(t)
	m := mocks.NewMockStore(ctrl)
	m.EXPECT().LoadChunk(gomock.Any(), coord).
		Return(codec.Record{Coord: coord, TileIDs: make([]byte, 100)}, nil).
		Times(2)

	c := newTestCache(1)
	s := leaseMock(t, m)

	_, err := c.Get(context.Background(), s, coord)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrChunkMalformed))
	assert.False(t, c.Contains(coord))

	// A retry goes back to the store rather than hitting a poisoned entry.
	_, err = c.Get(context.Background(), s, coord)
	assert.ErrorIs(t, err, codec.ErrChunkMalformed)
}

func TestCache_GetFallsBackOnStoreErrors(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	coord := tile.ChunkCoord{X: -3, Y: 5}

	tests := []struct {
		name      string
		setupMock func(m *mocks.MockStore)
	}{
		{
			name: "load failure generates and still saves",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().LoadChunk(gomock.Any(), coord).Return(codec.Record{}, errors.New("connection reset"))
				m.EXPECT().SaveChunk(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "save failure keeps the entry",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().LoadChunk(gomock.Any(), coord).Return(codec.Record{}, store.ErrNotFound)
				m.EXPECT().SaveChunk(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockStore(ctrl)
			tt.setupMock(m)

			c := newTestCache(7)
			e, err := c.Get(context.Background(), leaseMock(t, m), coord)
			require.NoError(t, err)
			assert.Equal(t, SourceGenerated, e.Source)
			assert.True(t, c.Contains(coord))
			assert.Equal(t, *terrain.Default().Chunk(c.World(), coord), *e.Chunk)
		})
	}
}

func TestCache_SaveReceivesEncodedChunk(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	coord := tile.ChunkCoord{X: 1, Y: 1}
	c := newTestCache(99)
	expected := codec.Encode(coord, terrain.Default().Chunk(c.World(), coord))

	ctrl := gomock.NewController(t)
	m := mocks.NewMockStore(ctrl)
	gomock.InOrder(
		m.EXPECT().LoadChunk(gomock.Any(), coord).Return(codec.Record{}, store.ErrNotFound),
		m.EXPECT().SaveChunk(gomock.Any(), expected).Return(nil),
	)

	_, err := c.Get(context.Background(), leaseMock(t, m), coord)
	require.NoError(t, err)
}

func TestCache_GetRejectsOutOfBounds(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := gomock.NewController(t)
	m := mocks.NewMockStore(ctrl)
	m.EXPECT().LoadChunk(gomock.Any(), gomock.Any()).Times(0)
	m.EXPECT().SaveChunk(gomock.Any(), gomock.Any()).Times(0)

	c := newTestCache(1337)
	s := leaseMock(t, m)

	for _, coord := range []tile.ChunkCoord{{X: 1 << 26, Y: 0}, {X: 0, Y: tile.MinChunk - 1}} {
		_, err := c.Get(context.Background(), s, coord)
		assert.ErrorIs(t, err, tile.ErrOutOfBounds)
		assert.False(t, c.Contains(coord))
	}
	assert.Equal(t, 0, c.Len())
}

func TestCache_DegradedMode(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := context.Background()
	harness := slot.NewTestHarness()
	c := newTestCache(1337)

	for _, coord := range []tile.ChunkCoord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: -1}} {
		s, err := harness.TryAcquire(ctx)
		require.ErrorIs(t, err, slot.ErrNoSlot)
		require.Nil(t, s)

		e, err := c.Get(ctx, s, coord)
		require.NoError(t, err)
		assert.Equal(t, SourceDegraded, e.Source)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCache_OriginScenario(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := context.Background()
	c := newTestCache(1337)
	origin := tile.ChunkCoord{}

	first, err := c.Get(ctx, nil, origin)
	require.NoError(t, err)
	assert.Equal(t, tile.Static(tile.Stone), first.Chunk[0])

	m := NewManager(c, slot.NewTestHarness(), nil)
	m.RequestLoad(origin)
	m.RequestUnload(origin)
	m.Tick(ctx)
	assert.False(t, c.Contains(origin))

	again, err := c.Get(ctx, nil, origin)
	require.NoError(t, err)
	assert.NotSame(t, first.Chunk, again.Chunk)
	assert.Equal(t, *first.Chunk, *again.Chunk)
}

func TestCache_VisualLink(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	c := newTestCache(1)
	coord := tile.ChunkCoord{X: 3, Y: 3}
	handle := uuid.New()

	assert.False(t, c.UpdateEntity(coord, handle), "absent coordinate is a no-op")
	_, ok := c.VisualLink(coord)
	assert.False(t, ok)

	_, err := c.Get(context.Background(), nil, coord)
	require.NoError(t, err)

	assert.True(t, c.UpdateEntity(coord, handle))
	got, ok := c.VisualLink(coord)
	require.True(t, ok)
	assert.Equal(t, handle, got)

	replacement := uuid.New()
	c.UpdateEntity(coord, replacement)
	e, _ := c.Peek(coord)
	assert.Equal(t, uuid.NullUUID{UUID: replacement, Valid: true}, e.VisualLink)

	c.ClearEntity(coord)
	_, ok = c.VisualLink(coord)
	assert.False(t, ok)

	c.UpdateEntity(coord, handle)
	removed, ok := c.Remove(coord)
	require.True(t, ok)
	assert.Equal(t, handle, removed.VisualLink.UUID)

	_, ok = c.Remove(coord)
	assert.False(t, ok)
}

func TestCache_TileAt(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	c := newTestCache(5)
	coord := tile.ChunkCoord{X: -1, Y: -1}

	_, ok := c.TileAt(tile.WorldPos{X: -1, Y: -1})
	assert.False(t, ok)

	e, err := c.Get(context.Background(), nil, coord)
	require.NoError(t, err)

	got, ok := c.TileAt(tile.WorldPos{X: -1, Y: -1})
	require.True(t, ok)
	assert.Equal(t, e.Chunk[tile.LocalIndex(63, 63)], got)

	got, ok = c.TileAt(tile.WorldPos{X: -64, Y: -60})
	require.True(t, ok)
	assert.Equal(t, e.Chunk[tile.LocalIndex(0, 4)], got)
}

func TestCache_ConcurrentMissesShareOneFill(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := context.Background()
	memory := testutils.NewMemoryStore()
	slots := slot.NewManager(testutils.NewPool(memory, 8))
	c := newTestCache(42)
	coord := tile.ChunkCoord{X: 9, Y: 9}

	var wg sync.WaitGroup
	chunks := make([]*tile.Chunk, 16)
	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var s *slot.Slot
			if leased, err := slots.TryAcquire(ctx); err == nil {
				defer leased.Release()
				s = leased
			}
			e, err := c.Get(ctx, s, coord)
			if assert.NoError(t, err) {
				chunks[i] = e.Chunk
			}
		}(i)
	}
	wg.Wait()

	for _, got := range chunks {
		assert.Same(t, chunks[0], got)
	}
	assert.Equal(t, 1, c.Len())

	loads, saves := memory.Calls()
	assert.LessOrEqual(t, loads, 1)
	assert.LessOrEqual(t, saves, 1)
}

func TestCache_Coords(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	c := newTestCache(1)
	for _, coord := range []tile.ChunkCoord{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 5, Y: -2}} {
		_, err := c.Get(context.Background(), nil, coord)
		require.NoError(t, err)
	}

	assert.Equal(t, []tile.ChunkCoord{{X: 5, Y: -2}, {X: 0, Y: 1}, {X: 1, Y: 1}}, c.Coords())
}
