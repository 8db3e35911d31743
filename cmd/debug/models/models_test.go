package models

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/slot"
	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/testutil"
	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

func newTestManager(t *testing.T) *chunk.Manager {
	t.Helper()
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	t.Cleanup(cleanup)

	w := world.New(1, time.Unix(0, 0).UTC(), 1337)
	return chunk.NewManager(chunk.NewCache(terrain.Default(), w), slot.NewTestHarness(), nil)
}

func TestTileRenderer_Lifecycle(t *testing.T) {
	manager := newTestManager(t)
	renderer := NewTileRenderer(manager.Cache())
	manager.SetRenderer(renderer)
	coord := tile.ChunkCoord{X: 1, Y: -1}

	manager.RequestLoad(coord)
	manager.Tick(context.Background())

	assert.True(t, renderer.Visible(coord))
	assert.Equal(t, RendererStats{Live: 1, Spawned: 1}, renderer.Stats())

	manager.RequestUnload(coord)
	manager.Tick(context.Background())

	assert.False(t, renderer.Visible(coord))
	assert.Equal(t, RendererStats{Live: 0, Spawned: 1, Freed: 1}, renderer.Stats())
}

func TestTileRenderer_ChunkGoneWithoutLink(t *testing.T) {
	manager := newTestManager(t)
	renderer := NewTileRenderer(manager.Cache())

	renderer.ChunkGone(tile.ChunkCoord{}, uuid.NullUUID{})
	assert.Equal(t, RendererStats{}, renderer.Stats())
}

func TestChunkExplorer_StreamsAroundCamera(t *testing.T) {
	manager := newTestManager(t)
	renderer := NewTileRenderer(manager.Cache())
	manager.SetRenderer(renderer)
	explorer := NewChunkExplorerModel(manager, renderer, 1)

	explorer.Stream()
	manager.Tick(context.Background())
	assert.Equal(t, 9, manager.Cache().Len())
	assert.Equal(t, tile.ChunkCoord{}, explorer.Camera())

	// Four chunks east: the old neighbourhood falls outside radius+1.
	for i := 0; i < 4; i++ {
		explorer.cursor.X += tile.Side
	}
	assert.Equal(t, tile.ChunkCoord{X: 4}, explorer.Camera())
	explorer.Stream()
	manager.Tick(context.Background())

	for _, coord := range manager.Cache().Coords() {
		assert.GreaterOrEqual(t, coord.X, int32(2))
	}
	stats := renderer.Stats()
	assert.Equal(t, manager.Cache().Len(), stats.Live)
}

func TestChunkExplorer_PausedDoesNotStream(t *testing.T) {
	manager := newTestManager(t)
	renderer := NewTileRenderer(manager.Cache())
	explorer := NewChunkExplorerModel(manager, renderer, DefaultStreamRadius)
	explorer.paused = true

	explorer.Stream()
	assert.Equal(t, 0, manager.Pending())
}

func TestChunkExplorer_ViewRendersLoadedTiles(t *testing.T) {
	manager := newTestManager(t)
	renderer := NewTileRenderer(manager.Cache())
	manager.SetRenderer(renderer)
	explorer := NewChunkExplorerModel(manager, renderer, 0)
	explorer.SetSize(120, 40)

	explorer.Stream()
	manager.Tick(context.Background())

	view := explorer.View()
	require.NotEmpty(t, view)
	assert.Contains(t, view, "Chunk Explorer - (0,0)")
	assert.Contains(t, view, "Source: degraded")
}

func TestMenu_StatusFollowsManager(t *testing.T) {
	manager := newTestManager(t)
	renderer := NewTileRenderer(manager.Cache())
	manager.SetRenderer(renderer)
	menu := NewMenuModel(manager, renderer)

	view := menu.View()
	assert.Contains(t, view, "0 cached • 0 on screen • 0 pending")
	assert.Contains(t, view, "seed 1337 • no storage")

	manager.RequestLoad(tile.ChunkCoord{X: 0, Y: 0})
	assert.Contains(t, menu.View(), "0 cached • 0 on screen • 1 pending")

	manager.Tick(context.Background())
	assert.Contains(t, menu.View(), "1 cached • 1 on screen • 0 pending")
}

func TestMenu_Choose(t *testing.T) {
	menu := NewMenuModel(newTestManager(t), nil)

	tests := []struct {
		name  string
		index int
		want  ViewType
		ok    bool
	}{
		{name: "explorer", index: 0, want: ChunkExplorerView, ok: true},
		{name: "overview", index: 1, want: OverviewView, ok: true},
		{name: "past the end", index: 2},
		{name: "negative", index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, cmd := menu.chooseAndMove(tt.index)
			if !tt.ok {
				assert.Nil(t, cmd)
				assert.Equal(t, 0, next.cursor)
				return
			}
			require.NotNil(t, cmd)
			assert.Equal(t, NewSwitchViewMsg(tt.want), cmd())
			assert.Equal(t, tt.index, next.cursor)
		})
	}
}
