package tile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalIndex_RoundTrip(t *testing.T) {
	for index := 0; index < Area; index++ {
		local := LocalPosition(index)
		require.GreaterOrEqual(t, local.X, 0)
		require.Less(t, local.X, Side)
		require.GreaterOrEqual(t, local.Y, 0)
		require.Less(t, local.Y, Side)
		require.Equal(t, index, LocalIndex(local.X, local.Y))
	}
}

func TestTileWorldPosition(t *testing.T) {
	tests := []struct {
		name     string
		chunk    ChunkCoord
		index    int
		expected WorldPos
	}{
		{name: "origin first tile", chunk: ChunkCoord{X: 0, Y: 0}, index: 0, expected: WorldPos{X: 0, Y: 0}},
		{name: "origin last tile", chunk: ChunkCoord{X: 0, Y: 0}, index: Area - 1, expected: WorldPos{X: 63, Y: 63}},
		{name: "second row", chunk: ChunkCoord{X: 0, Y: 0}, index: Side + 2, expected: WorldPos{X: 2, Y: 1}},
		{name: "positive chunk", chunk: ChunkCoord{X: 2, Y: 3}, index: 0, expected: WorldPos{X: 128, Y: 192}},
		{name: "negative chunk", chunk: ChunkCoord{X: -1, Y: -2}, index: 0, expected: WorldPos{X: -64, Y: -128}},
		{name: "negative chunk last tile", chunk: ChunkCoord{X: -1, Y: -1}, index: Area - 1, expected: WorldPos{X: -1, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TileWorldPosition(tt.chunk, tt.index))
		})
	}
}

func TestChunkOf_InvertsTileWorldPosition(t *testing.T) {
	chunks := []ChunkCoord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: -3, Y: 7}, {X: 12, Y: -9}}

	for _, c := range chunks {
		t.Run(c.String(), func(t *testing.T) {
			for index := 0; index < Area; index++ {
				gotChunk, local := ChunkOf(TileWorldPosition(c, index))
				require.Equal(t, c, gotChunk)
				require.Equal(t, index, LocalIndex(local.X, local.Y))
			}
		})
	}
}

func TestChunkOf_NegativeBoundary(t *testing.T) {
	c, local := ChunkOf(WorldPos{X: -1, Y: -64})
	assert.Equal(t, ChunkCoord{X: -1, Y: -1}, c)
	assert.Equal(t, LocalPos{X: 63, Y: 0}, local)

	c, local = ChunkOf(WorldPos{X: -65, Y: 64})
	assert.Equal(t, ChunkCoord{X: -2, Y: 1}, c)
	assert.Equal(t, LocalPos{X: 63, Y: 0}, local)
}

func TestChunkCoord_InBounds(t *testing.T) {
	tests := []struct {
		name  string
		coord ChunkCoord
		want  bool
	}{
		{"origin", ChunkCoord{X: 0, Y: 0}, true},
		{"max corner", ChunkCoord{X: MaxChunk, Y: MaxChunk}, true},
		{"min corner", ChunkCoord{X: MinChunk, Y: MinChunk}, true},
		{"x past max", ChunkCoord{X: MaxChunk + 1, Y: 0}, false},
		{"y past min", ChunkCoord{X: 0, Y: MinChunk - 1}, false},
		{"far out", ChunkCoord{X: 1 << 26, Y: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coord.InBounds())
		})
	}
}

func TestTileWorldPosition_EdgesDoNotWrap(t *testing.T) {
	assert.Equal(t, WorldPos{X: math.MaxInt32, Y: math.MaxInt32},
		TileWorldPosition(ChunkCoord{X: MaxChunk, Y: MaxChunk}, Area-1))
	assert.Equal(t, WorldPos{X: math.MinInt32, Y: math.MinInt32},
		TileWorldPosition(ChunkCoord{X: MinChunk, Y: MinChunk}, 0))

	// Every world position maps back into a chunk inside the bounds.
	for _, p := range []WorldPos{{X: math.MaxInt32, Y: math.MinInt32}, {X: math.MinInt32, Y: math.MaxInt32}} {
		c, _ := ChunkOf(p)
		assert.True(t, c.InBounds(), "chunk of %v", p)
	}
}
