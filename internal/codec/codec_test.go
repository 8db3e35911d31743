package codec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/testutil"
	"github.com/VoidMesh/worldgen/internal/tile"
	"github.com/VoidMesh/worldgen/internal/world"
)

func mixedChunk() *tile.Chunk {
	var c tile.Chunk
	c[tile.LocalIndex(0, 0)] = tile.Static(tile.Water)
	c[tile.LocalIndex(1, 0)] = tile.Static(tile.Impassable)
	c[tile.LocalIndex(8, 32)] = tile.Resource(tile.Copper, 4562)
	c[tile.LocalIndex(63, 63)] = tile.Resource(tile.Coal, 9999)
	c[tile.LocalIndex(10, 2)] = tile.Resource(tile.Iron, 2000)
	return &c
}

func TestEncode(t *testing.T) {
	coord := tile.ChunkCoord{X: 2, Y: -1}
	rec := codec.Encode(coord, mixedChunk())

	assert.Equal(t, coord, rec.Coord)
	require.Len(t, rec.TileIDs, tile.Area)
	assert.Equal(t, codec.IDWater, rec.TileIDs[0])
	assert.Equal(t, codec.IDImpassable, rec.TileIDs[1])
	assert.Equal(t, codec.IDStone, rec.TileIDs[2])
	assert.Equal(t, codec.IDCopper, rec.TileIDs[tile.LocalIndex(8, 32)])
	assert.Equal(t, codec.IDCoal, rec.TileIDs[tile.Area-1])

	// Static tiles produce no metadata rows; rows follow index order.
	assert.Equal(t, []codec.MetadataRow{
		{X: 10, Y: 2, Magnitude: 2000},
		{X: 8, Y: 32, Magnitude: 4562},
		{X: 63, Y: 63, Magnitude: 9999},
	}, rec.Metadata)
}

func TestDecode_RoundTrip(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	t.Run("hand built chunk", func(t *testing.T) {
		c := mixedChunk()
		got, err := codec.Decode(codec.Encode(tile.ChunkCoord{}, c))
		require.NoError(t, err)
		assert.Equal(t, *c, *got)
	})

	t.Run("generated chunks", func(t *testing.T) {
		w := world.New(1, time.Now(), 1337)
		g := terrain.Default()
		for _, coord := range []tile.ChunkCoord{{X: 0, Y: 0}, {X: 5, Y: -3}, {X: -8, Y: 11}} {
			c := g.Chunk(w, coord)
			got, err := codec.Decode(codec.Encode(coord, c))
			require.NoError(t, err)
			assert.Equal(t, *c, *got, "chunk %s", coord)
		}
	})
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "empty", length: 0},
		{name: "short by one", length: tile.Area - 1},
		{name: "long by one", length: tile.Area + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.Decode(codec.Record{TileIDs: make([]byte, tt.length)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, codec.ErrChunkMalformed))
			assert.Nil(t, c)
		})
	}
}

func TestDecode_SubstitutesStone(t *testing.T) {
	cleanup := testutil.SetupTest(t, &testutil.TestConfig{EnableLogCapture: true})
	defer cleanup()

	ids := make([]byte, tile.Area)
	for i := range ids {
		ids[i] = codec.IDWater
	}
	ids[0] = 42             // unknown id
	ids[1] = codec.IDIron   // resource without metadata
	ids[2] = codec.IDCopper // resource with metadata
	rec := codec.Record{
		Coord:   tile.ChunkCoord{X: 1, Y: 1},
		TileIDs: ids,
		Metadata: []codec.MetadataRow{
			{X: 2, Y: 0, Magnitude: 1500},
			{X: 99, Y: 0, Magnitude: 7}, // out of range, ignored
		},
	}

	c, err := codec.Decode(rec)
	require.NoError(t, err)
	assert.Equal(t, tile.Static(tile.Stone), c[0])
	assert.Equal(t, tile.Static(tile.Stone), c[1])
	assert.Equal(t, tile.Resource(tile.Copper, 1500), c[2])
	assert.Equal(t, tile.Static(tile.Water), c[3])

	logs := testutil.CapturedLogs()
	assert.Contains(t, logs, "unknown_ids=1")
	assert.Contains(t, logs, "missing_metadata=1")
}

func TestKindOf_MatchesID(t *testing.T) {
	for _, k := range tile.Kinds {
		got, ok := codec.KindOf(codec.ID(k))
		require.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := codec.KindOf(200)
	assert.False(t, ok)
}
