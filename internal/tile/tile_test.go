package tile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTile_Constructors(t *testing.T) {
	tests := []struct {
		name          string
		tile          Tile
		kind          Kind
		magnitude     uint32
		hasMagnitude  bool
		expectedLabel string
	}{
		{name: "static stone", tile: Static(Stone), kind: Stone, expectedLabel: "stone"},
		{name: "static water", tile: Static(Water), kind: Water, expectedLabel: "water"},
		{name: "copper deposit", tile: Resource(Copper, 4562), kind: Copper, magnitude: 4562, hasMagnitude: true, expectedLabel: "copper(4562)"},
		{name: "resource constructor on static kind drops magnitude", tile: Resource(Impassable, 12), kind: Impassable, expectedLabel: "impassable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.tile.Kind())
			mag, ok := tt.tile.Magnitude()
			assert.Equal(t, tt.hasMagnitude, ok)
			assert.Equal(t, tt.magnitude, mag)
			assert.Equal(t, tt.expectedLabel, tt.tile.String())
		})
	}
}

func TestTile_Equality(t *testing.T) {
	assert.Equal(t, Resource(Coal, 10), Resource(Coal, 10))
	assert.NotEqual(t, Resource(Coal, 10), Resource(Coal, 11))
	assert.NotEqual(t, Resource(Coal, 10), Resource(Iron, 10))
	assert.Equal(t, Static(Stone), Tile{})
}

func TestChunk_Render(t *testing.T) {
	var c Chunk
	c[LocalIndex(0, 0)] = Static(Water)
	c[LocalIndex(1, 0)] = Static(Impassable)
	c[LocalIndex(2, 0)] = Resource(Iron, 1)
	c[LocalIndex(3, 0)] = Resource(Copper, 1)
	c[LocalIndex(4, 0)] = Resource(Coal, 1)

	lines := strings.Split(strings.TrimSuffix(c.Render(), "\n"), "\n")
	assert.Len(t, lines, Side)
	assert.True(t, strings.HasPrefix(lines[0], "WXICL."))
	assert.Equal(t, strings.Repeat(".", Side), lines[1])
}

func TestChunk_Counts(t *testing.T) {
	var c Chunk
	c[0] = Static(Water)
	c[1] = Resource(Coal, 5)
	c[2] = Resource(Coal, 7)

	counts := c.Counts()
	assert.Equal(t, 1, counts[Water])
	assert.Equal(t, 2, counts[Coal])
	assert.Equal(t, Area-3, counts[Stone])
}
