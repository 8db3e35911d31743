package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/tile"
)

func TestMagnitude_Reproducible(t *testing.T) {
	r := Range{Min: 1000, Max: 10000}
	pos := tile.WorldPos{X: 8, Y: 32}

	assert.Equal(t, Magnitude(1337, pos, r), Magnitude(1337, pos, r))
}

func TestMagnitude_WithinRange(t *testing.T) {
	ranges := []Range{{Min: 1000, Max: 6000}, {Min: 2000, Max: 8000}, {Min: 1000, Max: 10000}}

	for _, r := range ranges {
		for x := int32(-50); x < 50; x += 3 {
			for y := int32(-50); y < 50; y += 5 {
				m := Magnitude(42, tile.WorldPos{X: x, Y: y}, r)
				require.GreaterOrEqual(t, m, r.Min)
				require.Less(t, m, r.Max)
			}
		}
	}
}

func TestMagnitude_VariesWithSeedAndPosition(t *testing.T) {
	r := Range{Min: 0, Max: 1 << 30}
	base := Magnitude(1, tile.WorldPos{X: 5, Y: 5}, r)

	assert.NotEqual(t, base, Magnitude(2, tile.WorldPos{X: 5, Y: 5}, r))
	assert.NotEqual(t, base, Magnitude(1, tile.WorldPos{X: 6, Y: 5}, r))
	assert.NotEqual(t, base, Magnitude(1, tile.WorldPos{X: 5, Y: 6}, r))
}

func TestMagnitude_EmptyRange(t *testing.T) {
	assert.Equal(t, uint32(500), Magnitude(1, tile.WorldPos{}, Range{Min: 500, Max: 500}))
}
