// Package tile holds the coordinate spaces and the tile taxonomy shared by the
// generator, the codec and the chunk cache.
package tile

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Side is the number of tiles along one edge of a chunk.
	Side = 64
	// Area is the number of tiles in a chunk.
	Area = Side * Side
	// PixelSize is the on-screen size of one tile for renderers.
	PixelSize = 16.0

	// MinChunk and MaxChunk bound the chunk coordinates whose tiles have int32 world positions.
	MinChunk = math.MinInt32 / Side
	MaxChunk = math.MaxInt32 / Side
)

// ErrOutOfBounds is returned for chunk coordinates outside [MinChunk, MaxChunk].
var ErrOutOfBounds = errors.New("chunk coordinate out of bounds")

// ChunkCoord addresses a chunk.
type ChunkCoord struct {
	X, Y int32
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// InBounds reports whether every tile of c has a representable world position.
func (c ChunkCoord) InBounds() bool {
	return c.X >= MinChunk && c.X <= MaxChunk && c.Y >= MinChunk && c.Y <= MaxChunk
}

// WorldPos is an absolute tile position.
type WorldPos struct {
	X, Y int32
}

// LocalPos is a tile offset inside a chunk, both components in [0, Side).
type LocalPos struct {
	X, Y int
}

// LocalIndex returns the array index of a chunk-local position.
func LocalIndex(x, y int) int {
	return y*Side + x
}

// LocalPosition is the inverse of LocalIndex.
func LocalPosition(index int) LocalPos {
	return LocalPos{X: index % Side, Y: index / Side}
}

// TileWorldPosition returns the world position of the tile at index inside chunk c.
func TileWorldPosition(c ChunkCoord, index int) WorldPos {
	local := LocalPosition(index)
	return WorldPos{
		X: c.X*Side + int32(local.X),
		Y: c.Y*Side + int32(local.Y),
	}
}

// ChunkOf returns the chunk owning p and p's offset inside it.
// Negative positions round toward negative infinity, so (-1,-1) is tile (63,63) of chunk (-1,-1).
func ChunkOf(p WorldPos) (ChunkCoord, LocalPos) {
	cx, lx := floorDivMod(p.X, Side)
	cy, ly := floorDivMod(p.Y, Side)
	return ChunkCoord{X: cx, Y: cy}, LocalPos{X: int(lx), Y: int(ly)}
}

func floorDivMod(a, b int32) (int32, int32) {
	q := a / b
	r := a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
