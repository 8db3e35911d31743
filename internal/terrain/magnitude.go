package terrain

import (
	"math/rand"

	"github.com/VoidMesh/worldgen/internal/tile"
)

// Magnitude draws a reproducible value from r for the tile at pos.
// The same (seed, pos, r) always yields the same value.
func Magnitude(seed int64, pos tile.WorldPos, r Range) uint32 {
	if r.Max <= r.Min {
		return r.Min
	}
	rng := rand.New(rand.NewSource(int64(hash2(seed, pos.X, pos.Y))))
	return r.Min + uint32(rng.Int63n(int64(r.Max-r.Min)))
}

func hash2(seed int64, x, y int32) uint64 {
	ux := uint64(uint32(x))
	uy := uint64(uint32(y))
	return mix64(uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9))
}

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
