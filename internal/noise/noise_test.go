package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	seeds := []int64{0, 1337, -9876, math.MaxInt64}

	for _, seed := range seeds {
		g := NewGenerator(seed)
		require.NotNil(t, g)
		assert.Equal(t, seed, g.GetSeed())
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(1337)
	b := NewGenerator(1337)

	points := [][2]float64{{0.5, 0.5}, {12.34, -5.67}, {-100.1, 3.3}, {1e3 + 0.25, 7.75}}
	for _, p := range points {
		assert.Equal(t, a.GetNoise(p[0], p[1]), b.GetNoise(p[0], p[1]))
	}
	assert.Equal(t, a.Sample(17, -40, 0.04), b.Sample(17, -40, 0.04))
}

func TestGenerator_LatticeIsZero(t *testing.T) {
	g := NewGenerator(42)

	assert.Zero(t, g.GetNoise(0, 0))
	assert.Zero(t, g.GetNoise(3, -7))
	assert.Zero(t, g.Sample(0, 0, 0.02))
}

func TestGenerator_Range(t *testing.T) {
	g := NewGenerator(7)

	for x := int32(-200); x < 200; x += 7 {
		for y := int32(-200); y < 200; y += 11 {
			v := g.Sample(x, y, 0.0333)
			require.False(t, math.IsNaN(v))
			require.LessOrEqual(t, math.Abs(v), 2.0)
		}
	}
}

func TestGenerator_SeedsDiffer(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)

	differs := false
	for i := 0; i < 50 && !differs; i++ {
		x := float64(i) + 0.37
		differs = a.GetNoise(x, x*0.5+0.11) != b.GetNoise(x, x*0.5+0.11)
	}
	assert.True(t, differs)
}
