package noise

import (
	"github.com/aquilax/go-perlin"
)

// GeneratorInterface is the coherent noise field terrain layers sample from.
type GeneratorInterface interface {
	GetNoise(x, y float64) float64
	Sample(x, y int32, frequency float64) float64
	GetSeed() int64
}

// Generator implements GeneratorInterface using Perlin noise.
// It is read-only after construction and safe for concurrent use.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

const (
	alpha   = 2
	beta    = 2
	octaves = 3
)

// NewGenerator creates a new noise generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		noise: perlin.NewPerlin(alpha, beta, octaves, seed),
		seed:  seed,
	}
}

// GetNoise returns the raw field value at (x, y). Integer lattice points sample to 0.
func (g *Generator) GetNoise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// Sample scales a tile position by frequency before sampling.
func (g *Generator) Sample(x, y int32, frequency float64) float64 {
	return g.GetNoise(float64(x)*frequency, float64(y)*frequency)
}

// GetSeed returns the current seed
func (g *Generator) GetSeed() int64 {
	return g.seed
}
