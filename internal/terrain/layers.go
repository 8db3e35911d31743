package terrain

import "github.com/VoidMesh/worldgen/internal/tile"

// Impassable marks mountain ranges nothing can cross.
func Impassable() Layer {
	return Layer{
		Name:      "impassable",
		Priority:  100,
		Kind:      tile.Impassable,
		Threshold: 0.35,
		Field:     NoiseField(0.01),
	}
}

// Water marks lakes and seas.
func Water() Layer {
	return Layer{
		Name:      "water",
		Priority:  99,
		Kind:      tile.Water,
		Threshold: 0.30,
		Field:     NoiseField(0.02),
	}
}

func Coal() Layer {
	return Layer{
		Name:      "coal",
		Priority:  25,
		Kind:      tile.Coal,
		Threshold: 0.40,
		Magnitude: Range{Min: 1000, Max: 10000},
		Field:     NoiseField(0.0333),
	}
}

func Iron() Layer {
	return Layer{
		Name:      "iron",
		Priority:  6,
		Kind:      tile.Iron,
		Threshold: 0.38,
		Magnitude: Range{Min: 2000, Max: 8000},
		Field:     NoiseField(0.18),
	}
}

func Copper() Layer {
	return Layer{
		Name:      "copper",
		Priority:  5,
		Kind:      tile.Copper,
		Threshold: 0.42,
		Magnitude: Range{Min: 1000, Max: 6000},
		Field:     NoiseField(0.04),
	}
}
