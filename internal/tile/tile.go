package tile

import (
	"strconv"
	"strings"
)

// Kind is the terrain classification of a tile. The zero value is Stone.
type Kind uint8

const (
	Stone Kind = iota
	Water
	Impassable
	Iron
	Copper
	Coal
)

// Kinds lists every known kind.
var Kinds = []Kind{Stone, Water, Impassable, Iron, Copper, Coal}

// IsResource reports whether tiles of this kind carry a magnitude.
func (k Kind) IsResource() bool {
	switch k {
	case Iron, Copper, Coal:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case Stone:
		return "stone"
	case Water:
		return "water"
	case Impassable:
		return "impassable"
	case Iron:
		return "iron"
	case Copper:
		return "copper"
	case Coal:
		return "coal"
	default:
		return "unknown"
	}
}

// Letter is the single glyph used by text renderings of a chunk.
func (k Kind) Letter() byte {
	switch k {
	case Water:
		return 'W'
	case Stone:
		return '.'
	case Iron:
		return 'I'
	case Copper:
		return 'C'
	case Coal:
		return 'L'
	case Impassable:
		return 'X'
	default:
		return '?'
	}
}

// Tile is one cell of terrain. Static kinds carry no magnitude; resource kinds do.
// Tiles compare with ==.
type Tile struct {
	kind      Kind
	magnitude uint32
}

// Static returns a payload-free tile. Resource kinds get a zero magnitude.
func Static(k Kind) Tile {
	return Tile{kind: k}
}

// Resource returns a resource tile. A static kind drops the magnitude.
func Resource(k Kind, magnitude uint32) Tile {
	if !k.IsResource() {
		return Tile{kind: k}
	}
	return Tile{kind: k, magnitude: magnitude}
}

func (t Tile) Kind() Kind {
	return t.kind
}

// Magnitude returns the resource amount and whether the tile carries one.
func (t Tile) Magnitude() (uint32, bool) {
	return t.magnitude, t.kind.IsResource()
}

func (t Tile) IsResource() bool {
	return t.kind.IsResource()
}

func (t Tile) String() string {
	if t.kind.IsResource() {
		return t.kind.String() + "(" + strconv.FormatUint(uint64(t.magnitude), 10) + ")"
	}
	return t.kind.String()
}

// Chunk is a full Side x Side grid indexed by LocalIndex.
type Chunk [Area]Tile

// At returns the tile at a chunk-local position.
func (c *Chunk) At(x, y int) Tile {
	return c[LocalIndex(x, y)]
}

// Render draws the chunk as Side lines of glyphs, row 0 first.
func (c *Chunk) Render() string {
	var b strings.Builder
	b.Grow(Area + Side)
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			b.WriteByte(c[LocalIndex(x, y)].kind.Letter())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Counts tallies tiles per kind.
func (c *Chunk) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, t := range c {
		counts[t.kind]++
	}
	return counts
}
