// Package codec converts chunks to and from their persisted form: a bulk
// array of tile ids plus one metadata row per resource tile.
package codec

import (
	"errors"
	"fmt"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// ErrChunkMalformed is returned when a persisted tile array is not exactly tile.Area bytes.
var ErrChunkMalformed = errors.New("chunk malformed")

// Persisted tile ids. These values are on disk; never renumber them.
const (
	IDWater      byte = 0
	IDStone      byte = 1
	IDImpassable byte = 2
	IDIron       byte = 3
	IDCopper     byte = 4
	IDCoal       byte = 5
)

// Record is the persisted form of one chunk.
type Record struct {
	Coord    tile.ChunkCoord
	TileIDs  []byte
	Metadata []MetadataRow
}

// MetadataRow carries the magnitude of the resource tile at local (X, Y).
type MetadataRow struct {
	X, Y      int32
	Magnitude uint32
}

// ID returns the persisted id for a kind.
func ID(k tile.Kind) byte {
	switch k {
	case tile.Water:
		return IDWater
	case tile.Impassable:
		return IDImpassable
	case tile.Iron:
		return IDIron
	case tile.Copper:
		return IDCopper
	case tile.Coal:
		return IDCoal
	default:
		return IDStone
	}
}

// KindOf maps a persisted id back to its kind.
func KindOf(id byte) (tile.Kind, bool) {
	switch id {
	case IDWater:
		return tile.Water, true
	case IDStone:
		return tile.Stone, true
	case IDImpassable:
		return tile.Impassable, true
	case IDIron:
		return tile.Iron, true
	case IDCopper:
		return tile.Copper, true
	case IDCoal:
		return tile.Coal, true
	}
	return tile.Stone, false
}

// Encode flattens a chunk into its persisted record.
func Encode(coord tile.ChunkCoord, c *tile.Chunk) Record {
	rec := Record{
		Coord:   coord,
		TileIDs: make([]byte, tile.Area),
	}
	for i, t := range c {
		rec.TileIDs[i] = ID(t.Kind())
		if mag, ok := t.Magnitude(); ok {
			local := tile.LocalPosition(i)
			rec.Metadata = append(rec.Metadata, MetadataRow{
				X:         int32(local.X),
				Y:         int32(local.Y),
				Magnitude: mag,
			})
		}
	}
	return rec
}

// Decode rebuilds a chunk from its record. Only a wrong-length tile array fails;
// unknown ids and resource ids without metadata become Stone.
func Decode(rec Record) (*tile.Chunk, error) {
	if len(rec.TileIDs) != tile.Area {
		return nil, fmt.Errorf("%w: chunk %s has %d tiles, expected %d", ErrChunkMalformed, rec.Coord, len(rec.TileIDs), tile.Area)
	}

	magnitudes := make(map[int]uint32, len(rec.Metadata))
	for _, row := range rec.Metadata {
		if row.X < 0 || row.X >= tile.Side || row.Y < 0 || row.Y >= tile.Side {
			continue
		}
		magnitudes[tile.LocalIndex(int(row.X), int(row.Y))] = row.Magnitude
	}

	var (
		c       tile.Chunk
		unknown int
		missing int
	)
	for i, id := range rec.TileIDs {
		kind, ok := KindOf(id)
		if !ok {
			unknown++
			continue
		}
		if !kind.IsResource() {
			c[i] = tile.Static(kind)
			continue
		}
		mag, ok := magnitudes[i]
		if !ok {
			missing++
			continue
		}
		c[i] = tile.Resource(kind, mag)
	}

	if unknown > 0 || missing > 0 {
		logging.WithChunkCoords(rec.Coord.X, rec.Coord.Y).Warn("Decoded chunk with unreadable tiles, substituted stone",
			"unknown_ids", unknown,
			"missing_metadata", missing,
		)
	}

	return &c, nil
}
