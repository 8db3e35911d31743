package api

import (
	"time"

	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/codec"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type WorldResponse struct {
	ID         int32     `json:"id"`
	OriginTime time.Time `json:"origin_time"`
	Seed       int64     `json:"seed"`
}

type CoordResponse struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type SlotResponse struct {
	Capacity int `json:"capacity"`
	Leased   int `json:"leased"`
}

type ChunkListResponse struct {
	Chunks  []CoordResponse `json:"chunks"`
	Count   int             `json:"count"`
	Pending int             `json:"pending"`
	Slots   SlotResponse    `json:"slots"`
}

type MetadataResponse struct {
	X         int32  `json:"x"`
	Y         int32  `json:"y"`
	Magnitude uint32 `json:"magnitude"`
}

// ChunkResponse carries the same ids and metadata the store persists. Tiles is a
// row-major list of codec ids.
type ChunkResponse struct {
	X          int32              `json:"x"`
	Y          int32              `json:"y"`
	Source     string             `json:"source"`
	VisualLink *string            `json:"visual_link,omitempty"`
	Tiles      []int              `json:"tiles"`
	Metadata   []MetadataResponse `json:"metadata"`
}

type TileResponse struct {
	X         int32         `json:"x"`
	Y         int32         `json:"y"`
	Kind      string        `json:"kind"`
	ID        byte          `json:"id"`
	Magnitude *uint32       `json:"magnitude,omitempty"`
	Chunk     CoordResponse `json:"chunk"`
}

type RequestResponse struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
}

func newChunkResponse(e chunk.Entry) ChunkResponse {
	rec := codec.Encode(e.Coord, e.Chunk)

	response := ChunkResponse{
		X:        e.Coord.X,
		Y:        e.Coord.Y,
		Source:   e.Source.String(),
		Tiles:    make([]int, len(rec.TileIDs)),
		Metadata: make([]MetadataResponse, 0, len(rec.Metadata)),
	}
	for i, id := range rec.TileIDs {
		response.Tiles[i] = int(id)
	}
	for _, m := range rec.Metadata {
		response.Metadata = append(response.Metadata, MetadataResponse{X: m.X, Y: m.Y, Magnitude: m.Magnitude})
	}
	if e.VisualLink.Valid {
		link := e.VisualLink.UUID.String()
		response.VisualLink = &link
	}
	return response
}
