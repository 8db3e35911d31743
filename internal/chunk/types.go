package chunk

import (
	"github.com/google/uuid"

	"github.com/VoidMesh/worldgen/internal/tile"
)

// Source records how a cached chunk came to be.
type Source int

const (
	// SourceLoaded chunks were decoded from the store.
	SourceLoaded Source = iota
	// SourceGenerated chunks were generated and handed to the store.
	SourceGenerated
	// SourceDegraded chunks were generated with no store slot and never persisted.
	SourceDegraded
)

func (s Source) String() string {
	switch s {
	case SourceLoaded:
		return "loaded"
	case SourceGenerated:
		return "generated"
	case SourceDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Entry is a snapshot of one cached chunk. Chunk is shared and must not be modified.
// VisualLink is a handle owned by the renderer; the cache only stores it.
type Entry struct {
	Coord      tile.ChunkCoord
	Chunk      *tile.Chunk
	VisualLink uuid.NullUUID
	Source     Source
}

// RequestKind distinguishes queued load and unload requests.
type RequestKind int

const (
	LoadRequest RequestKind = iota
	UnloadRequest
)

func (k RequestKind) String() string {
	if k == UnloadRequest {
		return "unload"
	}
	return "load"
}

// Request is one queued unit of work for the next tick.
type Request struct {
	Kind  RequestKind
	Coord tile.ChunkCoord
}

// Renderer owns the visual representation of chunks. ChunkReady is called after a
// chunk enters the cache; the renderer attaches its handle with Cache.UpdateEntity.
// ChunkGone is called before eviction with whatever handle was attached.
type Renderer interface {
	ChunkReady(entry Entry)
	ChunkGone(coord tile.ChunkCoord, link uuid.NullUUID)
}

// TickResult summarizes one drained request queue.
type TickResult struct {
	Loaded   int
	Degraded int
	Unloaded int
	Failed   int
}
