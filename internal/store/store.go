// Package store defines the persistence contract for chunks and the world row.
package store

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// ErrNotFound is returned when a chunk or the world row does not exist.
var ErrNotFound = errors.New("not found")

// WorldRow is the persisted world configuration.
type WorldRow struct {
	ID         int32
	OriginTime time.Time
	Seed       int64
}

// Store is one connection's view of the persistent world.
type Store interface {
	// LoadChunk returns ErrNotFound when the chunk was never saved.
	LoadChunk(ctx context.Context, coord tile.ChunkCoord) (codec.Record, error)
	// SaveChunk writes the tile array and its metadata rows atomically.
	SaveChunk(ctx context.Context, rec codec.Record) error
	// LoadWorld returns ErrNotFound when no world row exists.
	LoadWorld(ctx context.Context) (WorldRow, error)
	CreateWorld(ctx context.Context, originTime time.Time, seed int64) (WorldRow, error)
	// ReplaceWorld deletes every world row and inserts a new one in one transaction.
	// On failure the previous row is kept.
	ReplaceWorld(ctx context.Context, originTime time.Time, seed int64) (WorldRow, error)
}
