// Package postgres implements store.Store over pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/db"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/store"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// Conn is what the store needs from a connection: queries plus transactions.
// *pgxpool.Conn, *pgx.Conn and pgxmock connections all satisfy it.
type Conn interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store implements store.Store on one connection.
type Store struct {
	conn    Conn
	queries *db.LoggingQueries
}

// New creates a store bound to conn.
func New(conn Conn) *Store {
	return &Store{
		conn:    conn,
		queries: db.NewLoggingQueries(conn),
	}
}

func (s *Store) LoadChunk(ctx context.Context, coord tile.ChunkCoord) (codec.Record, error) {
	chunk, err := s.queries.GetChunk(ctx, db.GetChunkParams{X: int64(coord.X), Y: int64(coord.Y)})
	if errors.Is(err, pgx.ErrNoRows) {
		return codec.Record{}, store.ErrNotFound
	}
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to get chunk %s: %w", coord, err)
	}

	rows, err := s.queries.ListComplexTiles(ctx, db.ListComplexTilesParams{ChunkX: int64(coord.X), ChunkY: int64(coord.Y)})
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to list complex tiles for chunk %s: %w", coord, err)
	}

	rec := codec.Record{
		Coord:    coord,
		TileIDs:  chunk.Tiles,
		Metadata: make([]codec.MetadataRow, 0, len(rows)),
	}
	for _, row := range rows {
		if row.Metadata < 0 || row.Metadata > math.MaxUint32 {
			logging.WithChunkCoords(coord.X, coord.Y).Warn("Skipping out of range tile metadata",
				"x", row.X, "y", row.Y, "metadata", row.Metadata)
			continue
		}
		rec.Metadata = append(rec.Metadata, codec.MetadataRow{X: row.X, Y: row.Y, Magnitude: uint32(row.Metadata)})
	}
	return rec, nil
}

func (s *Store) SaveChunk(ctx context.Context, rec codec.Record) (err error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	q := s.queries.WithTx(tx)
	err = q.CreateChunk(ctx, db.CreateChunkParams{
		X:     int64(rec.Coord.X),
		Y:     int64(rec.Coord.Y),
		Tiles: rec.TileIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to insert chunk %s: %w", rec.Coord, err)
	}

	if len(rec.Metadata) > 0 {
		params := db.CreateComplexTilesParams{
			ChunkX:   int64(rec.Coord.X),
			ChunkY:   int64(rec.Coord.Y),
			Xs:       make([]int32, len(rec.Metadata)),
			Ys:       make([]int32, len(rec.Metadata)),
			Metadata: make([]int64, len(rec.Metadata)),
		}
		for i, row := range rec.Metadata {
			params.Xs[i] = row.X
			params.Ys[i] = row.Y
			params.Metadata[i] = int64(row.Magnitude)
		}
		if err = q.CreateComplexTiles(ctx, params); err != nil {
			return fmt.Errorf("failed to insert complex tiles for chunk %s: %w", rec.Coord, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chunk %s: %w", rec.Coord, err)
	}
	return nil
}

func (s *Store) LoadWorld(ctx context.Context) (store.WorldRow, error) {
	w, err := s.queries.GetWorld(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.WorldRow{}, store.ErrNotFound
	}
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to get world: %w", err)
	}
	return worldRow(w), nil
}

func (s *Store) CreateWorld(ctx context.Context, originTime time.Time, seed int64) (store.WorldRow, error) {
	w, err := s.queries.CreateWorld(ctx, db.CreateWorldParams{
		OriginTime: pgtype.Timestamp{Time: originTime, Valid: true},
		Seed:       seed,
	})
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to create world: %w", err)
	}
	return worldRow(w), nil
}

func (s *Store) ReplaceWorld(ctx context.Context, originTime time.Time, seed int64) (_ store.WorldRow, err error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	q := s.queries.WithTx(tx)
	if err = q.DeleteWorlds(ctx); err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to delete worlds: %w", err)
	}
	w, err := q.CreateWorld(ctx, db.CreateWorldParams{
		OriginTime: pgtype.Timestamp{Time: originTime, Valid: true},
		Seed:       seed,
	})
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to create world: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to commit world: %w", err)
	}
	return worldRow(w), nil
}

func worldRow(w db.World) store.WorldRow {
	return store.WorldRow{
		ID:         w.ID,
		OriginTime: w.OriginTime.Time,
		Seed:       w.Seed,
	}
}
