// Package sqlite implements store.Store over database/sql with go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/store"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// Conn is the subset of *sql.Conn and *sql.DB the store uses.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

const (
	getChunk = `SELECT tiles FROM chunks WHERE x = ? AND y = ?`

	listComplexTiles = `SELECT x, y, metadata FROM complex_tiles
WHERE chunk_x = ? AND chunk_y = ?
ORDER BY y, x`

	createChunk = `INSERT OR IGNORE INTO chunks (x, y, tiles) VALUES (?, ?, ?)`

	createComplexTile = `INSERT OR IGNORE INTO complex_tiles (chunk_x, chunk_y, x, y, metadata)
VALUES (?, ?, ?, ?, ?)`

	getWorld = `SELECT id, origin_time, seed FROM worlds ORDER BY id LIMIT 1`

	createWorld = `INSERT INTO worlds (origin_time, seed) VALUES (?, ?)`

	getWorldByID = `SELECT id, origin_time, seed FROM worlds WHERE id = ?`

	deleteWorlds = `DELETE FROM worlds`
)

// Store implements store.Store on one connection.
type Store struct {
	conn Conn
}

func New(conn Conn) *Store {
	return &Store{conn: conn}
}

func (s *Store) LoadChunk(ctx context.Context, coord tile.ChunkCoord) (codec.Record, error) {
	var tiles []byte
	err := s.conn.QueryRowContext(ctx, getChunk, coord.X, coord.Y).Scan(&tiles)
	if errors.Is(err, sql.ErrNoRows) {
		return codec.Record{}, store.ErrNotFound
	}
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to get chunk %s: %w", coord, err)
	}

	rows, err := s.conn.QueryContext(ctx, listComplexTiles, coord.X, coord.Y)
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to list complex tiles for chunk %s: %w", coord, err)
	}
	defer rows.Close()

	rec := codec.Record{Coord: coord, TileIDs: tiles}
	for rows.Next() {
		var row codec.MetadataRow
		if err := rows.Scan(&row.X, &row.Y, &row.Magnitude); err != nil {
			return codec.Record{}, fmt.Errorf("failed to scan complex tile: %w", err)
		}
		rec.Metadata = append(rec.Metadata, row)
	}
	if err := rows.Err(); err != nil {
		return codec.Record{}, fmt.Errorf("failed to read complex tiles: %w", err)
	}
	return rec, nil
}

func (s *Store) SaveChunk(ctx context.Context, rec codec.Record) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createChunk, rec.Coord.X, rec.Coord.Y, rec.TileIDs); err != nil {
		return fmt.Errorf("failed to insert chunk %s: %w", rec.Coord, err)
	}

	if len(rec.Metadata) > 0 {
		stmt, err := tx.PrepareContext(ctx, createComplexTile)
		if err != nil {
			return fmt.Errorf("failed to prepare complex tile insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rec.Metadata {
			if _, err := stmt.ExecContext(ctx, rec.Coord.X, rec.Coord.Y, row.X, row.Y, int64(row.Magnitude)); err != nil {
				return fmt.Errorf("failed to insert complex tile for chunk %s: %w", rec.Coord, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk %s: %w", rec.Coord, err)
	}
	return nil
}

func (s *Store) LoadWorld(ctx context.Context) (store.WorldRow, error) {
	var row store.WorldRow
	err := s.conn.QueryRowContext(ctx, getWorld).Scan(&row.ID, &row.OriginTime, &row.Seed)
	if errors.Is(err, sql.ErrNoRows) {
		return store.WorldRow{}, store.ErrNotFound
	}
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to get world: %w", err)
	}
	return row, nil
}

func (s *Store) CreateWorld(ctx context.Context, originTime time.Time, seed int64) (store.WorldRow, error) {
	return insertWorld(ctx, s.conn, originTime, seed)
}

func (s *Store) ReplaceWorld(ctx context.Context, originTime time.Time, seed int64) (store.WorldRow, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteWorlds); err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to delete worlds: %w", err)
	}
	row, err := insertWorld(ctx, tx, originTime, seed)
	if err != nil {
		return store.WorldRow{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to commit world: %w", err)
	}
	return row, nil
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertWorld(ctx context.Context, q execQuerier, originTime time.Time, seed int64) (store.WorldRow, error) {
	res, err := q.ExecContext(ctx, createWorld, originTime.UTC(), seed)
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to create world: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to read world id: %w", err)
	}

	var row store.WorldRow
	err = q.QueryRowContext(ctx, getWorldByID, id).Scan(&row.ID, &row.OriginTime, &row.Seed)
	if err != nil {
		return store.WorldRow{}, fmt.Errorf("failed to read created world: %w", err)
	}
	return row, nil
}
