package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/VoidMesh/worldgen/internal/logging"
)

// LoggingQueries wraps the generated Queries struct to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx pgx.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)
	logger := logging.GetLogger()

	if err != nil {
		logger.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
		return
	}
	logger.Debug("Database query executed",
		"query", queryName,
		"duration", duration,
		"args", args,
	)
}

// GetChunk with logging
func (lq *LoggingQueries) GetChunk(ctx context.Context, arg GetChunkParams) (Chunk, error) {
	start := time.Now()
	result, err := lq.Queries.GetChunk(ctx, arg)
	lq.logQuery("GetChunk", start, err, arg)
	return result, err
}

// CreateChunk with logging. The tile payload is left out of the log line.
func (lq *LoggingQueries) CreateChunk(ctx context.Context, arg CreateChunkParams) error {
	start := time.Now()
	err := lq.Queries.CreateChunk(ctx, arg)
	lq.logQuery("CreateChunk", start, err, "x", arg.X, "y", arg.Y, "tiles", len(arg.Tiles))
	return err
}

// ListComplexTiles with logging
func (lq *LoggingQueries) ListComplexTiles(ctx context.Context, arg ListComplexTilesParams) ([]ComplexTile, error) {
	start := time.Now()
	result, err := lq.Queries.ListComplexTiles(ctx, arg)
	lq.logQuery("ListComplexTiles", start, err, arg)

	if err == nil {
		logging.GetLogger().Debug("ListComplexTiles result", "row_count", len(result), "chunk_x", arg.ChunkX, "chunk_y", arg.ChunkY)
	}

	return result, err
}

// CreateComplexTiles with logging
func (lq *LoggingQueries) CreateComplexTiles(ctx context.Context, arg CreateComplexTilesParams) error {
	start := time.Now()
	err := lq.Queries.CreateComplexTiles(ctx, arg)
	lq.logQuery("CreateComplexTiles", start, err, "chunk_x", arg.ChunkX, "chunk_y", arg.ChunkY, "rows", len(arg.Xs))
	return err
}

// GetWorld with logging
func (lq *LoggingQueries) GetWorld(ctx context.Context) (World, error) {
	start := time.Now()
	result, err := lq.Queries.GetWorld(ctx)
	lq.logQuery("GetWorld", start, err)
	return result, err
}

// CreateWorld with logging
func (lq *LoggingQueries) CreateWorld(ctx context.Context, arg CreateWorldParams) (World, error) {
	start := time.Now()
	result, err := lq.Queries.CreateWorld(ctx, arg)
	lq.logQuery("CreateWorld", start, err, arg)
	return result, err
}

// DeleteWorlds with logging
func (lq *LoggingQueries) DeleteWorlds(ctx context.Context) error {
	start := time.Now()
	err := lq.Queries.DeleteWorlds(ctx)
	lq.logQuery("DeleteWorlds", start, err)
	return err
}
