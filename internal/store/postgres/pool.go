package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/VoidMesh/worldgen/internal/db"
	"github.com/VoidMesh/worldgen/internal/slot"
)

// Open connects a pgx pool capped at maxConns and checks it with a ping.
func Open(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded postgres migrations.
func Migrate(pool *pgxpool.Pool) error {
	src, err := db.MigrationSource(db.DialectPostgres)
	if err != nil {
		return err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Pool adapts a pgx pool to slot.Pool.
type Pool struct {
	pool *pgxpool.Pool
}

func NewPool(pool *pgxpool.Pool) *Pool {
	return &Pool{pool: pool}
}

func (p *Pool) Acquire(ctx context.Context) (slot.Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{Store: New(conn), conn: conn}, nil
}

// Available is the pool's headroom: its maximum size minus connections in use.
func (p *Pool) Available() int {
	stat := p.pool.Stat()
	return int(stat.MaxConns() - stat.AcquiredConns())
}

type pooledConn struct {
	*Store
	conn *pgxpool.Conn
}

func (c *pooledConn) Release() {
	c.conn.Release()
}
