package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/worldgen/internal/db"
	"github.com/VoidMesh/worldgen/internal/slot"
)

// Open opens the database file at path with at most maxConns connections.
func Open(path string, maxConns int) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxConns > 0 {
		database.SetMaxOpenConns(maxConns)
		database.SetMaxIdleConns(maxConns)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return database, nil
}

// Migrate applies the embedded sqlite migrations.
func Migrate(database *sql.DB) error {
	src, err := db.MigrationSource(db.DialectSQLite)
	if err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(database, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Pool adapts a *sql.DB to slot.Pool.
type Pool struct {
	db   *sql.DB
	size int
}

// NewPool wraps database. size is the connection cap it was opened with.
func NewPool(database *sql.DB, size int) *Pool {
	return &Pool{db: database, size: size}
}

func (p *Pool) Acquire(ctx context.Context) (slot.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{Store: New(conn), conn: conn}, nil
}

func (p *Pool) Available() int {
	return p.size - p.db.Stats().InUse
}

type pooledConn struct {
	*Store
	conn *sql.Conn
}

func (c *pooledConn) Release() {
	_ = c.conn.Close()
}
