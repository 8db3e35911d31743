package db

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Dialects with embedded migrations.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// MigrationSource returns the embedded migration files for a dialect.
func MigrationSource(dialect string) (source.Driver, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
	src, err := iofs.New(migrations, "migrations/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", dialect, err)
	}
	return src, nil
}
