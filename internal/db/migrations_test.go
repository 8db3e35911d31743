package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		t.Run(dialect, func(t *testing.T) {
			src, err := MigrationSource(dialect)
			require.NoError(t, err)
			defer src.Close()

			version, err := src.First()
			require.NoError(t, err)
			assert.Equal(t, uint(1), version)

			up, identifier, err := src.ReadUp(version)
			require.NoError(t, err)
			defer up.Close()
			assert.Equal(t, "create_world_tables", identifier)
		})
	}
}

func TestMigrationSource_UnknownDialect(t *testing.T) {
	_, err := MigrationSource("oracle")
	assert.Error(t, err)
}
