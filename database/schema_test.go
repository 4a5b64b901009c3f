package database

import (
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTablesAndIndexes(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, CreateTables(db))
	require.NoError(t, CreateIndexes(db))

	// Idempotent, everything is IF NOT EXISTS.
	require.NoError(t, CreateTables(db))
	require.NoError(t, CreateIndexes(db))

	for table, cols := range Columns {
		rows, err := db.Query("SELECT column_name FROM information_schema.columns WHERE table_name = ?", table)
		require.NoError(t, err)

		found := map[string]bool{}
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			found[name] = true
		}
		require.NoError(t, rows.Err())
		rows.Close()

		for _, col := range cols {
			assert.True(t, found[col], "table %s is missing column %s", table, col)
		}
	}
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := OpenReadOnly("/nonexistent/road_network.duckdb")
	assert.Error(t, err)
}
