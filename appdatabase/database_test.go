package appdatabase

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeDBCreatesEveryTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcadia.db")

	db, err := InitializeDB(path, "secret")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an initialized database is a no-op migration.
	db, err = InitializeDB(path, "secret")
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"connector_grants", "gallery_accounts"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestEachSchemaOwnerKeepsItsVersion(t *testing.T) {
	db, err := InitializeInMemoryDB()
	require.NoError(t, err)
	defer db.Close()

	// A second run finds nothing to apply for either owner.
	require.NoError(t, migrate(db))

	for _, table := range []string{"connector_schema_migrations", "gallery_schema_migrations"} {
		var version uint
		var dirty bool
		require.NoError(t, db.QueryRow("SELECT version, dirty FROM "+table).Scan(&version, &dirty), table)
		require.NotZero(t, version, table)
		require.False(t, dirty, table)
	}
}
