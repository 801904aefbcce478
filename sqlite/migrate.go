package sqlite

import (
	"database/sql"
	"io/fs"
	"path"

	"github.com/status-im/migrate/v4"
	"github.com/status-im/migrate/v4/database/sqlcipher"
	bindata "github.com/status-im/migrate/v4/source/go_bindata"
)

// Resources exposes the migration files in dir as a bindata source. Files
// are named like NNNN_name.up.sql.
func Resources(fsys fs.FS, dir string) (*bindata.AssetSource, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return bindata.Resource(
		names,
		func(name string) ([]byte, error) {
			return fs.ReadFile(fsys, path.Join(dir, name))
		},
	), nil
}

// Migrate database using provided resources.
func Migrate(db *sql.DB, resources *bindata.AssetSource) error {
	return MigrateTable(db, resources, "arcadia_"+sqlcipher.DefaultMigrationsTable)
}

// MigrateTable is Migrate with the version kept in table. Every package that
// owns a schema in a shared database uses its own table.
func MigrateTable(db *sql.DB, resources *bindata.AssetSource, table string) error {
	source, err := bindata.WithInstance(resources)
	if err != nil {
		return err
	}

	driver, err := sqlcipher.WithInstance(db, &sqlcipher.Config{
		MigrationsTable: table,
	})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance(
		"go-bindata",
		source,
		"sqlcipher",
		driver)
	if err != nil {
		return err
	}

	if err = m.Up(); err != migrate.ErrNoChange {
		return err
	}
	return nil
}
