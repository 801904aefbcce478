package appdatabase

import (
	"database/sql"

	persistence "github.com/status-im/arcadia/services/connector/database"
	"github.com/status-im/arcadia/services/gif"
	"github.com/status-im/arcadia/sqlite"
)

// migrate applies the schema of every package that keeps state in the
// application database.
func migrate(db *sql.DB) error {
	if err := persistence.Migrate(db); err != nil {
		return err
	}
	return gif.Migrate(db)
}

// InitializeDB creates db file at a given path and applies migrations.
func InitializeDB(path, password string) (*sql.DB, error) {
	db, err := sqlite.OpenDB(path, password)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitializeInMemoryDB is InitializeDB for a throwaway database.
func InitializeInMemoryDB() (*sql.DB, error) {
	db, err := sqlite.OpenInMemoryDB()
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
