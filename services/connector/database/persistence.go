package persistence

import (
	"database/sql"
	"embed"
	"time"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/sqlite"
)

const upsertGrantQuery = "INSERT INTO connector_grants (origin, address, granted_at) VALUES (?, ?, ?) ON CONFLICT(origin) DO UPDATE SET address = excluded.address, granted_at = excluded.granted_at"
const selectGrantByOriginQuery = "SELECT address, granted_at FROM connector_grants WHERE origin = ?"
const selectGrantsQuery = "SELECT origin, address, granted_at FROM connector_grants ORDER BY origin"
const deleteGrantQuery = "DELETE FROM connector_grants WHERE origin = ?"

const migrationsTable = "connector_schema_migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the grant table.
func Migrate(db *sql.DB) error {
	resources, err := sqlite.Resources(migrations, "migrations")
	if err != nil {
		return err
	}
	return sqlite.MigrateTable(db, resources, migrationsTable)
}

// Grant is a trusted connection between an origin and a wallet account.
type Grant struct {
	Origin    string          `json:"origin"`
	Address   types.PublicKey `json:"address"`
	GrantedAt int64           `json:"grantedAt"`
}

func UpsertGrant(db *sql.DB, grant *Grant) error {
	if grant.GrantedAt == 0 {
		grant.GrantedAt = time.Now().Unix()
	}
	_, err := db.Exec(upsertGrantQuery, grant.Origin, grant.Address.String(), grant.GrantedAt)
	return err
}

func SelectGrantByOrigin(db *sql.DB, origin string) (*Grant, error) {
	grant := &Grant{
		Origin: origin,
	}
	var address string
	err := db.QueryRow(selectGrantByOriginQuery, origin).Scan(&address, &grant.GrantedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	grant.Address, err = types.PublicKeyFromBase58(address)
	return grant, err
}

func SelectGrants(db *sql.DB) ([]Grant, error) {
	rows, err := db.Query(selectGrantsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var grant Grant
		var address string
		if err := rows.Scan(&grant.Origin, &address, &grant.GrantedAt); err != nil {
			return nil, err
		}
		if grant.Address, err = types.PublicKeyFromBase58(address); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

// DeleteGrant removes the grant for origin and reports whether one existed.
func DeleteGrant(db *sql.DB, origin string) (bool, error) {
	res, err := db.Exec(deleteGrantQuery, origin)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
