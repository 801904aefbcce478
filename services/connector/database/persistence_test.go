package persistence

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sqlite.OpenInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	require.NoError(t, Migrate(db))
	return db
}

func TestGrantLifecycle(t *testing.T) {
	db := setupTestDB(t)

	grant, err := SelectGrantByOrigin(db, "arcadia")
	require.NoError(t, err)
	require.Nil(t, grant)

	first := &Grant{Origin: "arcadia", Address: types.PublicKey{1}}
	require.NoError(t, UpsertGrant(db, first))
	require.NotZero(t, first.GrantedAt)

	second := &Grant{Origin: "arcadia", Address: types.PublicKey{2}, GrantedAt: 42}
	require.NoError(t, UpsertGrant(db, second))

	grant, err = SelectGrantByOrigin(db, "arcadia")
	require.NoError(t, err)
	require.Equal(t, second, grant)

	require.NoError(t, UpsertGrant(db, &Grant{Origin: "another", Address: types.PublicKey{3}, GrantedAt: 7}))
	grants, err := SelectGrants(db)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	require.Equal(t, "another", grants[0].Origin)
	require.Equal(t, "arcadia", grants[1].Origin)

	deleted, err := DeleteGrant(db, "arcadia")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = DeleteGrant(db, "arcadia")
	require.NoError(t, err)
	require.False(t, deleted)

	grant, err = SelectGrantByOrigin(db, "arcadia")
	require.NoError(t, err)
	require.Nil(t, grant)
}
