package gif

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sqlite.OpenInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	require.NoError(t, Migrate(db))
	return db
}

// testStoreContract runs the behaviour every record store shares.
func testStoreContract(t *testing.T, store gallery.RecordStore) {
	ctx := context.Background()
	accountID := types.PublicKey{4, 2}
	owner, err := types.NewRandomKeypair()
	require.NoError(t, err)

	_, err = store.Fetch(ctx, accountID)
	require.ErrorIs(t, err, gallery.ErrStoreUninitialized)
	require.ErrorIs(t, store.Append(ctx, accountID, owner, "https://example.com/a.gif"), gallery.ErrStoreUninitialized)

	require.NoError(t, store.Initialize(ctx, accountID, owner))
	require.ErrorIs(t, store.Initialize(ctx, accountID, owner), gallery.ErrAlreadyInitialized)

	items, err := store.Fetch(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	require.NoError(t, store.Append(ctx, accountID, owner, "https://example.com/a.gif"))
	require.NoError(t, store.Append(ctx, accountID, owner, "https://example.com/b.gif"))

	items, err = store.Fetch(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, []gallery.Item{
		{Link: "https://example.com/a.gif", Submitter: owner.PublicKey().String()},
		{Link: "https://example.com/b.gif", Submitter: owner.PublicKey().String()},
	}, items)

	// Callers get their own copy.
	items[0].Link = "changed"
	again, err := store.Fetch(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a.gif", again[0].Link)
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, NewSQLiteStore(setupTestDB(t)))
}

func TestSQLiteStoreCountsGifs(t *testing.T) {
	db := setupTestDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()
	owner, err := types.NewRandomKeypair()
	require.NoError(t, err)
	accountID := types.PublicKey{1}

	require.NoError(t, store.Initialize(ctx, accountID, owner))
	require.NoError(t, store.Append(ctx, accountID, owner, "https://example.com/a.gif"))

	var total int
	var storedOwner string
	require.NoError(t, db.QueryRow("SELECT total_gifs, owner FROM gallery_accounts WHERE account = ?", accountID.String()).Scan(&total, &storedOwner))
	require.Equal(t, 1, total)
	require.Equal(t, owner.PublicKey().String(), storedOwner)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}
