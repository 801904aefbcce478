package commands

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/chain/types"
	persistence "github.com/status-im/arcadia/services/connector/database"
	"github.com/status-im/arcadia/signal"
	"github.com/status-im/arcadia/sqlite"
)

const testOrigin = "arcadia"

var testAccount = types.PublicKey{9, 8, 7}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sqlite.OpenInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	require.NoError(t, persistence.Migrate(db))
	return db
}

// onSignal routes every signal of the given type to fn until the test ends.
func onSignal(t *testing.T, typ string, fn func(event json.RawMessage)) {
	signal.SetDefaultNodeNotificationHandler(func(jsonEvent string) {
		var envelope struct {
			Type  string          `json:"type"`
			Event json.RawMessage `json:"event"`
		}
		require.NoError(t, json.Unmarshal([]byte(jsonEvent), &envelope))
		if envelope.Type == typ {
			fn(envelope.Event)
		}
	})
	t.Cleanup(signal.ResetDefaultNodeNotificationHandler)
}

type recordingApprover struct {
	err   error
	calls int
}

func (a *recordingApprover) RequestAccounts(context.Context, string, types.PublicKey) error {
	a.calls++
	return a.err
}
