package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/chain/types"
	persistence "github.com/status-im/arcadia/services/connector/database"
)

func TestRequestAccountsTrustedOnlyWithoutGrant(t *testing.T) {
	approver := &recordingApprover{}
	cmd := &RequestAccountsCommand{Db: setupTestDB(t), Approver: approver}

	err := cmd.Execute(context.Background(), testOrigin, testAccount, true)
	require.ErrorIs(t, err, ErrNoGrantForOrigin)
	require.Zero(t, approver.calls)
}

func TestRequestAccountsApprovalCreatesGrant(t *testing.T) {
	db := setupTestDB(t)
	approver := &recordingApprover{}
	cmd := &RequestAccountsCommand{Db: db, Approver: approver}

	require.NoError(t, cmd.Execute(context.Background(), testOrigin, testAccount, false))
	require.Equal(t, 1, approver.calls)

	grant, err := persistence.SelectGrantByOrigin(db, testOrigin)
	require.NoError(t, err)
	require.NotNil(t, grant)
	require.Equal(t, testAccount, grant.Address)

	// The grant is now trusted and the approver is not asked again.
	require.NoError(t, cmd.Execute(context.Background(), testOrigin, testAccount, true))
	require.NoError(t, cmd.Execute(context.Background(), testOrigin, testAccount, false))
	require.Equal(t, 1, approver.calls)
}

func TestRequestAccountsRejectionStoresNothing(t *testing.T) {
	db := setupTestDB(t)
	approver := &recordingApprover{err: ErrAccountsRequestDeniedByUser}
	cmd := &RequestAccountsCommand{Db: db, Approver: approver}

	err := cmd.Execute(context.Background(), testOrigin, testAccount, false)
	require.ErrorIs(t, err, ErrAccountsRequestDeniedByUser)

	grant, err := persistence.SelectGrantByOrigin(db, testOrigin)
	require.NoError(t, err)
	require.Nil(t, grant)
}

func TestRequestAccountsGrantForOtherAccountIsNotTrusted(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, persistence.UpsertGrant(db, &persistence.Grant{Origin: testOrigin, Address: types.PublicKey{1}}))
	cmd := &RequestAccountsCommand{Db: db, Approver: AutoApprover{}}

	require.ErrorIs(t, cmd.Execute(context.Background(), testOrigin, testAccount, true), ErrNoGrantForOrigin)
	require.NoError(t, cmd.Execute(context.Background(), testOrigin, testAccount, false))

	grant, err := persistence.SelectGrantByOrigin(db, testOrigin)
	require.NoError(t, err)
	require.Equal(t, testAccount, grant.Address)
}

func TestRevokePermissions(t *testing.T) {
	db := setupTestDB(t)
	cmd := &RevokePermissionsCommand{Db: db}
	require.ErrorIs(t, cmd.Execute(testOrigin), ErrNoGrantForOrigin)

	require.NoError(t, persistence.UpsertGrant(db, &persistence.Grant{Origin: testOrigin, Address: testAccount}))
	require.NoError(t, cmd.Execute(testOrigin))

	grant, err := persistence.SelectGrantByOrigin(db, testOrigin)
	require.NoError(t, err)
	require.Nil(t, grant)
}
