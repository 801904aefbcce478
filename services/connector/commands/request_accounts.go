package commands

import (
	"context"
	"database/sql"

	"github.com/status-im/arcadia/chain/types"
	persistence "github.com/status-im/arcadia/services/connector/database"
)

type RequestAccountsCommand struct {
	Db       *sql.DB
	Approver Approver
}

// Execute returns nil when origin may use account. A matching grant is
// enough. Otherwise the approver is asked, unless trustedOnly is set, and an
// approval is remembered as a new grant.
func (c *RequestAccountsCommand) Execute(ctx context.Context, origin string, account types.PublicKey, trustedOnly bool) error {
	grant, err := persistence.SelectGrantByOrigin(c.Db, origin)
	if err != nil {
		return err
	}

	if grant != nil && grant.Address.Equals(account) {
		return nil
	}
	if trustedOnly {
		return ErrNoGrantForOrigin
	}

	if err := c.Approver.RequestAccounts(ctx, origin, account); err != nil {
		return err
	}

	return persistence.UpsertGrant(c.Db, &persistence.Grant{
		Origin:  origin,
		Address: account,
	})
}
