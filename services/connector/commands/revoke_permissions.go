package commands

import (
	"database/sql"

	persistence "github.com/status-im/arcadia/services/connector/database"
	"github.com/status-im/arcadia/signal"
)

type RevokePermissionsCommand struct {
	Db *sql.DB
}

func (c *RevokePermissionsCommand) Execute(origin string) error {
	deleted, err := persistence.DeleteGrant(c.Db, origin)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrNoGrantForOrigin
	}

	signal.SendConnectorGrantRevoked(origin)
	return nil
}
