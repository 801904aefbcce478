package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/status-im/arcadia/services/connector"
	"github.com/status-im/arcadia/services/connector/commands"
)

// withGrants runs fn against the grant store without dialing the cluster.
func withGrants(cCtx *cli.Context, fn func(api *connector.API, origin string) error) (err error) {
	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	logger, err := setupLogger(config)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	s := connector.NewService(db, config.Origin, "", commands.AutoApprover{}, logger)
	return fn(connector.NewAPI(s, nil), config.Origin)
}

func listGrants(cCtx *cli.Context) error {
	return withGrants(cCtx, func(api *connector.API, _ string) error {
		grants, err := api.Grants()
		if err != nil {
			return err
		}
		if len(grants) == 0 {
			fmt.Fprintln(cCtx.App.Writer, "no trusted grants")
			return nil
		}
		for _, g := range grants {
			fmt.Fprintf(cCtx.App.Writer, "%s\t%s\t%s\n", g.Origin, g.Address, time.Unix(g.GrantedAt, 0).UTC().Format(time.RFC3339))
		}
		return nil
	})
}

func revokeGrant(cCtx *cli.Context) error {
	return withGrants(cCtx, func(api *connector.API, origin string) error {
		if cCtx.Args().Present() {
			origin = cCtx.Args().First()
		}
		if err := api.RecallGrant(origin); err != nil {
			return err
		}
		fmt.Fprintf(cCtx.App.Writer, "revoked %s\n", origin)
		return nil
	})
}
