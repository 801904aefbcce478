package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/logutils"
	"github.com/status-im/arcadia/params"
)

func main() {
	app := &cli.App{
		Name:    "arcadia",
		Usage:   "A collection of Arcade Game GIF's in the metaverse",
		Version: params.Version,
		Flags:   ConfigFlags,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the gallery as a web page",
				Flags:  ServeFlags,
				Action: serve,
			},
			{
				Name:   "tui",
				Usage:  "Run the gallery in the terminal",
				Action: runTUI,
			},
			{
				Name:  "grants",
				Usage: "Manage trusted wallet grants",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List trusted grants",
						Action: listGrants,
					},
					{
						Name:      "revoke",
						Usage:     "Revoke the trusted grant of an origin",
						ArgsUsage: "[origin]",
						Action:    revokeGrant,
					},
				},
			},
			{
				Name:   "keygen",
				Usage:  "Write a new keypair file",
				Flags:  KeygenFlags,
				Action: keygen,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logutils.ZapLogger().Fatal("arcadia failed", zap.Error(err))
	}
}
