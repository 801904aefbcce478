package main

import (
	"github.com/urfave/cli/v2"

	"github.com/status-im/arcadia/params"
)

const (
	ConfigFileFlag  = "config"
	DataDirFlag     = "data-dir"
	ClusterFlag     = "cluster"
	ClusterURLFlag  = "cluster-url"
	StoreFlag       = "store"
	ProgramIDFlag   = "program-id"
	BaseKeyFileFlag = "base-keyfile"
	WalletKeyFlag   = "wallet-keyfile"
	AutoApproveFlag = "auto-approve"
	LogLevelFlag    = "log-level"
	LogFileFlag     = "log-file"
	ListenFlag      = "listen"
	MetricsFlag     = "metrics"
	MetricsAddrFlag = "metrics-addr"
	KeygenOutFlag   = "out"
	KeygenForceFlag = "force"
)

const (
	envPrefix       = "ARCADIA_"
	defaultKeyFile  = "wallet.json"
	dataDirFileMode = 0700
)

var ConfigFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    ConfigFileFlag,
		Aliases: []string{"c"},
		Usage:   "JSON config file",
		EnvVars: []string{envPrefix + "CONFIG"},
	},
	&cli.StringFlag{
		Name:  DataDirFlag,
		Usage: "Base directory for the database and relative paths",
	},
	&cli.StringFlag{
		Name:  ClusterFlag,
		Usage: "Cluster preset: devnet, testnet, mainnet-beta or localnet",
	},
	&cli.StringFlag{
		Name:  ClusterURLFlag,
		Usage: "Cluster RPC endpoint, overrides the preset",
	},
	&cli.StringFlag{
		Name:  StoreFlag,
		Usage: "Record store backend: " + params.StoreBackendChain + ", " + params.StoreBackendSQLite + " or " + params.StoreBackendMemory,
	},
	&cli.StringFlag{
		Name:  ProgramIDFlag,
		Usage: "Address of the gallery program",
	},
	&cli.StringFlag{
		Name:  BaseKeyFileFlag,
		Usage: "Keypair file of the gallery base account",
	},
	&cli.StringFlag{
		Name:    WalletKeyFlag,
		Usage:   "Keypair file of the wallet; enables the wallet",
		EnvVars: []string{envPrefix + "WALLET_KEYFILE"},
	},
	&cli.BoolFlag{
		Name:  AutoApproveFlag,
		Usage: "Approve account requests without asking",
	},
	&cli.StringFlag{
		Name:  LogLevelFlag,
		Usage: "Log level: debug, info, warn or error",
	},
	&cli.StringFlag{
		Name:  LogFileFlag,
		Usage: "Write logs to a rotated file",
	},
	&cli.StringFlag{
		Name:  MetricsAddrFlag,
		Usage: "Serve /metrics and /health on a separate address; enables metrics",
	},
}

var ServeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    ListenFlag,
		Aliases: []string{"l"},
		Usage:   "HTTP listen address",
		EnvVars: []string{envPrefix + "LISTEN"},
	},
	&cli.BoolFlag{
		Name:  MetricsFlag,
		Usage: "Serve /metrics next to the gallery",
	},
}

var KeygenFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    KeygenOutFlag,
		Aliases: []string{"o"},
		Usage:   "Path of the keypair file",
		Value:   defaultKeyFile,
	},
	&cli.BoolFlag{
		Name:  KeygenForceFlag,
		Usage: "Overwrite an existing file",
	},
}
