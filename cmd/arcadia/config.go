package main

import (
	"github.com/urfave/cli/v2"

	"github.com/status-im/arcadia/params"
)

// loadConfig reads the config file, if any, and applies flag overrides on
// top of it.
func loadConfig(cCtx *cli.Context) (*params.Config, error) {
	config := params.NewDefaultConfig()
	if path := cCtx.String(ConfigFileFlag); path != "" {
		var err error
		config, err = params.LoadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
	}

	overrideString(cCtx, DataDirFlag, &config.DataDir)
	if cCtx.IsSet(ClusterFlag) {
		config.Cluster.Name = cCtx.String(ClusterFlag)
		config.Cluster.URL = ""
	}
	overrideString(cCtx, ClusterURLFlag, &config.Cluster.URL)
	overrideString(cCtx, StoreFlag, &config.Store.Backend)
	overrideString(cCtx, ProgramIDFlag, &config.Program.ProgramID)
	overrideString(cCtx, BaseKeyFileFlag, &config.Program.BaseAccountKeyFile)
	if cCtx.IsSet(WalletKeyFlag) {
		config.Wallet.Enabled = true
		config.Wallet.KeyFile = cCtx.String(WalletKeyFlag)
	}
	if cCtx.IsSet(AutoApproveFlag) {
		config.Wallet.AutoApprove = cCtx.Bool(AutoApproveFlag)
	}
	overrideString(cCtx, LogLevelFlag, &config.Log.Level)
	overrideString(cCtx, LogFileFlag, &config.Log.File)
	overrideString(cCtx, ListenFlag, &config.HTTP.ListenAddr)
	if cCtx.IsSet(MetricsFlag) {
		config.Metrics.Enabled = cCtx.Bool(MetricsFlag)
	}
	if cCtx.IsSet(MetricsAddrFlag) {
		config.Metrics.Enabled = true
		config.Metrics.ListenAddr = cCtx.String(MetricsAddrFlag)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func overrideString(cCtx *cli.Context, name string, target *string) {
	if cCtx.IsSet(name) {
		*target = cCtx.String(name)
	}
}
