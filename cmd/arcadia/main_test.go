package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/params"
	"github.com/status-im/arcadia/services/connector/commands"
)

func runApp(t *testing.T, action cli.ActionFunc, args ...string) (string, error) {
	var out bytes.Buffer
	app := &cli.App{
		Name:   "arcadia",
		Flags:  append(append([]cli.Flag{}, ConfigFlags...), ServeFlags...),
		Action: action,
		Writer: &out,
		Commands: []*cli.Command{
			{Name: "keygen", Flags: KeygenFlags, Action: keygen},
			{Name: "grants", Subcommands: []*cli.Command{
				{Name: "list", Action: listGrants},
				{Name: "revoke", Action: revokeGrant},
			}},
		},
	}
	err := app.Run(append([]string{"arcadia"}, args...))
	return out.String(), err
}

func TestLoadConfigDefaults(t *testing.T) {
	var config *params.Config
	_, err := runApp(t, func(cCtx *cli.Context) (err error) {
		config, err = loadConfig(cCtx)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, params.StoreBackendSQLite, config.Store.Backend)
	require.False(t, config.Wallet.Enabled)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"Store":{"Backend":"memory"},"HTTP":{"ListenAddr":"127.0.0.1:1"}}`), 0600))

	var config *params.Config
	_, err := runApp(t, func(cCtx *cli.Context) (err error) {
		config, err = loadConfig(cCtx)
		return err
	},
		"--config", configPath,
		"--data-dir", dir,
		"--wallet-keyfile", "me.json",
		"--listen", "127.0.0.1:2",
		"--metrics",
	)
	require.NoError(t, err)
	require.Equal(t, params.StoreBackendMemory, config.Store.Backend)
	require.Equal(t, dir, config.DataDir)
	require.True(t, config.Wallet.Enabled)
	require.Equal(t, "me.json", config.Wallet.KeyFile)
	require.Equal(t, "127.0.0.1:2", config.HTTP.ListenAddr)
	require.True(t, config.Metrics.Enabled)
}

func TestLoadConfigRejectsChainWithoutProgram(t *testing.T) {
	_, err := runApp(t, func(cCtx *cli.Context) error {
		_, err := loadConfig(cCtx)
		return err
	}, "--store", params.StoreBackendChain)
	require.Error(t, err)
}

func TestKeygen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "wallet.json")

	out, err := runApp(t, nil, "keygen", "--out", path)
	require.NoError(t, err)

	keypair, err := types.LoadKeypairFile(path)
	require.NoError(t, err)
	require.Contains(t, out, keypair.PublicKey().String())

	_, err = runApp(t, nil, "keygen", "--out", path)
	require.ErrorIs(t, err, ErrKeyFileExists)

	_, err = runApp(t, nil, "keygen", "--out", path, "--force")
	require.NoError(t, err)
	replaced, err := types.LoadKeypairFile(path)
	require.NoError(t, err)
	require.NotEqual(t, keypair.PublicKey(), replaced.PublicKey())
}

func TestGrantsListEmpty(t *testing.T) {
	dir := t.TempDir()
	out, err := runApp(t, nil, "--data-dir", dir, "--log-level", "error", "grants", "list")
	require.NoError(t, err)
	require.Contains(t, out, "no trusted grants")

	_, err = runApp(t, nil, "--data-dir", dir, "--log-level", "error", "grants", "revoke", "someone")
	require.ErrorIs(t, err, commands.ErrNoGrantForOrigin)
}

func TestNodeWiresLocalStore(t *testing.T) {
	config := params.NewDefaultConfig()
	config.DataDir = t.TempDir()
	config.Store.Backend = params.StoreBackendMemory

	n, err := newNode(context.Background(), config, commands.AutoApprover{}, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, n.provider())

	controller := n.newController("test")
	require.NotNil(t, controller)
	require.NoError(t, n.Close())
}

func TestNodeMetricsServerNeedsEnabled(t *testing.T) {
	config := params.NewDefaultConfig()
	config.DataDir = t.TempDir()
	config.Store.Backend = params.StoreBackendMemory
	config.Metrics.ListenAddr = "127.0.0.1:0"

	n, err := newNode(context.Background(), config, commands.AutoApprover{}, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, n.metrics)
	require.NoError(t, n.Close())

	config.Metrics.Enabled = true
	n, err = newNode(context.Background(), config, commands.AutoApprover{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, n.metrics)
	require.NoError(t, n.Close())
}

func TestMetricsAddrFlagEnablesMetrics(t *testing.T) {
	var config *params.Config
	_, err := runApp(t, func(cCtx *cli.Context) (err error) {
		config, err = loadConfig(cCtx)
		return err
	}, "--metrics-addr", "127.0.0.1:9305")
	require.NoError(t, err)
	require.True(t, config.Metrics.Enabled)
	require.Equal(t, "127.0.0.1:9305", config.Metrics.ListenAddr)
}
