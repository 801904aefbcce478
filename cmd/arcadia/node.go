package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/appdatabase"
	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/circuitbreaker"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/logutils"
	"github.com/status-im/arcadia/metrics"
	"github.com/status-im/arcadia/params"
	"github.com/status-im/arcadia/rpc"
	"github.com/status-im/arcadia/services/connector"
	"github.com/status-im/arcadia/services/connector/commands"
	"github.com/status-im/arcadia/services/gif"
)

// node owns every long lived component of one gallery process.
type node struct {
	config    *params.Config
	logger    *zap.Logger
	db        *sql.DB
	client    *rpc.Client
	store     gallery.RecordStore
	accountID types.PublicKey
	wallet    *connector.Service
	metrics   *metrics.Server
}

func setupLogger(config *params.Config) (*zap.Logger, error) {
	logConfig := config.Log
	logConfig.File = config.ResolvePath(logConfig.File)
	logger, err := logutils.NewLogger(logConfig)
	if err != nil {
		return nil, err
	}
	logutils.OverrideRootLog(logger)
	return logger, nil
}

func openDatabase(config *params.Config) (*sql.DB, error) {
	if err := os.MkdirAll(config.DataDir, dataDirFileMode); err != nil {
		return nil, err
	}
	return appdatabase.InitializeDB(config.ResolvePath(config.Database.Path), config.Database.Password)
}

// newNode wires the database, the record store and the wallet. approver
// decides how account requests are answered.
func newNode(ctx context.Context, config *params.Config, approver commands.Approver, logger *zap.Logger) (n *node, err error) {
	n = &node{config: config, logger: logger}
	defer func() {
		if err != nil {
			err = multierr.Append(err, n.Close())
			n = nil
		}
	}()

	n.db, err = openDatabase(config)
	if err != nil {
		return n, fmt.Errorf("open database: %w", err)
	}

	accountID, baseKeypair, err := baseAccount(config)
	if err != nil {
		return n, err
	}
	n.accountID = accountID

	switch config.Store.Backend {
	case params.StoreBackendChain:
		endpoint, err := config.Cluster.Endpoint()
		if err != nil {
			return n, err
		}
		n.client, err = rpc.Dial(ctx, endpoint, params.Seconds(config.Cluster.CallTimeout), logger, clientOptions(config.Cluster)...)
		if err != nil {
			return n, err
		}
		programID, err := types.PublicKeyFromBase58(config.Program.ProgramID)
		if err != nil {
			return n, err
		}
		n.store = gif.NewChainStore(n.client, programID, baseKeypair, config.Cluster.Commitment, params.Seconds(config.Cluster.ConfirmTimeout), logger)
		logger.Info("using cluster store", zap.String("endpoint", endpoint), zap.Stringer("program", programID))
	case params.StoreBackendSQLite:
		n.store = gif.NewSQLiteStore(n.db)
		logger.Info("using sqlite store")
	default:
		n.store = gif.NewMemoryStore()
		logger.Info("using memory store")
	}

	if config.Wallet.Enabled {
		n.wallet = connector.NewService(n.db, config.Origin, config.ResolvePath(config.Wallet.KeyFile), approver, logger)
		if err := n.wallet.Start(); err != nil {
			return n, err
		}
	} else {
		logger.Warn("wallet disabled")
	}

	if config.Metrics.Enabled && config.Metrics.ListenAddr != "" {
		n.metrics = metrics.NewMetricsServer(config.Metrics.ListenAddr)
		go n.metrics.Listen()
	}
	return n, nil
}

func clientOptions(cluster params.ClusterConfig) []rpc.Option {
	opts := []rpc.Option{rpc.WithRateLimit(float64(cluster.RequestsPerSecond), cluster.RequestsPerSecond)}
	if cluster.CircuitBreaker {
		cbConfig := circuitbreaker.DefaultConfig()
		// The call itself times out first.
		cbConfig.Timeout = int((params.Seconds(cluster.CallTimeout) + time.Second) / time.Millisecond)
		opts = append(opts, rpc.WithCircuitBreaker(circuitbreaker.NewCircuitBreaker(cbConfig)))
	}
	return opts
}

// baseAccount returns the gallery account. The keypair is only known when a
// key file is configured.
func baseAccount(config *params.Config) (types.PublicKey, *types.Keypair, error) {
	if path := config.Program.BaseAccountKeyFile; path != "" {
		keypair, err := types.LoadKeypairFile(config.ResolvePath(path))
		if err != nil {
			return types.PublicKey{}, nil, fmt.Errorf("load base account key file: %w", err)
		}
		return keypair.PublicKey(), keypair, nil
	}
	if config.Program.BaseAccount != "" {
		account, err := types.PublicKeyFromBase58(config.Program.BaseAccount)
		return account, nil, err
	}
	return types.PublicKey{}, nil, nil
}

// provider is nil when the wallet is disabled.
func (n *node) provider() gallery.WalletProvider {
	if n.wallet == nil {
		return nil
	}
	return n.wallet
}

func (n *node) newController(session string) *gallery.Controller {
	return gallery.NewController(gallery.Config{AccountID: n.accountID, Session: session}, n.provider(), n.store, n.logger)
}

func (n *node) Close() error {
	var err error
	if n.metrics != nil {
		err = multierr.Append(err, n.metrics.Stop())
	}
	if n.wallet != nil {
		err = multierr.Append(err, n.wallet.Stop())
	}
	if n.client != nil {
		n.client.Close()
	}
	if n.db != nil {
		err = multierr.Append(err, n.db.Close())
	}
	return err
}
