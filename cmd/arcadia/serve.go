package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/params"
	"github.com/status-im/arcadia/server"
	"github.com/status-im/arcadia/services/connector/commands"
)

func serve(cCtx *cli.Context) (err error) {
	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	logger, err := setupLogger(config)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// The page has no approval prompt; pressing connect is the consent.
	n, err := newNode(cCtx.Context, config, commands.AutoApprover{}, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, n.Close()) }()

	s, err := server.NewServer(server.Config{
		ListenAddr:     config.HTTP.ListenAddr,
		SessionSecret:  config.HTTP.SessionSecret,
		SessionTTL:     params.Seconds(config.HTTP.SessionTTL),
		Footer:         config.Footer,
		MetricsEnabled: config.Metrics.Enabled,
	}, n.newController, logger)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	logger.Info("arcadia started", zap.String("version", params.Version), zap.String("addr", s.Addr()))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case received := <-sig:
		logger.Info("received signal, shutting down", zap.Stringer("signal", received))
	case <-cCtx.Context.Done():
	}

	return s.Stop()
}
