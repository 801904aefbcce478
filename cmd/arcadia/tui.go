package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/status-im/arcadia/params"
	"github.com/status-im/arcadia/services/connector"
	"github.com/status-im/arcadia/services/connector/commands"
	"github.com/status-im/arcadia/signal"
	"github.com/status-im/arcadia/tui"
)

const tuiSession = "tui"

func runTUI(cCtx *cli.Context) (err error) {
	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	// stderr belongs to the terminal view.
	config.Log.DisableStderr = true
	if config.Log.File == "" {
		config.Log.Enabled = false
	}
	logger, err := setupLogger(config)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var approver commands.Approver = commands.AutoApprover{}
	var handler *commands.ClientSideHandler
	if !config.Wallet.AutoApprove {
		handler = commands.NewClientSideHandler(params.Seconds(config.Wallet.ApprovalTimeout))
		approver = handler
	}

	n, err := newNode(cCtx.Context, config, approver, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, n.Close()) }()

	opts := tui.Options{
		Footer:      config.Footer,
		CallTimeout: params.Seconds(config.Wallet.ApprovalTimeout + config.Cluster.ConfirmTimeout),
	}
	if handler != nil && n.wallet != nil {
		bridge := tui.NewApprovalBridge()
		opts.Bridge = bridge
		opts.Approvals = connector.NewAPI(n.wallet, handler)
		signal.SetDefaultNodeNotificationHandler(bridge.Handle(signal.TriggerDefaultNodeNotificationHandler))
		defer signal.ResetDefaultNodeNotificationHandler()
	}

	model := tui.NewModel(n.newController(tuiSession), opts)
	_, err = tea.NewProgram(model, tea.WithContext(cCtx.Context)).Run()
	return err
}
