package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/status-im/arcadia/common"
	arcerrors "github.com/status-im/arcadia/errors"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/params"
	"github.com/status-im/arcadia/services/connector/commands"
)

const addressKeep = 6

// Options configure a Model.
type Options struct {
	// Approvals and Bridge are optional. Without them account requests are
	// never shown.
	Approvals Approvals
	Bridge    *ApprovalBridge
	Footer    params.FooterConfig
	// CallTimeout bounds every controller operation.
	CallTimeout time.Duration
}

type probeDoneMsg struct{ err error }

type connectDoneMsg struct{ err error }

type fetchDoneMsg struct{ err error }

type outcomeMsg struct{ outcome gallery.Outcome }

// Model is the terminal view of one gallery controller.
type Model struct {
	controller *gallery.Controller
	opts       Options

	input    textinput.Model
	snapshot gallery.Snapshot
	busy     string
	status   string
	pending  *approvalRequestMsg
	width    int
}

func NewModel(controller *gallery.Controller, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Enter gif link!"
	input.CharLimit = 2048
	input.Width = 60

	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 2 * time.Minute
	}

	return &Model{
		controller: controller,
		opts:       opts,
		input:      input,
		snapshot:   controller.Snapshot(),
		busy:       "Looking for a trusted wallet...",
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.probe()}
	if m.opts.Bridge != nil {
		cmds = append(cmds, m.opts.Bridge.wait())
	}
	return tea.Batch(cmds...)
}

func (m *Model) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.opts.CallTimeout)
}

func (m *Model) probe() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return probeDoneMsg{err: m.controller.ProbeExistingConnection(ctx)}
	}
}

func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return connectDoneMsg{err: m.controller.Connect(ctx)}
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return fetchDoneMsg{err: m.controller.FetchItems(ctx)}
	}
}

func (m *Model) initialize() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return outcomeMsg{outcome: m.controller.InitializeStore(ctx)}
	}
}

func (m *Model) submit() tea.Cmd {
	m.controller.SetDraft(m.input.Value())
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return outcomeMsg{outcome: m.controller.SubmitItem(ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case probeDoneMsg:
		m.done()
		return m, m.syncInput()

	case connectDoneMsg:
		m.done()
		m.setError(msg.err)
		return m, m.syncInput()

	case fetchDoneMsg:
		m.done()
		m.setError(msg.err)
		return m, m.syncInput()

	case outcomeMsg:
		m.done()
		m.setError(msg.outcome.MutateErr)
		return m, m.syncInput()

	case approvalRequestMsg:
		request := msg
		m.pending = &request
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}

	if m.pending != nil {
		return m, m.answer(msg.String())
	}
	if m.busy != "" {
		return m, nil
	}

	switch m.snapshot.State {
	case gallery.StateDisconnected:
		switch msg.String() {
		case "c", "enter":
			m.busy = "Waiting for the wallet..."
			m.status = ""
			return m, m.connect()
		case "d":
			m.controller.DismissWarning()
			m.snapshot = m.controller.Snapshot()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case gallery.StateUninitialized:
		switch msg.String() {
		case "i", "enter":
			m.busy = "Initializing the gallery account..."
			m.status = ""
			return m, m.initialize()
		case "r":
			m.busy = "Refreshing..."
			return m, m.refresh()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.busy = "Sending gif..."
		m.status = ""
		return m, m.submit()
	case tea.KeyCtrlR:
		m.busy = "Refreshing..."
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// answer resolves the pending account request with y or n.
func (m *Model) answer(key string) tea.Cmd {
	if m.opts.Approvals == nil {
		m.pending = nil
		return nil
	}

	var err error
	switch key {
	case "y":
		err = m.opts.Approvals.RequestAccountsAccepted(commands.RequestAccountsAcceptedArgs{RequestID: m.pending.RequestID})
	case "n":
		err = m.opts.Approvals.RequestAccountsRejected(commands.RequestAccountsRejectedArgs{RequestID: m.pending.RequestID})
	default:
		return nil
	}
	m.pending = nil
	m.setError(err)

	if m.opts.Bridge != nil {
		return m.opts.Bridge.wait()
	}
	return nil
}

func (m *Model) done() {
	m.busy = ""
	m.snapshot = m.controller.Snapshot()
}

// setError shows rejected actions. Other failures are logged by the
// controller and leave the view as it was.
func (m *Model) setError(err error) {
	if err == nil || !gallery.IsRejection(err) {
		m.status = ""
		return
	}
	m.status = arcerrors.DetailsOf(err)
}

// syncInput mirrors the controller draft into the text input.
func (m *Model) syncInput() tea.Cmd {
	if m.snapshot.State != gallery.StateReady {
		m.input.Blur()
		return nil
	}
	m.input.SetValue(m.snapshot.Draft)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Arcadia"))
	b.WriteString("\n")
	b.WriteString(subTextStyle.Render("A collection of Arcade Game GIF's in the metaverse ✨"))
	b.WriteString("\n")
	b.WriteString(subTextStyle.Render("Add your favourite to the collection!"))
	b.WriteString("\n\n")

	if m.snapshot.Warning != "" {
		b.WriteString(warningStyle.Render("! " + m.snapshot.Warning))
		b.WriteString(dimStyle.Render("  (d to dismiss)"))
		b.WriteString("\n\n")
	}

	if m.pending != nil {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%s wants to connect to account %s. Allow? (y/n)",
			m.pending.Origin, common.ShortenAddress(m.pending.Account, addressKeep))))
		b.WriteString("\n\n")
	}

	switch {
	case m.busy != "":
		b.WriteString(dimStyle.Render(m.busy))
		b.WriteString("\n")
	case m.snapshot.State == gallery.StateDisconnected:
		b.WriteString(buttonStyle.Render("Connect to Wallet"))
		b.WriteString(dimStyle.Render("  (c)"))
		b.WriteString("\n")
	case m.snapshot.State == gallery.StateUninitialized:
		b.WriteString(buttonStyle.Render("Do One-Time Initialization For GIF Program Account"))
		b.WriteString(dimStyle.Render("  (i)"))
		b.WriteString("\n")
	default:
		b.WriteString(m.input.View())
		b.WriteString(dimStyle.Render("  (enter to submit)"))
		b.WriteString("\n\n")
		b.WriteString(m.itemsView())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.snapshot.Address != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("connected as " + common.ShortenAddress(m.snapshot.Address, addressKeep)))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("built by @%s  %s", m.opts.Footer.Handle, m.opts.Footer.Link())))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) itemsView() string {
	if len(m.snapshot.Items) == 0 {
		return dimStyle.Render("No gifs yet.") + "\n"
	}
	var b strings.Builder
	for _, item := range m.snapshot.Items {
		b.WriteString(itemStyle.Render(item.Link + "\nSubmitted by: " + common.ShortenAddress(item.Submitter, addressKeep)))
		b.WriteString("\n")
	}
	return b.String()
}
