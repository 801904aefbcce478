package tui

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/status-im/arcadia/services/connector/commands"
	"github.com/status-im/arcadia/signal"
)

// Approvals answers pending account requests.
type Approvals interface {
	RequestAccountsAccepted(args commands.RequestAccountsAcceptedArgs) error
	RequestAccountsRejected(args commands.RequestAccountsRejectedArgs) error
}

type approvalRequestMsg signal.ConnectorRequestAccountsSignal

// ApprovalBridge turns connector.requestAccounts signals into model messages.
type ApprovalBridge struct {
	requests chan approvalRequestMsg
}

func NewApprovalBridge() *ApprovalBridge {
	return &ApprovalBridge{requests: make(chan approvalRequestMsg, 4)}
}

// Handle is a signal handler. Other signals are passed to next, if set.
func (b *ApprovalBridge) Handle(next signal.NodeNotificationHandler) signal.NodeNotificationHandler {
	return func(jsonEvent string) {
		var envelope struct {
			Type  string          `json:"type"`
			Event json.RawMessage `json:"event"`
		}
		if err := json.Unmarshal([]byte(jsonEvent), &envelope); err == nil && envelope.Type == signal.EventConnectorRequestAccounts {
			var request signal.ConnectorRequestAccountsSignal
			if err := json.Unmarshal(envelope.Event, &request); err == nil {
				b.requests <- approvalRequestMsg(request)
				return
			}
		}
		if next != nil {
			next(jsonEvent)
		}
	}
}

func (b *ApprovalBridge) wait() tea.Cmd {
	return func() tea.Msg {
		return <-b.requests
	}
}
