package signal

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/status-im/arcadia/logutils"
)

// Envelope is a general signal sent upward to the views.
type Envelope struct {
	Type  string      `json:"type"`
	Event interface{} `json:"event"`
}

// NewEnvelope creates new envelope of given type and event payload.
func NewEnvelope(typ string, event interface{}) *Envelope {
	return &Envelope{
		Type:  typ,
		Event: event,
	}
}

// NodeNotificationHandler defines a handler able to process incoming node events.
// Events are encoded as JSON strings.
type NodeNotificationHandler func(jsonEvent string)

var (
	notificationHandler   NodeNotificationHandler = TriggerDefaultNodeNotificationHandler
	notificationHandlerMu sync.RWMutex
)

// send marshals the event and hands it to the current handler.
func send(typ string, event interface{}) {
	data, err := json.Marshal(NewEnvelope(typ, event))
	if err != nil {
		logutils.ZapLogger().Error("marshalling signal envelope", zap.String("type", typ), zap.Error(err))
		return
	}

	notificationHandlerMu.RLock()
	handler := notificationHandler
	notificationHandlerMu.RUnlock()

	handler(string(data))
}

// SetDefaultNodeNotificationHandler sets notification handler to invoke on send
func SetDefaultNodeNotificationHandler(fn NodeNotificationHandler) {
	notificationHandlerMu.Lock()
	defer notificationHandlerMu.Unlock()
	notificationHandler = fn
}

// ResetDefaultNodeNotificationHandler sets notification handler to default one
func ResetDefaultNodeNotificationHandler() {
	SetDefaultNodeNotificationHandler(TriggerDefaultNodeNotificationHandler)
}

// TriggerDefaultNodeNotificationHandler is the default handler; it only logs.
func TriggerDefaultNodeNotificationHandler(jsonEvent string) {
	logutils.ZapLogger().Debug("signal", zap.String("event", jsonEvent))
}
