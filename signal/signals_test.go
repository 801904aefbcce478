package signal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendDeliversEnvelope(t *testing.T) {
	var received []string
	SetDefaultNodeNotificationHandler(func(jsonEvent string) {
		received = append(received, jsonEvent)
	})
	defer ResetDefaultNodeNotificationHandler()

	SendWalletConnected("s1", "addr", true)
	SendConnectorRequestAccounts("req-1", "arcadia", "addr")

	require.Len(t, received, 2)

	var envelope struct {
		Type  string                `json:"type"`
		Event WalletConnectedSignal `json:"event"`
	}
	require.NoError(t, json.Unmarshal([]byte(received[0]), &envelope))
	require.Equal(t, EventWalletConnected, envelope.Type)
	require.Equal(t, WalletConnectedSignal{Session: "s1", Address: "addr", Trusted: true}, envelope.Event)

	require.Contains(t, received[1], `"type":"connector.requestAccounts"`)
	require.Contains(t, received[1], `"requestId":"req-1"`)
}

func TestResetRestoresDefaultHandler(t *testing.T) {
	called := false
	SetDefaultNodeNotificationHandler(func(string) { called = true })
	ResetDefaultNodeNotificationHandler()

	SendGalleryItemsUpdated("s1", 3)
	require.False(t, called)
}
