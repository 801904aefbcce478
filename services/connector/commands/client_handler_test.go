package commands

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/arcadia/signal"
)

func answerRequests(t *testing.T, handler *ClientSideHandler, accept bool) {
	onSignal(t, signal.EventConnectorRequestAccounts, func(event json.RawMessage) {
		var ev signal.ConnectorRequestAccountsSignal
		assert.NoError(t, json.Unmarshal(event, &ev))
		assert.Equal(t, testOrigin, ev.Origin)
		assert.Equal(t, testAccount.String(), ev.Account)

		// The handler answers from another goroutine, as a client would.
		go func() {
			if accept {
				assert.NoError(t, handler.RequestAccountsAccepted(RequestAccountsAcceptedArgs{RequestID: ev.RequestID}))
			} else {
				assert.NoError(t, handler.RequestAccountsRejected(RequestAccountsRejectedArgs{RequestID: ev.RequestID}))
			}
		}()
	})
}

func TestClientSideHandlerAccepted(t *testing.T) {
	handler := NewClientSideHandler(time.Second)
	answerRequests(t, handler, true)

	require.NoError(t, handler.RequestAccounts(context.Background(), testOrigin, testAccount))
}

func TestClientSideHandlerRejected(t *testing.T) {
	handler := NewClientSideHandler(time.Second)
	answerRequests(t, handler, false)

	err := handler.RequestAccounts(context.Background(), testOrigin, testAccount)
	require.ErrorIs(t, err, ErrAccountsRequestDeniedByUser)
}

func TestClientSideHandlerTimeout(t *testing.T) {
	handler := NewClientSideHandler(20 * time.Millisecond)

	err := handler.RequestAccounts(context.Background(), testOrigin, testAccount)
	require.ErrorIs(t, err, ErrWalletResponseTimeout)

	handler.mu.Lock()
	require.Empty(t, handler.pending)
	handler.mu.Unlock()
}

func TestClientSideHandlerContextCancelled(t *testing.T) {
	handler := NewClientSideHandler(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.RequestAccounts(ctx, testOrigin, testAccount)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClientSideHandlerUnknownRequest(t *testing.T) {
	handler := NewClientSideHandler(0)
	require.Equal(t, WalletResponseMaxInterval, handler.timeout)

	require.ErrorIs(t, handler.RequestAccountsAccepted(RequestAccountsAcceptedArgs{}), ErrEmptyRequestID)
	require.ErrorIs(t, handler.RequestAccountsAccepted(RequestAccountsAcceptedArgs{RequestID: "nope"}), ErrRequestNotFound)
	require.ErrorIs(t, handler.RequestAccountsRejected(RequestAccountsRejectedArgs{RequestID: "nope"}), ErrRequestNotFound)
}
