package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/signal"
)

var (
	WalletResponseMaxInterval = 20 * time.Minute

	ErrWalletResponseTimeout = fmt.Errorf("timeout waiting for wallet response")
	ErrEmptyRequestID        = errors.New("empty requestID")
	ErrRequestNotFound       = errors.New("no pending request with this ID")
)

type RequestAccountsAcceptedArgs struct {
	RequestID string `json:"requestId"`
}

type RequestAccountsRejectedArgs struct {
	RequestID string `json:"requestId"`
}

// ClientSideHandler forwards account requests to the client as signals and
// waits for the client to accept or reject them.
type ClientSideHandler struct {
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]chan bool
}

func NewClientSideHandler(timeout time.Duration) *ClientSideHandler {
	if timeout <= 0 {
		timeout = WalletResponseMaxInterval
	}
	return &ClientSideHandler{
		timeout: timeout,
		pending: make(map[string]chan bool),
	}
}

func (c *ClientSideHandler) RequestAccounts(ctx context.Context, origin string, account types.PublicKey) error {
	requestID := uuid.NewString()
	response := make(chan bool, 1) // Buffer of 1 to avoid blocking

	c.mu.Lock()
	c.pending[requestID] = response
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, requestID)
		c.mu.Unlock()
	}()

	signal.SendConnectorRequestAccounts(requestID, origin, account.String())

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case accepted := <-response:
		if !accepted {
			return ErrAccountsRequestDeniedByUser
		}
		return nil
	case <-timer.C:
		return ErrWalletResponseTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *ClientSideHandler) RequestAccountsAccepted(args RequestAccountsAcceptedArgs) error {
	return c.finish(args.RequestID, true)
}

func (c *ClientSideHandler) RequestAccountsRejected(args RequestAccountsRejectedArgs) error {
	return c.finish(args.RequestID, false)
}

func (c *ClientSideHandler) finish(requestID string, accepted bool) error {
	if requestID == "" {
		return ErrEmptyRequestID
	}

	c.mu.Lock()
	response, ok := c.pending[requestID]
	if ok {
		delete(c.pending, requestID)
	}
	c.mu.Unlock()

	if !ok {
		return ErrRequestNotFound
	}
	response <- accepted
	return nil
}
