package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/status-im/arcadia/circuitbreaker"
)

const (
	// DefaultCallTimeout is a default timeout for an RPC call
	DefaultCallTimeout = time.Minute
)

// Handler defines handler for RPC methods.
type Handler func(context.Context, ...interface{}) (interface{}, error)

// Client is a JSON-RPC client for the cluster endpoint.
//
// Locally registered handlers take precedence over the remote endpoint,
// which makes it possible to answer selected methods without a network.
// Client is safe for concurrent use.
type Client struct {
	endpoint    string
	remote      *gethrpc.Client
	callTimeout time.Duration

	handlersMx sync.RWMutex       // mx guards handlers
	handlers   map[string]Handler // locally registered handlers

	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker

	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps remote calls to requestsPerSecond. Values <= 0 disable
// the limit.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithCircuitBreaker runs remote calls inside a circuit named after the
// endpoint. JSON-RPC error responses do not count as failures.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// Dial connects to the cluster endpoint.
func Dial(ctx context.Context, endpoint string, callTimeout time.Duration, logger *zap.Logger, opts ...Option) (*Client, error) {
	remote, err := gethrpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial cluster %s: %w", endpoint, err)
	}
	return NewClient(remote, endpoint, callTimeout, logger, opts...), nil
}

// NewClient wraps an already connected client. remote may be nil when only
// local handlers are used.
func NewClient(remote *gethrpc.Client, endpoint string, callTimeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		endpoint:    endpoint,
		remote:      remote,
		callTimeout: callTimeout,
		handlers:    make(map[string]Handler),
		logger:      logger.Named("rpc"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close closes the underlying connection.
func (c *Client) Close() {
	if c.remote != nil {
		c.remote.Close()
	}
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	started := time.Now()
	var err error
	if handler, ok := c.handler(method); ok {
		err = c.callMethod(ctx, result, handler, args...)
	} else if c.remote != nil {
		err = c.callRemote(ctx, result, method, args...)
	} else {
		err = fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}

	if err != nil {
		c.logger.Debug("rpc call failed", zap.String("method", method), zap.Duration("took", time.Since(started)), zap.Error(err))
		return err
	}
	c.logger.Debug("rpc call", zap.String("method", method), zap.Duration("took", time.Since(started)))
	return nil
}

func (c *Client) callRemote(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if c.breaker == nil {
		return c.remote.CallContext(ctx, result, method, args...)
	}
	return c.breaker.Execute(ctx, c.endpoint, func(ctx context.Context) error {
		return c.remote.CallContext(ctx, result, method, args...)
	}, isResponseError)
}

// isResponseError reports errors returned by the endpoint itself, as opposed
// to transport failures.
func isResponseError(err error) bool {
	var rpcErr gethrpc.Error
	return errors.As(err, &rpcErr)
}

// RegisterHandler registers local handler for specific RPC method.
//
// If method is registered, it will be executed with given handler and
// never routed to the remote endpoint.
func (c *Client) RegisterHandler(method string, handler Handler) {
	c.handlersMx.Lock()
	defer c.handlersMx.Unlock()

	c.handlers[method] = handler
}

// callMethod calls registered RPC handler with given args and pointer to
// result. The response goes through JSON so handlers behave like the wire.
func (c *Client) callMethod(ctx context.Context, result interface{}, handler Handler, args ...interface{}) error {
	response, err := handler(ctx, args...)
	if err != nil {
		return err
	}

	// if result is nil, just ignore result -
	// the same way as gethrpc.CallContext() caller would expect
	if result == nil {
		return nil
	}

	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("invalid result type: %w", err)
	}
	return json.Unmarshal(data, result)
}

// handler is a concurrently safe method to get registered handler by name.
func (c *Client) handler(method string) (Handler, bool) {
	c.handlersMx.RLock()
	defer c.handlersMx.RUnlock()
	handler, ok := c.handlers[method]
	return handler, ok
}
