package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/afex/hystrix-go/hystrix"
)

var ErrCircuitOpen = errors.New("circuit is open")

type Config struct {
	// Timeout in milliseconds for one execution.
	Timeout                int
	MaxConcurrentRequests  int
	RequestVolumeThreshold int
	// SleepWindow in milliseconds before a half-open probe.
	SleepWindow           int
	ErrorPercentThreshold int
}

// DefaultConfig opens a circuit after half of at least 5 requests failed and
// probes again after 10 seconds.
func DefaultConfig() Config {
	return Config{
		Timeout:                hystrix.DefaultTimeout,
		MaxConcurrentRequests:  hystrix.DefaultMaxConcurrent,
		RequestVolumeThreshold: 5,
		SleepWindow:            10000,
		ErrorPercentThreshold:  50,
	}
}

// CircuitBreaker runs calls inside named hystrix circuits that share one
// configuration.
type CircuitBreaker struct {
	config Config

	mu         sync.Mutex
	configured map[string]bool
}

func NewCircuitBreaker(config Config) *CircuitBreaker {
	return &CircuitBreaker{
		config:     config,
		configured: make(map[string]bool),
	}
}

func (cb *CircuitBreaker) configure(circuitName string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.configured[circuitName] {
		return
	}
	hystrix.ConfigureCommand(circuitName, hystrix.CommandConfig{
		Timeout:                cb.config.Timeout,
		MaxConcurrentRequests:  cb.config.MaxConcurrentRequests,
		RequestVolumeThreshold: cb.config.RequestVolumeThreshold,
		SleepWindow:            cb.config.SleepWindow,
		ErrorPercentThreshold:  cb.config.ErrorPercentThreshold,
	})
	cb.configured[circuitName] = true
}

// Execute runs fn in circuitName. This is a blocking function. Errors for
// which ignore returns true are handed back without counting as failures.
func (cb *CircuitBreaker) Execute(ctx context.Context, circuitName string, fn func(ctx context.Context) error, ignore func(error) bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cb.configure(circuitName)

	var passed error
	err := hystrix.DoC(ctx, circuitName, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && ignore != nil && ignore(err) {
			passed = err
			return nil
		}
		return err
	}, nil)

	switch {
	case errors.Is(err, hystrix.ErrCircuitOpen):
		return fmt.Errorf("%s: %w", circuitName, ErrCircuitOpen)
	case err != nil:
		return fmt.Errorf("%s.error: %w", circuitName, err)
	}
	return passed
}

// IsOpen reports whether circuitName currently rejects calls.
func (cb *CircuitBreaker) IsOpen(circuitName string) bool {
	circuit, _, err := hystrix.GetCircuit(circuitName)
	if err != nil {
		return false
	}
	return circuit.IsOpen()
}
