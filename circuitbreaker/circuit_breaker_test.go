package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/afex/hystrix-go/hystrix"
	"github.com/stretchr/testify/require"
)

func uniqueName(prefix string) string {
	// unique name to avoid conflicts with go tests `-count` option
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func TestExecuteSuccess(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig())

	called := false
	err := cb.Execute(context.Background(), uniqueName("Success"), func(context.Context) error {
		called = true
		return nil
	}, nil)
	require.NoError(t, err)
	require.True(t, called)
}

func TestExecuteWrapsFailure(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig())
	errFailed := errors.New("endpoint failed")

	err := cb.Execute(context.Background(), uniqueName("Failure"), func(context.Context) error {
		return errFailed
	}, nil)
	require.ErrorIs(t, err, errFailed)
}

func TestExecuteTimeout(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 10
	cb := NewCircuitBreaker(config)

	err := cb.Execute(context.Background(), uniqueName("Timeout"), func(context.Context) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	}, nil)
	require.ErrorIs(t, err, hystrix.ErrTimeout)
}

func TestIgnoredErrorsAreReturned(t *testing.T) {
	config := DefaultConfig()
	config.RequestVolumeThreshold = 1
	config.ErrorPercentThreshold = 1
	cb := NewCircuitBreaker(config)
	name := uniqueName("Ignored")
	errApp := errors.New("application error")

	for i := 0; i < 10; i++ {
		err := cb.Execute(context.Background(), name, func(context.Context) error {
			return errApp
		}, func(err error) bool { return errors.Is(err, errApp) })
		require.Equal(t, errApp, err)
	}
	require.False(t, cb.IsOpen(name))
}

func TestCircuitOpensAfterFailures(t *testing.T) {
	config := DefaultConfig()
	config.RequestVolumeThreshold = 2
	config.ErrorPercentThreshold = 10
	config.SleepWindow = 60000
	cb := NewCircuitBreaker(config)
	name := uniqueName("Opens")
	errFailed := errors.New("endpoint failed")

	require.Eventually(t, func() bool {
		err := cb.Execute(context.Background(), name, func(context.Context) error {
			return errFailed
		}, nil)
		return errors.Is(err, ErrCircuitOpen)
	}, 5*time.Second, 10*time.Millisecond)
	require.True(t, cb.IsOpen(name))
}
