package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// statusErr is a test error that carries an upstream HTTP status code.
type statusErr struct {
	code int
}

func (e *statusErr) Error() string       { return fmt.Sprintf("status %d", e.code) }
func (e *statusErr) HTTPStatusCode() int { return e.code }

func noWait(int) time.Duration { return 0 }

func TestWithRetry(t *testing.T) {
	t.Cleanup(func() {
		waitFn = cubicWait
		netWaitFn = expWait
	})
	waitFn = noWait
	netWaitFn = noWait

	lim := rate.NewLimiter(rate.Inf, 1)

	t.Run("success on first attempt", func(t *testing.T) {
		calls := 0
		err := WithRetry(t.Context(), lim, 1, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
	t.Run("single attempt is the default, no retry on 500", func(t *testing.T) {
		calls := 0
		err := WithRetry(t.Context(), lim, 0, func() error {
			calls++
			return &statusErr{code: http.StatusInternalServerError}
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRetryFailed)
		assert.Equal(t, 1, calls)
	})
	t.Run("recoverable status is retried until success", func(t *testing.T) {
		calls := 0
		err := WithRetry(t.Context(), lim, 3, func() error {
			calls++
			if calls < 3 {
				return &statusErr{code: http.StatusBadGateway}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})
	t.Run("non-recoverable status returns immediately", func(t *testing.T) {
		calls := 0
		err := WithRetry(t.Context(), lim, 3, func() error {
			calls++
			return &statusErr{code: http.StatusBadRequest}
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRetryFailed)
		assert.Equal(t, 1, calls)
	})
	t.Run("plain error returns immediately", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := WithRetry(t.Context(), lim, 5, func() error {
			calls++
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
	t.Run("attempts exhausted", func(t *testing.T) {
		calls := 0
		err := WithRetry(t.Context(), lim, 2, func() error {
			calls++
			return &statusErr{code: http.StatusServiceUnavailable}
		})
		require.ErrorIs(t, err, ErrRetryFailed)
		assert.Equal(t, 2, calls)
	})
	t.Run("cancelled context stops the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := WithRetry(ctx, rate.NewLimiter(rate.Every(time.Hour), 1), 1, func() error {
			t.Fatal("callback must not be called")
			return nil
		})
		require.Error(t, err)
	})
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{599, true},
		{http.StatusNotImplemented, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusOK, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, isRecoverable(tt.code))
		})
	}
}

func TestCubicWait(t *testing.T) {
	assert.Equal(t, 8*time.Second, cubicWait(0))
	assert.Equal(t, 27*time.Second, cubicWait(1))
	assert.Equal(t, maxAllowedWaitTime, cubicWait(100))
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(60, 1)
	assert.Equal(t, rate.Every(time.Second), l.Limit())
	// zero values fall back to defaults
	l = NewLimiter(0, 0)
	assert.Equal(t, rate.Every(time.Minute/time.Duration(DefLimits.PerMinute)), l.Limit())
	assert.Equal(t, int(DefLimits.Burst), l.Burst())
}
