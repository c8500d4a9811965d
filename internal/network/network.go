// Package network provides the request pacing and retry primitives for
// outbound Salesforce API calls.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/trace"
	"time"

	"golang.org/x/time/rate"
)

// defNumAttempts is the number of attempts when the caller passes zero.
// The default observable behaviour of the server is a single attempt;
// anything above 1 must be explicitly configured.
const defNumAttempts = 1

var (
	// maxAllowedWaitTime is the maximum time to wait for a transient
	// error.  The wait time for a transient error depends on the current
	// retry attempt number and is calculated as: (attempt+2)^3 seconds,
	// capped at maxAllowedWaitTime.
	maxAllowedWaitTime = 5 * time.Minute
	// waitFn returns the amount of time to wait before retrying depending
	// on the current attempt.  This variable exists to reduce the test
	// time.
	waitFn    = cubicWait
	netWaitFn = expWait
)

// ErrRetryFailed is returned if the number of retry attempts exceeded the
// retry attempts limit and the callback wasn't able to complete without
// errors.
var ErrRetryFailed = errors.New("callback was unable to complete without errors within the allowed number of retries")

// StatusCoder is implemented by errors that carry an upstream HTTP status
// code (see dcapi.APIError).
type StatusCoder interface {
	HTTPStatusCode() int
}

// WithRetry waits on the limiter and runs the callback function fn.  If fn
// returns an error carrying a recoverable HTTP status code, or a transient
// network error, it delays and calls it again, up to maxAttempts times.
// With maxAttempts of 1 (the default) a failure is returned to the caller
// immediately.
func WithRetry(ctx context.Context, lim *rate.Limiter, maxAttempts int, fn func() error) error {
	var ok bool
	if maxAttempts <= 0 {
		maxAttempts = defNumAttempts
	}
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var err error
		trace.WithRegion(ctx, "WithRetry.wait", func() {
			err = lim.Wait(ctx)
		})
		if err != nil {
			return err
		}

		cbErr := fn()
		if cbErr == nil {
			ok = true
			break
		}
		lastErr = cbErr

		tracelogf(ctx, "error", "WithRetry: %[1]s (%[1]T) after %[2]d attempts", cbErr, attempt+1)
		var (
			sce StatusCoder
			ne  *net.OpError

			transient bool
			delay     time.Duration
		)
		switch {
		case errors.As(cbErr, &sce):
			if isRecoverable(sce.HTTPStatusCode()) {
				transient = true
				delay = waitFn(attempt)
				tracelogf(ctx, "info", "got server error %d, sleeping %s", sce.HTTPStatusCode(), delay)
			}
		case errors.As(cbErr, &ne):
			if ne.Op == "read" || ne.Op == "write" || ne.Op == "dial" {
				transient = true
				delay = netWaitFn(attempt)
				tracelogf(ctx, "info", "got network error %s, sleeping %s", ne.Op, delay)
			}
		}
		if !transient {
			return fmt.Errorf("callback error: %w", cbErr)
		}
		if attempt+1 == maxAttempts {
			break // no point sleeping before giving up
		}
		sleepCtx(ctx, delay)
	}
	if !ok {
		if lastErr != nil {
			return fmt.Errorf("%w: %w", ErrRetryFailed, lastErr)
		}
		return ErrRetryFailed
	}
	return nil
}

// isRecoverable returns true if the status code is a recoverable error.
func isRecoverable(statusCode int) bool {
	return (statusCode >= http.StatusInternalServerError && statusCode <= 599 && statusCode != http.StatusNotImplemented) ||
		statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests
}

// cubicWait is the wait time function.  Time is calculated as (x+2)^3
// seconds, where x is the current attempt number.  The maximum wait time
// is capped at 5 minutes.
func cubicWait(attempt int) time.Duration {
	x := attempt + 2 // this is to ensure that we sleep at least 8 seconds.
	delay := time.Duration(x*x*x) * time.Second
	if delay > maxAllowedWaitTime {
		return maxAllowedWaitTime
	}
	return delay
}

func expWait(attempt int) time.Duration {
	delay := time.Duration(2<<uint(attempt)) * time.Second
	if delay > maxAllowedWaitTime {
		return maxAllowedWaitTime
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func tracelogf(ctx context.Context, category string, format string, a ...any) {
	trace.Logf(ctx, category, format, a...)
	slog.DebugContext(ctx, fmt.Sprintf(format, a...))
}
