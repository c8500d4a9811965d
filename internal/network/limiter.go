package network

import (
	"time"

	"golang.org/x/time/rate"
)

// Limits is the set of client-side API limits.  Salesforce does not
// publish tiered per-method limits the way some APIs do; a single
// requests-per-minute budget is applied to all outbound calls.
type Limits struct {
	// PerMinute is the outbound request budget in events per minute.
	PerMinute uint `toml:"per_minute" validate:"required,gte=1,lte=6000"`
	// Burst is the limiter burst in requests per second.
	Burst uint `toml:"burst" validate:"required,gte=1,lte=100"`
	// Retries is the number of attempts for idempotent (GET) calls.  The
	// value of 1 means a single attempt, i.e. no retries.
	Retries int `toml:"retries" validate:"gte=1,lte=10"`
}

// DefLimits are the default limits: a conservative 600 requests per
// minute, and no retries.
var DefLimits = Limits{
	PerMinute: 600,
	Burst:     3,
	Retries:   1,
}

// NewLimiter returns a throttler with the limit of perMinute requests per
// minute and the given burst.
func NewLimiter(perMinute uint, burst uint) *rate.Limiter {
	if perMinute == 0 {
		perMinute = DefLimits.PerMinute
	}
	if burst == 0 {
		burst = DefLimits.Burst
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), int(burst))
}
