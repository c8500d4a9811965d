package datacloud

import (
	"log/slog"
	"net/http"

	"github.com/sfdc-tools/datacloud/internal/network"
)

// Option is the signature of the option-setting function.
type Option func(*Session)

// WithLimits sets the API limits to use for the session.  If this option
// is not given, the session is initialised with network.DefLimits.
func WithLimits(l network.Limits) Option {
	return func(s *Session) {
		if l.Validate() == nil {
			s.cfg.limits = l
		}
	}
}

// WithLogger sets the logger to use for the session.  If this option is
// not given, slog.Default is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAPIVersion overrides the core REST API version of the session's
// client.
func WithAPIVersion(ver string) Option {
	return func(s *Session) {
		if ver != "" {
			s.cfg.apiVersion = ver
		}
	}
}

// WithHTTPClient sets the http client for the session's API client.
func WithHTTPClient(cl *http.Client) Option {
	return func(s *Session) {
		if cl != nil {
			s.cfg.httpClient = cl
		}
	}
}

// WithRetries sets the number of attempts for idempotent calls.
func WithRetries(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.cfg.limits.Retries = n
		}
	}
}
