// Package datacloud manages an authenticated Salesforce Data Cloud
// session and hands out an API client bound to it.
package datacloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/sfdc-tools/datacloud/auth"
	"github.com/sfdc-tools/datacloud/internal/dcapi"
	"github.com/sfdc-tools/datacloud/internal/network"
)

// OptErrTranslations is the english translator for the limits validation
// errors.
var OptErrTranslations = network.OptErrTranslations

// Session holds the authenticated session state.  Zero value is not
// usable, must be initialised with New.  The cached credential is shared
// by all API calls and refreshed at most once at a time, no matter how
// many callers hit the expiry simultaneously.
type Session struct {
	prov auth.Provider
	cl   *dcapi.Client
	log  *slog.Logger

	cfg config

	mu   sync.RWMutex
	cred auth.Credential
	sf   singleflight.Group
}

// New creates a new session: validates the provider and the limits, then
// performs the initial login.  A login failure is returned as
// [auth.Error].
func New(ctx context.Context, prov auth.Provider, opts ...Option) (*Session, error) {
	ctx, task := trace.NewTask(ctx, "New")
	defer task.End()

	if prov == nil {
		return nil, errors.New("no auth provider")
	}
	if err := prov.Validate(); err != nil {
		return nil, fmt.Errorf("auth provider validation error: %s", err)
	}

	s := &Session{
		prov: prov,
		cfg:  defConfig,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.limits.Validate(); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return nil, fmt.Errorf("API limits failed validation: %s", vErr.Translate(OptErrTranslations))
		}
		return nil, err
	}

	cred, err := prov.Login(ctx)
	if err != nil {
		var ae *auth.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, &auth.Error{Err: err}
	}
	s.cred = cred
	s.log.InfoContext(ctx, "authenticated", "instance", cred.InstanceURL, "expiry", cred.Expiry)

	clOpts := []dcapi.Option{
		dcapi.WithLimiter(network.NewLimiter(s.cfg.limits.PerMinute, s.cfg.limits.Burst)),
		dcapi.WithRetries(s.cfg.limits.Retries),
	}
	if s.cfg.apiVersion != "" {
		clOpts = append(clOpts, dcapi.WithAPIVersion(s.cfg.apiVersion))
	}
	if s.cfg.httpClient != nil {
		clOpts = append(clOpts, dcapi.WithHTTPClient(s.cfg.httpClient))
	}
	s.cl = dcapi.New(s, clOpts...)

	return s, nil
}

// Client returns the API client bound to this session.
func (s *Session) Client() *dcapi.Client {
	return s.cl
}

// InstanceURL returns the instance the session is bound to.
func (s *Session) InstanceURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.InstanceURL
}

// Credentials returns the cached credential, re-authenticating if it has
// expired or was invalidated.  Concurrent callers observing an expired
// credential trigger a single login.
func (s *Session) Credentials(ctx context.Context) (auth.Credential, error) {
	s.mu.RLock()
	cred := s.cred
	s.mu.RUnlock()
	if cred.AccessToken != "" && !cred.Expired(time.Now()) {
		return cred, nil
	}

	v, err, _ := s.sf.Do("login", func() (any, error) {
		// recheck under the group: the winner may have already refreshed
		s.mu.RLock()
		cred := s.cred
		s.mu.RUnlock()
		if cred.AccessToken != "" && !cred.Expired(time.Now()) {
			return cred, nil
		}
		s.log.InfoContext(ctx, "session expired, logging in again")
		fresh, err := s.prov.Login(ctx)
		if err != nil {
			return auth.Credential{}, err
		}
		s.mu.Lock()
		s.cred = fresh
		s.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		var ae *auth.Error
		if errors.As(err, &ae) {
			return auth.Credential{}, err
		}
		return auth.Credential{}, &auth.Error{Err: err}
	}
	return v.(auth.Credential), nil
}

// Invalidate discards the cached credential if it still carries the
// given access token.  A stale token is ignored so that a caller racing
// with a refresh does not throw away the fresh credential.
func (s *Session) Invalidate(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred.AccessToken == accessToken {
		s.cred = auth.Credential{}
	}
}

var _ dcapi.CredentialSource = (*Session)(nil)
