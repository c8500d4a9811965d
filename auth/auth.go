// Package auth provides Salesforce authentication for Data Cloud API
// access.  A Provider performs the login exchange and returns a Credential
// that carries the bearer token and the org instance URL.  Credential
// caching and refresh is the responsibility of the datacloud.Session, not
// of the provider.
package auth

import (
	"context"
	"errors"
	"time"
)

// Type is the auth type.
type Type uint8

// All supported auth types.
const (
	TypeInvalid Type = iota
	TypePassword
)

// Credential is a Salesforce API credential obtained from a successful
// login.
type Credential struct {
	// AccessToken is the session bearer token.
	AccessToken string
	// InstanceURL is the org instance base URL, e.g.
	// "https://mycompany.my.salesforce.com", without a trailing slash.
	InstanceURL string
	// Expiry is the time after which the credential must not be used, and
	// a re-login is required.
	Expiry time.Time
}

// Expired reports whether the credential is unusable at time now.
func (c Credential) Expired(now time.Time) bool {
	return c.AccessToken == "" || !c.Expiry.After(now)
}

var (
	ErrNoUsername = errors.New("no username")
	ErrNoPassword = errors.New("no password")
	ErrNoToken    = errors.New("no security token")
)

// Provider is the Salesforce authentication provider.
type Provider interface {
	// Login performs the authentication exchange and returns a fresh
	// Credential.
	Login(ctx context.Context) (Credential, error)
	// Validate should return an error, in case the provider is missing
	// the information required to perform a login.
	Validate() error
	// Type returns the auth type.
	Type() Type
}
