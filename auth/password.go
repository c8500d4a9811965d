package auth

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefLoginURL is the production login host.  Sandboxes use
	// "https://test.salesforce.com".
	DefLoginURL = "https://login.salesforce.com"
	// DefAPIVersion is the default Salesforce API version.
	DefAPIVersion = "v59.0"

	// defSessionLifetime is how long a session id obtained from the SOAP
	// login is assumed to be valid.  The login response does not carry an
	// expiry, so this mirrors the default org session timeout.
	defSessionLifetime = 2 * time.Hour

	maxLoginResponseSz = 1 << 20 // SOAP login responses are tiny.
)

// PasswordAuth authenticates with the SOAP username/password flow.  The
// security token is appended to the password, as required by Salesforce
// for logins from untrusted networks.
type PasswordAuth struct {
	Username      string
	Password      string
	SecurityToken string

	// LoginURL overrides the login host.  Empty means DefLoginURL.
	LoginURL string
	// APIVersion is the Salesforce API version for the SOAP endpoint
	// path, e.g. "v59.0".  Empty means DefAPIVersion.
	APIVersion string
	// InstanceURL, if set, overrides the instance URL derived from the
	// login response.
	InstanceURL string
	// Lifetime is the assumed session validity.  Zero means the default
	// of two hours.
	Lifetime time.Duration

	// HTTPClient is the client to use for the login call.  Nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

var _ Provider = (*PasswordAuth)(nil)

func (p *PasswordAuth) Type() Type {
	return TypePassword
}

func (p *PasswordAuth) Validate() error {
	if p.Username == "" {
		return ErrNoUsername
	}
	if p.Password == "" {
		return ErrNoPassword
	}
	if p.SecurityToken == "" {
		return ErrNoToken
	}
	return nil
}

// SOAPFault is a fault element of the SOAP login response, returned by
// Salesforce when the credentials are rejected.
type SOAPFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

func (f *SOAPFault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// loginEnvelope is the subset of the SOAP login response that we care
// about.  Tags carry no namespace, so local-name matching applies.
type loginEnvelope struct {
	Body struct {
		Fault         *SOAPFault `xml:"Fault"`
		LoginResponse *struct {
			Result struct {
				SessionID string `xml:"sessionId"`
				ServerURL string `xml:"serverUrl"`
			} `xml:"result"`
		} `xml:"loginResponse"`
	} `xml:"Body"`
}

// Login performs the SOAP login exchange.  On credential rejection the
// returned error is an *Error wrapping a *SOAPFault.
func (p *PasswordAuth) Login(ctx context.Context) (Credential, error) {
	if err := p.Validate(); err != nil {
		return Credential{}, &Error{Err: err}
	}

	loginURL := p.LoginURL
	if loginURL == "" {
		loginURL = DefLoginURL
	}
	ver := p.APIVersion
	if ver == "" {
		ver = DefAPIVersion
	}
	endpoint := strings.TrimSuffix(loginURL, "/") + "/services/Soap/u/" + ver

	body := loginEnvelopeBody(p.Username, p.Password+p.SecurityToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return Credential{}, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", "login")

	cl := p.HTTPClient
	if cl == nil {
		cl = http.DefaultClient
	}
	resp, err := cl.Do(req)
	if err != nil {
		return Credential{}, &Error{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLoginResponseSz))
	if err != nil {
		return Credential{}, &Error{Err: err}
	}

	var env loginEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return Credential{}, &Error{Err: err, Msg: fmt.Sprintf("login failed with status %s", resp.Status)}
	}
	if env.Body.Fault != nil {
		return Credential{}, &Error{Err: env.Body.Fault}
	}
	if resp.StatusCode != http.StatusOK || env.Body.LoginResponse == nil {
		return Credential{}, &Error{Msg: fmt.Sprintf("login failed with status %s", resp.Status)}
	}

	res := env.Body.LoginResponse.Result
	if res.SessionID == "" || res.ServerURL == "" {
		return Credential{}, &Error{Msg: "no session id or server url in the login response"}
	}

	instanceURL := p.InstanceURL
	if instanceURL == "" {
		// The server URL points at the SOAP endpoint; everything before
		// "/services/" is the instance URL.
		instanceURL, _, _ = strings.Cut(res.ServerURL, "/services/")
	}
	instanceURL = strings.TrimSuffix(instanceURL, "/")

	lifetime := p.Lifetime
	if lifetime <= 0 {
		lifetime = defSessionLifetime
	}

	return Credential{
		AccessToken: res.SessionID,
		InstanceURL: instanceURL,
		Expiry:      time.Now().Add(lifetime),
	}, nil
}

// loginEnvelopeBody renders the SOAP login request.  Username and password
// are XML-escaped, security tokens may contain arbitrary characters.
func loginEnvelopeBody(username, password string) string {
	const envelope = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:partner.soap.sforce.com">
  <soapenv:Body>
    <urn:login>
      <urn:username>%s</urn:username>
      <urn:password>%s</urn:password>
    </urn:login>
  </soapenv:Body>
</soapenv:Envelope>`
	return fmt.Sprintf(envelope, xmlEscape(username), xmlEscape(password))
}

func xmlEscape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
