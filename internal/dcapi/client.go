// Package dcapi provides the HTTP client for the Salesforce Data Cloud
// REST surfaces: the Query API v2, the core REST API (sobjects/describe),
// the Data Cloud metadata API, the Connect API and the Connect Data API.
//
// The client does not own the credential: it pulls a valid one from the
// CredentialSource on every call, and invalidates it when the upstream
// responds with 401, so that the next call triggers a re-login.
package dcapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/sfdc-tools/datacloud/auth"
	"github.com/sfdc-tools/datacloud/internal/network"
)

//go:generate mockgen -destination=mock_dcapi/mock_dcapi.go . Gateway

// ConnectVersion is the Connect API version used for activation,
// ingestion, insights and profile endpoints.
const ConnectVersion = "v64.0"

// maxErrBodySz limits how much of an upstream error body is retained in
// an APIError.
const maxErrBodySz = 4 << 10

// CredentialSource supplies a valid Salesforce credential to the client.
type CredentialSource interface {
	// Credentials returns a valid credential, re-authenticating if the
	// cached one has expired.
	Credentials(ctx context.Context) (auth.Credential, error)
	// Invalidate drops the cached credential if its access token matches
	// tok, forcing a re-login on the next Credentials call.
	Invalidate(tok string)
}

// Gateway is the set of Data Cloud operations used by the MCP tool
// handlers.  *Client is the production implementation.
type Gateway interface {
	QueryV2(ctx context.Context, sql string) (*QueryResult, error)
	SObjects(ctx context.Context) ([]map[string]any, error)
	DescribeObject(ctx context.Context, name string) (map[string]any, error)
	Metadata(ctx context.Context, p MetadataParams) (map[string]any, error)
	Segments(ctx context.Context, segmentType string) (*QueryResult, error)
	SegmentMembers(ctx context.Context, segmentID string, limit int) (*QueryResult, error)
	Profile(ctx context.Context, profileID string, fields []string) (*QueryResult, error)
	ActivateSegment(ctx context.Context, segmentID, target string, config map[string]any) (map[string]any, error)
	Ingest(ctx context.Context, object, operation string, records []map[string]any) (map[string]any, error)
	CalculatedInsights(ctx context.Context, name string, filters map[string]string) (map[string]any, error)
	ManageProfiles(ctx context.Context, operation string, data map[string]any) (map[string]any, error)
	SegmentActivations(ctx context.Context, segmentID, activationType string) (map[string]any, error)
	SubscribeSegmentEvents(ctx context.Context, segmentID string, eventTypes []string, webhookURL string) (map[string]any, error)
	ConnectSegments(ctx context.Context, name, status string) (map[string]any, error)
	ConnectSegmentDetails(ctx context.Context, segmentID string) (map[string]any, error)
	ConnectSegmentMembers(ctx context.Context, segmentID string, limit, offset int) (map[string]any, error)
	SearchConnectSegments(ctx context.Context, term string, exact bool) (map[string]any, error)
}

// Client is the Data Cloud API client.
type Client struct {
	cl    *http.Client
	creds CredentialSource

	apiVersion     string // core REST API version, e.g. "v59.0"
	connectVersion string // Connect API version

	lim     *rate.Limiter
	retries int // attempts for GET calls; 1 means single attempt
}

var _ Gateway = (*Client)(nil)

// Option is the Client option.
type Option func(*Client)

// WithHTTPClient sets the http client to use.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) {
		if cl != nil {
			c.cl = cl
		}
	}
}

// WithAPIVersion sets the core REST API version, e.g. "v59.0".
func WithAPIVersion(ver string) Option {
	return func(c *Client) {
		if ver != "" {
			c.apiVersion = ver
		}
	}
}

// WithConnectVersion sets the Connect API version.
func WithConnectVersion(ver string) Option {
	return func(c *Client) {
		if ver != "" {
			c.connectVersion = ver
		}
	}
}

// WithLimiter sets the rate limiter shared by all calls.
func WithLimiter(lim *rate.Limiter) Option {
	return func(c *Client) {
		if lim != nil {
			c.lim = lim
		}
	}
}

// WithRetries sets the number of attempts for GET calls.  POST calls are
// never retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// New creates a new Data Cloud API client that obtains credentials from
// creds.
func New(creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		cl:             http.DefaultClient,
		creds:          creds,
		apiVersion:     auth.DefAPIVersion,
		connectVersion: ConnectVersion,
		lim:            network.NewLimiter(network.DefLimits.PerMinute, network.DefLimits.Burst),
		retries:        1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIVersion returns the core REST API version the client was configured
// with.
func (cl *Client) APIVersion() string {
	return cl.apiVersion
}

// APIError is the error returned when the upstream API responds with a
// non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("salesforce API error: status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatusCode returns the upstream status code, it satisfies
// network.StatusCoder.
func (e *APIError) HTTPStatusCode() int {
	return e.StatusCode
}

// IsStatus returns true if err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == code
}

// basePath returns the core REST API base path, e.g.
// "/services/data/v59.0".
func (cl *Client) basePath() string {
	return "/services/data/" + cl.apiVersion
}

// connectPath returns the Connect API base path.
func (cl *Client) connectPath() string {
	return "/services/data/" + cl.connectVersion
}

// connectDataPath returns the Connect Data API base path.
func (cl *Client) connectDataPath() string {
	return cl.basePath() + "/connect/data"
}

// get performs an authenticated GET of path (relative to the instance
// URL) and decodes the JSON response into v.  GET calls are paced by the
// limiter and retried up to the configured number of attempts.
func (cl *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	return cl.call(ctx, http.MethodGet, path, q, nil, v, cl.retries)
}

// post performs an authenticated POST of body (JSON-encoded) to path and
// decodes the response into v.  POST calls get a single attempt.
func (cl *Client) post(ctx context.Context, path string, body any, v any) error {
	return cl.call(ctx, http.MethodPost, path, nil, body, v, 1)
}

func (cl *Client) call(ctx context.Context, method, path string, q url.Values, body any, v any, attempts int) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}
	return network.WithRetry(ctx, cl.lim, attempts, func() error {
		return cl.once(ctx, method, path, q, payload, v, true)
	})
}

// once performs a single authenticated request.  On a 401 response the
// cached credential is invalidated and, if replay is true, the request is
// replayed once with a fresh credential.
func (cl *Client) once(ctx context.Context, method, path string, q url.Values, payload []byte, v any, replay bool) error {
	cred, err := cl.creds.Credentials(ctx)
	if err != nil {
		return err
	}

	u := cred.InstanceURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.cl.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		cl.creds.Invalidate(cred.AccessToken)
		if replay {
			return cl.once(ctx, method, path, q, payload, v, false)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), maxErrBodySz)}
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response %s %s: %w", method, path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
