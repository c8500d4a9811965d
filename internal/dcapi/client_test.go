package dcapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sfdc-tools/datacloud/auth"
)

// staticCreds is a CredentialSource that always returns the same
// credential and records invalidations.
type staticCreds struct {
	cred        auth.Credential
	invalidated atomic.Int32
}

func (s *staticCreds) Credentials(_ context.Context) (auth.Credential, error) {
	return s.cred, nil
}

func (s *staticCreds) Invalidate(string) {
	s.invalidated.Add(1)
}

// newTestClient returns a client pointed at the test server, with an
// unthrottled limiter.
func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) (*Client, *staticCreds) {
	t.Helper()
	creds := &staticCreds{cred: auth.Credential{
		AccessToken: "TESTTOKEN",
		InstanceURL: srv.URL,
		Expiry:      time.Now().Add(time.Hour),
	}}
	opts = append([]Option{
		WithHTTPClient(srv.Client()),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	}, opts...)
	return New(creds, opts...), creds
}

func TestClient_errors(t *testing.T) {
	t.Run("non-2xx returns APIError with status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"message":"malformed query"}`)
		}))
		defer srv.Close()
		cl, _ := newTestClient(t, srv)

		_, err := cl.QueryV2(t.Context(), "SELEKT")
		var ae *APIError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
		assert.Contains(t, ae.Body, "malformed query")
		assert.True(t, IsStatus(err, http.StatusBadRequest))
	})
	t.Run("transport failure is not an APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // kill it immediately
		cl, _ := newTestClient(t, srv)

		_, err := cl.SObjects(t.Context())
		require.Error(t, err)
		var ae *APIError
		assert.False(t, IsStatus(err, http.StatusBadRequest))
		assert.NotErrorAs(t, err, &ae)
	})
	t.Run("401 invalidates the credential and replays once", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			io.WriteString(w, `{"sobjects":[{"name":"Account","queryable":true}]}`)
		}))
		defer srv.Close()
		cl, creds := newTestClient(t, srv)

		objs, err := cl.SObjects(t.Context())
		require.NoError(t, err)
		assert.Len(t, objs, 1)
		assert.EqualValues(t, 1, creds.invalidated.Load())
		assert.EqualValues(t, 2, calls.Load())
	})
	t.Run("persistent 401 surfaces after a single replay", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()
		cl, creds := newTestClient(t, srv)

		_, err := cl.SObjects(t.Context())
		require.Error(t, err)
		assert.True(t, IsStatus(err, http.StatusUnauthorized))
		assert.EqualValues(t, 2, calls.Load())
		assert.EqualValues(t, 2, creds.invalidated.Load())
	})
}

func TestClient_retries(t *testing.T) {
	t.Run("GET single attempt by default", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		cl, _ := newTestClient(t, srv)

		_, err := cl.SObjects(t.Context())
		require.Error(t, err)
		assert.EqualValues(t, 1, calls.Load())
	})
	t.Run("POST is never retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		cl, _ := newTestClient(t, srv, WithRetries(5))

		_, err := cl.ActivateSegment(t.Context(), "seg1", "email", nil)
		require.Error(t, err)
		assert.EqualValues(t, 1, calls.Load())
	})
}

func TestClient_headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer TESTTOKEN", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()
	cl, _ := newTestClient(t, srv)

	_, err := cl.Metadata(t.Context(), MetadataParams{EntityType: "CalculatedInsight"})
	require.NoError(t, err)
}

func TestActivateSegment(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/data/v64.0/segments/seg_001/activations", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "email", payload["activationTarget"])
		assert.Equal(t, "active", payload["status"])

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"activationId":"act_42","status":"active"}`)
	}))
	defer srv.Close()
	cl, _ := newTestClient(t, srv)

	ack, err := cl.ActivateSegment(t.Context(), "seg_001", "email", map[string]any{"channel": "bulk"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
	// acknowledgment payload is returned unmodified
	assert.Equal(t, map[string]any{"activationId": "act_42", "status": "active"}, ack)
}

func TestIngest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v64.0/ingest/AIAnalysis__dlm", r.URL.Path)
		var payload struct {
			Operation string           `json:"operation"`
			Records   []map[string]any `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "upsert", payload.Operation)
		assert.Len(t, payload.Records, 2)
		io.WriteString(w, `{"accepted":2}`)
	}))
	defer srv.Close()
	cl, _ := newTestClient(t, srv)

	resp, err := cl.Ingest(t.Context(), "AIAnalysis__dlm", "upsert", []map[string]any{{"a": 1}, {"b": 2}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"accepted": float64(2)}, resp)
}

func TestSubscribeSegmentEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v64.0/segments/seg_9/events/subscribe", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, true, payload["enabled"])
		assert.Equal(t, "https://hooks.example.com/x", payload["webhookUrl"])
		io.WriteString(w, `{"subscriptionId":"sub_1"}`)
	}))
	defer srv.Close()
	cl, _ := newTestClient(t, srv)

	resp, err := cl.SubscribeSegmentEvents(t.Context(), "seg_9", []string{"member_added"}, "https://hooks.example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "sub_1", resp["subscriptionId"])
}
