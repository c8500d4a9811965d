package ai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	t.Run("no key, no network", func(t *testing.T) {
		var called atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called.Store(true)
		}))
		defer srv.Close()
		c := New("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

		_, err := c.Complete(t.Context(), "analyse this", "")
		assert.ErrorIs(t, err, ErrNoAPIKey)
		assert.False(t, called.Load())
		assert.False(t, c.Enabled())
	})
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4", req.Model)
			assert.Equal(t, 0.7, req.Temperature)
			assert.Equal(t, 1000, req.MaxTokens)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Contains(t, req.Messages[0].Content, "data analyst")
			assert.Equal(t, "analyse this", req.Messages[1].Content)

			io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"the verdict"}}],"usage":{"total_tokens":42}}`)
		}))
		defer srv.Close()
		c := New("sk-test", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

		a, err := c.Complete(t.Context(), "analyse this", "")
		require.NoError(t, err)
		assert.Equal(t, "the verdict", a.Text)
		assert.Equal(t, "gpt-4", a.Model)
		assert.Equal(t, float64(42), a.Usage["total_tokens"])
		assert.False(t, a.Timestamp.IsZero())
	})
	t.Run("model override", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req.Model)
			io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
		}))
		defer srv.Close()
		c := New("sk-test", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

		a, err := c.Complete(t.Context(), "p", "gpt-4o-mini")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", a.Model)
	})
	t.Run("upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			io.WriteString(w, `{"error":{"message":"rate limited"}}`)
		}))
		defer srv.Close()
		c := New("sk-test", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

		_, err := c.Complete(t.Context(), "p", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
		assert.Contains(t, err.Error(), "rate limited")
	})
	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"choices":[]}`)
		}))
		defer srv.Close()
		c := New("sk-test", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

		_, err := c.Complete(t.Context(), "p", "")
		assert.Error(t, err)
	})
}
