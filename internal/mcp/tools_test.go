package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sfdc-tools/datacloud/ai"
	"github.com/sfdc-tools/datacloud/internal/dcapi"
)

func TestQueryDataCloud(t *testing.T) {
	t.Run("rows pass through unmodified", func(t *testing.T) {
		s, gw := newTestServer(t)
		want := &dcapi.QueryResult{
			Data:      []map[string]any{{"Id": "003A", "Email__c": "a@example.com"}},
			Done:      true,
			TotalSize: 1,
		}
		gw.EXPECT().
			QueryV2(gomock.Any(), "SELECT Id FROM UnifiedIndividual__dlm").
			Return(want, nil)

		res, err := s.handleQueryDataCloud(t.Context(),
			callReq("query_data_cloud", map[string]any{"query": "SELECT Id FROM UnifiedIndividual__dlm"}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var got dcapi.QueryResult
		require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
		assert.Equal(t, want.Data, got.Data)
		assert.Equal(t, 1, got.TotalSize)
	})
	t.Run("gateway failure is an IsError result", func(t *testing.T) {
		s, gw := newTestServer(t)
		gw.EXPECT().
			QueryV2(gomock.Any(), gomock.Any()).
			Return(nil, &dcapi.APIError{StatusCode: http.StatusBadRequest, Body: "INVALID_QUERY"})

		res, err := s.handleQueryDataCloud(t.Context(),
			callReq("query_data_cloud", map[string]any{"query": "SELEKT"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "INVALID_QUERY")
	})
}

func TestEnrichProfiles(t *testing.T) {
	t.Run("aborts on first failure", func(t *testing.T) {
		s, gw := newTestServer(t)
		gomock.InOrder(
			gw.EXPECT().
				Profile(gomock.Any(), "p1", gomock.Nil()).
				Return(&dcapi.QueryResult{Data: []map[string]any{{"Id": "p1"}}}, nil),
			gw.EXPECT().
				Profile(gomock.Any(), "p2", gomock.Nil()).
				Return(nil, errors.New("boom")),
		)
		// no expectation for p3: the run must stop at p2

		res, err := s.handleEnrichProfiles(t.Context(), callReq("enrich_profiles", map[string]any{
			"profile_ids": []any{"p1", "p2", "p3"},
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "p2")
	})
	t.Run("enriches all profiles", func(t *testing.T) {
		s, gw := newTestServer(t)
		for _, id := range []string{"p1", "p2"} {
			gw.EXPECT().
				Profile(gomock.Any(), id, []string{"Email__c"}).
				Return(&dcapi.QueryResult{Data: []map[string]any{{"Id": id, "Email__c": id + "@example.com"}}}, nil)
		}

		res, err := s.handleEnrichProfiles(t.Context(), callReq("enrich_profiles", map[string]any{
			"profile_ids": []any{"p1", "p2"},
			"fields":      []any{"Email__c"},
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var got struct {
			Profiles  []map[string]any `json:"profiles"`
			TotalSize int              `json:"totalSize"`
		}
		require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
		assert.Equal(t, 2, got.TotalSize)
		assert.Equal(t, "p2@example.com", got.Profiles[1]["Email__c"])
	})
}

func TestExecuteAIAnalysis(t *testing.T) {
	t.Run("no key means no network", func(t *testing.T) {
		var called atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called.Store(true)
		}))
		defer srv.Close()

		s, _ := newTestServer(t)
		s.ai = ai.New("", ai.WithEndpoint(srv.URL), ai.WithHTTPClient(srv.Client()))

		res, err := s.handleExecuteAIAnalysis(t.Context(), callReq("execute_ai_analysis", map[string]any{
			"prompt": "Summarise the segment",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "OPENAI_API_KEY")
		assert.False(t, called.Load())
	})
	t.Run("returns the analysis", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":"customers like coffee"}}],"usage":{"total_tokens":7}}`))
		}))
		defer srv.Close()

		s, _ := newTestServer(t)
		s.ai = ai.New("sk-test", ai.WithEndpoint(srv.URL), ai.WithHTTPClient(srv.Client()))

		res, err := s.handleExecuteAIAnalysis(t.Context(), callReq("execute_ai_analysis", map[string]any{
			"prompt": "Summarise the segment",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, textOf(t, res), "customers like coffee")
	})
}

func TestGenerateAIPrompt(t *testing.T) {
	t.Run("default template with first 10 profiles", func(t *testing.T) {
		s, _ := newTestServer(t)
		records := make([]any, 12)
		for i := range records {
			records[i] = map[string]any{"Id": "p" + string(rune('a'+i))}
		}

		res, err := s.handleGenerateAIPrompt(t.Context(), callReq("generate_ai_prompt", map[string]any{
			"segment_data": map[string]any{"records": records},
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var got struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
		assert.Contains(t, got.Prompt, "segment of 12 customers")
		assert.Contains(t, got.Prompt, `"pa"`)
		assert.Contains(t, got.Prompt, `"pj"`) // 10th profile
		assert.NotContains(t, got.Prompt, `"pk"`)
	})
	t.Run("custom template", func(t *testing.T) {
		s, _ := newTestServer(t)
		res, err := s.handleGenerateAIPrompt(t.Context(), callReq("generate_ai_prompt", map[string]any{
			"segment_data":    map[string]any{"data": []any{map[string]any{"Id": "p1"}}},
			"prompt_template": "We have {member_count} members.",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, textOf(t, res), "We have 1 members.")
	})
}

func TestStoreAIResults(t *testing.T) {
	s, gw := newTestServer(t)
	gw.EXPECT().
		Ingest(gomock.Any(), "AIAnalysis__dlm", "upsert", gomock.Len(1)).
		DoAndReturn(func(_ context.Context, _, _ string, records []map[string]any) (map[string]any, error) {
			rec := records[0]
			assert.Equal(t, "the verdict", rec["Analysis__c"])
			assert.Equal(t, "gpt-4", rec["Model__c"])
			assert.NotEmpty(t, rec["Id__c"])
			assert.NotEmpty(t, rec["Timestamp__c"])
			return map[string]any{"accepted": 1}, nil
		})

	res, err := s.handleStoreAIResults(t.Context(), callReq("store_ai_results", map[string]any{
		"results":       map[string]any{"analysis": "the verdict", "model": "gpt-4"},
		"target_object": "AIAnalysis__dlm",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "AIAnalysis__dlm", got["object"])
}

func TestActivateSegment(t *testing.T) {
	s, gw := newTestServer(t)
	ack := map[string]any{"activationId": "act_42", "status": "active"}
	gw.EXPECT().
		ActivateSegment(gomock.Any(), "seg_001", "email", map[string]any{"channel": "bulk"}).
		Return(ack, nil)

	res, err := s.handleActivateSegment(t.Context(), callReq("activate_segment", map[string]any{
		"segment_id":        "seg_001",
		"activation_target": "email",
		"activation_config": map[string]any{"channel": "bulk"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
	assert.Equal(t, ack, got)
}

func TestIngestDataCloud(t *testing.T) {
	s, gw := newTestServer(t)
	gw.EXPECT().
		Ingest(gomock.Any(), "Orders__dlm", "insert", []map[string]any{{"OrderId__c": "o1"}}).
		Return(map[string]any{"accepted": float64(1)}, nil)

	res, err := s.handleIngestDataCloud(t.Context(), callReq("ingest_data_cloud", map[string]any{
		"object_name": "Orders__dlm",
		"data":        []any{map[string]any{"OrderId__c": "o1"}},
		"operation":   "insert",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "accepted")
}

func TestGetConnectSegmentDetails_notFound(t *testing.T) {
	s, gw := newTestServer(t)
	gw.EXPECT().
		ConnectSegmentDetails(gomock.Any(), "nope").
		Return(nil, dcapi.ErrNotFound)

	res, err := s.handleGetConnectSegmentDetails(t.Context(), callReq("get_connect_segment_details", map[string]any{
		"segment_id": "nope",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "not found")
}

func TestGetSegments_defaultsToAll(t *testing.T) {
	s, gw := newTestServer(t)
	gw.EXPECT().
		Segments(gomock.Any(), dcapi.SegmentAll).
		Return(&dcapi.QueryResult{Data: []map[string]any{}}, nil)

	res, err := s.handleGetSegments(t.Context(), callReq("get_segments", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestResources(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		s, _ := newTestServer(t)
		contents, err := s.handleConfigResource(t.Context(), mcpReadReq(uriConfig))
		require.NoError(t, err)
		require.Len(t, contents, 1)
		text := contents[0].(mcplib.TextResourceContents).Text
		assert.Contains(t, text, `"it@example.com"`)
		assert.Contains(t, text, `"v59.0"`)
	})
	t.Run("objects", func(t *testing.T) {
		s, gw := newTestServer(t)
		gw.EXPECT().
			SObjects(gomock.Any()).
			Return([]map[string]any{{"name": "UnifiedIndividual__dlm", "queryable": true}}, nil)

		contents, err := s.handleObjectsResource(t.Context(), mcpReadReq(uriObjects))
		require.NoError(t, err)
		require.Len(t, contents, 1)
		text := contents[0].(mcplib.TextResourceContents).Text
		assert.True(t, strings.Contains(text, "UnifiedIndividual__dlm"))
	})
}

func mcpReadReq(uri string) mcplib.ReadResourceRequest {
	var req mcplib.ReadResourceRequest
	req.Params.URI = uri
	return req
}
