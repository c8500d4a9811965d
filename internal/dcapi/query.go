package dcapi

// In this file: Data Cloud Query API v2 with SOQL fallback.

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// QueryResult is the result of a Data Cloud query.  The Query API v2
// returns rows in Data; the SOQL fallback returns them in Records.  Use
// Rows to get whichever is populated.
type QueryResult struct {
	Data      []map[string]any `json:"data,omitempty"`
	Records   []map[string]any `json:"records,omitempty"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	Done      bool             `json:"done"`
	TotalSize int              `json:"totalSize"`
}

// Rows returns the result rows regardless of which API produced them.
func (r *QueryResult) Rows() []map[string]any {
	if r == nil {
		return nil
	}
	if r.Data != nil {
		return r.Data
	}
	return r.Records
}

// queryV2Response is a single page of the Query API v2 response.
type queryV2Response struct {
	Data        []map[string]any `json:"data"`
	Metadata    map[string]any   `json:"metadata"`
	NextBatchID string           `json:"nextBatchId"`
}

// soqlResponse is a single page of the core REST query response.
type soqlResponse struct {
	Records        []map[string]any `json:"records"`
	Done           bool             `json:"done"`
	TotalSize      int              `json:"totalSize"`
	NextRecordsURL string           `json:"nextRecordsUrl"`
}

const queryV2Path = "/api/v2/query"

// QueryV2 executes a SQL query with the Data Cloud Query API v2, draining
// all result batches.  Orgs without Data Cloud provisioned respond with
// 404 on the v2 endpoint; in that case the query is rerouted to the core
// SOQL endpoint.
func (cl *Client) QueryV2(ctx context.Context, sql string) (*QueryResult, error) {
	var first queryV2Response
	if err := cl.post(ctx, queryV2Path, map[string]string{"sql": sql}, &first); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return cl.SOQL(ctx, sql)
		}
		return nil, err
	}

	records := first.Data
	batchID := first.NextBatchID
	for batchID != "" {
		var page queryV2Response
		q := url.Values{"batchId": []string{batchID}}
		if err := cl.get(ctx, queryV2Path, q, &page); err != nil {
			// a failed batch fetch terminates pagination with the rows
			// collected so far, same as the reference behaviour
			break
		}
		records = append(records, page.Data...)
		batchID = page.NextBatchID
	}

	return &QueryResult{
		Data:      records,
		Metadata:  first.Metadata,
		Done:      true,
		TotalSize: len(records),
	}, nil
}

// SOQL executes the query against the core REST query endpoint, draining
// all pages via nextRecordsUrl.  The query is passed through ToSOQL first.
func (cl *Client) SOQL(ctx context.Context, query string) (*QueryResult, error) {
	var all []map[string]any

	next := cl.basePath() + "/query"
	q := url.Values{"q": []string{ToSOQL(query)}}
	for next != "" {
		var page soqlResponse
		if err := cl.get(ctx, next, q, &page); err != nil {
			return nil, err
		}
		q = nil // nextRecordsUrl carries its own parameters
		all = append(all, page.Records...)
		if page.Done {
			break
		}
		next = page.NextRecordsURL
	}

	return &QueryResult{
		Records:   all,
		Done:      true,
		TotalSize: len(all),
	}, nil
}

// ToSOQL rewrites the SQL-dialect constructs that SOQL does not accept.
// Currently that is the "SELECT TOP n" prefix, which becomes a trailing
// "LIMIT n".  Data Lake Objects (__dlm suffix) are not addressable via
// SOQL at all; those queries will fail upstream and the error is
// surfaced as is.
func ToSOQL(query string) string {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT TOP ") {
		return trimmed
	}
	rest := trimmed[len("SELECT TOP "):]
	fields, from, found := cutIgnoreCase(rest, " FROM ")
	if !found {
		return trimmed
	}
	limit, fieldList, ok := strings.Cut(strings.TrimSpace(fields), " ")
	if !ok {
		return trimmed
	}
	return "SELECT " + strings.TrimSpace(fieldList) + " FROM " + strings.TrimSpace(from) + " LIMIT " + limit
}

// cutIgnoreCase is strings.Cut with a case-insensitive separator match.
func cutIgnoreCase(s, sep string) (before, after string, found bool) {
	i := strings.Index(strings.ToUpper(s), strings.ToUpper(sep))
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// quoteSOQL escapes a string value for interpolation into a query
// literal.
func quoteSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
