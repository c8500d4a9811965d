package dcapi

// In this file: Connect API operations: activation, ingestion, insights,
// profile management, event subscriptions.

import (
	"context"
	"net/url"
)

// ProfileOp is a profile management operation.
const (
	ProfileOpResolve       = "resolve"
	ProfileOpMerge         = "merge"
	ProfileOpSplit         = "split"
	ProfileOpIdentityGraph = "get_identity_graph"
)

// ProfileOps lists the valid ManageProfiles operations.
var ProfileOps = []string{ProfileOpResolve, ProfileOpMerge, ProfileOpSplit, ProfileOpIdentityGraph}

// ActivateSegment activates a segment for the given target (e.g.
// "email", "advertising", "personalization").  The upstream
// acknowledgment payload is returned unmodified.
func (cl *Client) ActivateSegment(ctx context.Context, segmentID, target string, config map[string]any) (map[string]any, error) {
	if config == nil {
		config = map[string]any{}
	}
	payload := map[string]any{
		"activationTarget": target,
		"config":           config,
		"status":           "active",
	}
	var resp map[string]any
	path := cl.connectPath() + "/segments/" + url.PathEscape(segmentID) + "/activations"
	if err := cl.post(ctx, path, payload, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Ingest posts a batch of records to the ingestion endpoint of the given
// object.  operation is one of "insert", "upsert" or "update".
func (cl *Client) Ingest(ctx context.Context, object, operation string, records []map[string]any) (map[string]any, error) {
	payload := map[string]any{
		"operation": operation,
		"records":   records,
	}
	var resp map[string]any
	path := cl.connectPath() + "/ingest/" + url.PathEscape(object)
	if err := cl.post(ctx, path, payload, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CalculatedInsights retrieves calculated insights, optionally a single
// one by name, with optional filter parameters.  When the Connect
// insights endpoint is unavailable the Query API is used over
// CalculatedInsight__dlm instead.
func (cl *Client) CalculatedInsights(ctx context.Context, name string, filters map[string]string) (map[string]any, error) {
	path := cl.connectPath() + "/insights"
	if name != "" {
		path += "/" + url.PathEscape(name)
	}
	q := make(url.Values)
	for k, v := range filters {
		q.Set(k, v)
	}
	var resp map[string]any
	err := cl.get(ctx, path, q, &resp)
	if err == nil {
		return resp, nil
	}

	query := "SELECT Id, Name, Value, CalculationDate FROM CalculatedInsight__dlm"
	if name != "" {
		query += " WHERE Name = '" + quoteSOQL(name) + "'"
	}
	query += " LIMIT 100"
	res, qerr := cl.QueryV2(ctx, query)
	if qerr != nil {
		return nil, err // the original failure is the informative one
	}
	return map[string]any{
		"insights": res.Rows(),
		"source":   "query-api-fallback",
	}, nil
}

// ManageProfiles performs a profile identity operation.  For the identity
// graph read a Query API fallback over UnifiedIndividual__dlm is
// attempted when the Connect endpoint is unavailable.
func (cl *Client) ManageProfiles(ctx context.Context, operation string, data map[string]any) (map[string]any, error) {
	if data == nil {
		data = map[string]any{}
	}
	var resp map[string]any
	path := cl.connectPath() + "/profiles/" + url.PathEscape(operation)
	err := cl.post(ctx, path, data, &resp)
	if err == nil {
		return resp, nil
	}

	if operation == ProfileOpIdentityGraph {
		const query = "SELECT Id, UnifiedRecordId__c, SourceRecordId__c, SourceSystem__c" +
			" FROM UnifiedIndividual__dlm LIMIT 10"
		res, qerr := cl.QueryV2(ctx, query)
		if qerr == nil {
			return map[string]any{
				"identity_graph": res.Rows(),
				"operation":      operation,
				"source":         "query-api-fallback",
			}, nil
		}
	}
	return nil, err
}

// SegmentActivations returns the activation status and history, either
// for a single segment or for all of them.
func (cl *Client) SegmentActivations(ctx context.Context, segmentID, activationType string) (map[string]any, error) {
	path := cl.connectPath() + "/segments"
	if segmentID != "" {
		path += "/" + url.PathEscape(segmentID) + "/activations"
	} else {
		path += "/activations"
	}
	q := make(url.Values)
	if activationType != "" {
		q.Set("type", activationType)
	}
	var resp map[string]any
	if err := cl.get(ctx, path, q, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SubscribeSegmentEvents registers a subscription for segment change
// events, optionally delivering them to a webhook.
func (cl *Client) SubscribeSegmentEvents(ctx context.Context, segmentID string, eventTypes []string, webhookURL string) (map[string]any, error) {
	payload := map[string]any{
		"eventTypes": eventTypes,
		"webhookUrl": webhookURL,
		"enabled":    true,
	}
	var resp map[string]any
	path := cl.connectPath() + "/segments/" + url.PathEscape(segmentID) + "/events/subscribe"
	if err := cl.post(ctx, path, payload, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
