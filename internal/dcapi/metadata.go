package dcapi

// In this file: core REST object metadata and the Data Cloud metadata API.

import (
	"context"
	"net/url"
)

// MetadataParams are the query parameters of the Data Cloud metadata API.
// All fields are optional; empty fields are omitted from the request.
type MetadataParams struct {
	// EntityType is one of "DataLakeObject", "DataModelObject",
	// "CalculatedInsight".
	EntityType string
	// EntityCategory is one of "Profile", "Engagement", "Related".  Not
	// applicable to CalculatedInsight.
	EntityCategory string
	// EntityName is the developer name, e.g. "UnifiedIndividual__dlm".
	EntityName string
}

func (p MetadataParams) values() url.Values {
	q := make(url.Values)
	if p.EntityType != "" {
		q.Set("entityType", p.EntityType)
	}
	if p.EntityCategory != "" {
		q.Set("entityCategory", p.EntityCategory)
	}
	if p.EntityName != "" {
		q.Set("entityName", p.EntityName)
	}
	return q
}

type sobjectsResponse struct {
	Sobjects []map[string]any `json:"sobjects"`
}

// SObjects returns the queryable objects of the org.
func (cl *Client) SObjects(ctx context.Context) ([]map[string]any, error) {
	var resp sobjectsResponse
	if err := cl.get(ctx, cl.basePath()+"/sobjects", nil, &resp); err != nil {
		return nil, err
	}
	queryable := make([]map[string]any, 0, len(resp.Sobjects))
	for _, obj := range resp.Sobjects {
		if q, _ := obj["queryable"].(bool); q {
			queryable = append(queryable, obj)
		}
	}
	return queryable, nil
}

// DescribeObject returns the field-level metadata of a single object.
func (cl *Client) DescribeObject(ctx context.Context, name string) (map[string]any, error) {
	var resp map[string]any
	path := cl.basePath() + "/sobjects/" + url.PathEscape(name) + "/describe"
	if err := cl.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Metadata queries the Data Cloud v1 metadata API for entity metadata
// (Data Lake Objects, Data Model Objects, Calculated Insights).
func (cl *Client) Metadata(ctx context.Context, p MetadataParams) (map[string]any, error) {
	var resp map[string]any
	if err := cl.get(ctx, "/api/v1/metadata/", p.values(), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
