package mcp

// In this file: query and metadata tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"
	"slices"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/sfdc-tools/datacloud/internal/dcapi"
)

// ─── query_data_cloud ─────────────────────────────────────────────────────────

func (s *Server) toolQueryDataCloud() mcpsrv.ServerTool {
	tool := mcplib.NewTool("query_data_cloud",
		mcplib.WithDescription("Execute a SQL query against Salesforce Data Cloud using Query API V2"),
		mcplib.WithString("query",
			mcplib.Description("SQL query to execute (Data Cloud SQL syntax)"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleQueryDataCloud}
}

func (s *Server) handleQueryDataCloud(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("query_data_cloud: query is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: query_data_cloud", "query", query)

	res, err := s.gw.QueryV2(ctx, query)
	if err != nil {
		return resultErr(fmt.Errorf("query_data_cloud: %w", err)), nil
	}
	return jsonOrErr("query_data_cloud", res)
}

// ─── get_data_cloud_objects ───────────────────────────────────────────────────

func (s *Server) toolGetDataCloudObjects() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_data_cloud_objects",
		mcplib.WithDescription("List available Data Cloud objects"),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetDataCloudObjects}
}

func (s *Server) handleGetDataCloudObjects(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	objects, err := s.gw.SObjects(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get_data_cloud_objects: %w", err)), nil
	}
	return jsonOrErr("get_data_cloud_objects", map[string]any{"objects": objects})
}

// ─── describe_object ──────────────────────────────────────────────────────────

func (s *Server) toolDescribeObject() mcpsrv.ServerTool {
	tool := mcplib.NewTool("describe_object",
		mcplib.WithDescription("Get metadata about a specific Data Cloud object"),
		mcplib.WithString("object_name",
			mcplib.Description("Name of the Data Cloud object"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDescribeObject}
}

func (s *Server) handleDescribeObject(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, ok := stringArg(req, "object_name")
	if !ok || name == "" {
		return resultErr(errors.New("describe_object: object_name is required")), nil
	}

	desc, err := s.gw.DescribeObject(ctx, name)
	if err != nil {
		return resultErr(fmt.Errorf("describe_object: %w", err)), nil
	}
	return jsonOrErr("describe_object", desc)
}

// ─── get_data_cloud_metadata ──────────────────────────────────────────────────

var (
	metaEntityTypes      = []string{"DataLakeObject", "DataModelObject", "CalculatedInsight"}
	metaEntityCategories = []string{"Profile", "Engagement", "Related"}
)

func (s *Server) toolGetDataCloudMetadata() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_data_cloud_metadata",
		mcplib.WithDescription("Get Data Cloud metadata about entities, including Calculated Insights, Engagement, Profile, and other entities"),
		mcplib.WithString("entityType",
			mcplib.Description("The requested metadata entity type"),
			mcplib.Enum(metaEntityTypes...),
		),
		mcplib.WithString("entityCategory",
			mcplib.Description("The requested metadata entity category (not applicable for CalculatedInsight)"),
			mcplib.Enum(metaEntityCategories...),
		),
		mcplib.WithString("entityName",
			mcplib.Description("The name of the requested metadata entity (e.g., UnifiedIndividual__dlm)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetDataCloudMetadata}
}

func (s *Server) handleGetDataCloudMetadata(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	var p dcapi.MetadataParams
	p.EntityType, _ = stringArg(req, "entityType")
	p.EntityCategory, _ = stringArg(req, "entityCategory")
	p.EntityName, _ = stringArg(req, "entityName")

	if p.EntityType != "" && !slices.Contains(metaEntityTypes, p.EntityType) {
		return resultErr(fmt.Errorf("get_data_cloud_metadata: invalid entityType %q", p.EntityType)), nil
	}
	if p.EntityCategory != "" && !slices.Contains(metaEntityCategories, p.EntityCategory) {
		return resultErr(fmt.Errorf("get_data_cloud_metadata: invalid entityCategory %q", p.EntityCategory)), nil
	}

	meta, err := s.gw.Metadata(ctx, p)
	if err != nil {
		return resultErr(fmt.Errorf("get_data_cloud_metadata: %w", err)), nil
	}
	return jsonOrErr("get_data_cloud_metadata", meta)
}

// jsonOrErr serialises v, downgrading a serialisation failure to an
// IsError result.
func jsonOrErr(tool string, v any) (*mcplib.CallToolResult, error) {
	result, err := resultJSON(v)
	if err != nil {
		return resultErr(fmt.Errorf("%s: serialise: %w", tool, err)), nil
	}
	return result, nil
}
