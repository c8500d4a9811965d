package mcp

// In this file: Connect API tool definitions and handlers: activation,
// ingestion, insights, profile management and event subscriptions.

import (
	"context"
	"errors"
	"fmt"
	"slices"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/sfdc-tools/datacloud/internal/dcapi"
)

// ─── activate_segment ─────────────────────────────────────────────────────────

func (s *Server) toolActivateSegment() mcpsrv.ServerTool {
	tool := mcplib.NewTool("activate_segment",
		mcplib.WithDescription("Activate a segment for real-time actions using Data Cloud Connect API"),
		mcplib.WithString("segment_id",
			mcplib.Description("ID of the segment to activate"),
			mcplib.Required(),
		),
		mcplib.WithString("activation_target",
			mcplib.Description("Target for activation (e.g., 'email', 'advertising', 'personalization')"),
			mcplib.Required(),
		),
		mcplib.WithObject("activation_config",
			mcplib.Description("Configuration for the activation"),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleActivateSegment}
}

func (s *Server) handleActivateSegment(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentID, ok := stringArg(req, "segment_id")
	if !ok || segmentID == "" {
		return resultErr(errors.New("activate_segment: segment_id is required")), nil
	}
	target, ok := stringArg(req, "activation_target")
	if !ok || target == "" {
		return resultErr(errors.New("activate_segment: activation_target is required")), nil
	}
	config, _ := mapArg(req, "activation_config")

	s.logger.InfoContext(ctx, "mcp: activate_segment", "segment", segmentID, "target", target)

	ack, err := s.gw.ActivateSegment(ctx, segmentID, target, config)
	if err != nil {
		return resultErr(fmt.Errorf("activate_segment: %w", err)), nil
	}
	return jsonOrErr("activate_segment", ack)
}

// ─── ingest_data_cloud ────────────────────────────────────────────────────────

var ingestOps = []string{"insert", "upsert", "update"}

func (s *Server) toolIngestDataCloud() mcpsrv.ServerTool {
	tool := mcplib.NewTool("ingest_data_cloud",
		mcplib.WithDescription("Ingest data into Data Cloud using Connect API"),
		mcplib.WithString("object_name",
			mcplib.Description("Name of the Data Cloud object"),
			mcplib.Required(),
		),
		mcplib.WithArray("data",
			mcplib.Description("Array of records to ingest"),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "object"}),
		),
		mcplib.WithString("operation",
			mcplib.Description("Ingestion operation type"),
			mcplib.Enum(ingestOps...),
			mcplib.DefaultString("upsert"),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleIngestDataCloud}
}

func (s *Server) handleIngestDataCloud(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	object, ok := stringArg(req, "object_name")
	if !ok || object == "" {
		return resultErr(errors.New("ingest_data_cloud: object_name is required")), nil
	}
	records, ok := mapSliceArg(req, "data")
	if !ok || len(records) == 0 {
		return resultErr(errors.New("ingest_data_cloud: data is required and must be an array of objects")), nil
	}
	operation, _ := stringArg(req, "operation")
	if operation == "" {
		operation = "upsert"
	}
	if !slices.Contains(ingestOps, operation) {
		return resultErr(fmt.Errorf("ingest_data_cloud: invalid operation %q", operation)), nil
	}

	s.logger.InfoContext(ctx, "mcp: ingest_data_cloud", "object", object, "operation", operation, "records", len(records))

	resp, err := s.gw.Ingest(ctx, object, operation, records)
	if err != nil {
		return resultErr(fmt.Errorf("ingest_data_cloud: %w", err)), nil
	}
	return jsonOrErr("ingest_data_cloud", resp)
}

// ─── get_calculated_insights ──────────────────────────────────────────────────

func (s *Server) toolGetCalculatedInsights() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_calculated_insights",
		mcplib.WithDescription("Retrieve calculated insights from Data Cloud"),
		mcplib.WithString("insight_name",
			mcplib.Description("Name of the calculated insight"),
		),
		mcplib.WithObject("filter_criteria",
			mcplib.Description("Filter criteria for the insights"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetCalculatedInsights}
}

func (s *Server) handleGetCalculatedInsights(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, _ := stringArg(req, "insight_name")
	criteria, _ := mapArg(req, "filter_criteria")

	filters := make(map[string]string, len(criteria))
	for k, v := range criteria {
		filters[k] = fmt.Sprint(v)
	}

	insights, err := s.gw.CalculatedInsights(ctx, name, filters)
	if err != nil {
		return resultErr(fmt.Errorf("get_calculated_insights: %w", err)), nil
	}
	return jsonOrErr("get_calculated_insights", insights)
}

// ─── manage_profiles ──────────────────────────────────────────────────────────

func (s *Server) toolManageProfiles() mcpsrv.ServerTool {
	tool := mcplib.NewTool("manage_profiles",
		mcplib.WithDescription("Perform profile identity resolution and management"),
		mcplib.WithString("operation",
			mcplib.Description("Profile operation type"),
			mcplib.Required(),
			mcplib.Enum(dcapi.ProfileOps...),
		),
		mcplib.WithObject("profile_data",
			mcplib.Description("Profile data for the operation"),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleManageProfiles}
}

func (s *Server) handleManageProfiles(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	operation, ok := stringArg(req, "operation")
	if !ok || operation == "" {
		return resultErr(errors.New("manage_profiles: operation is required")), nil
	}
	if !slices.Contains(dcapi.ProfileOps, operation) {
		return resultErr(fmt.Errorf("manage_profiles: invalid operation %q", operation)), nil
	}
	data, _ := mapArg(req, "profile_data")

	resp, err := s.gw.ManageProfiles(ctx, operation, data)
	if err != nil {
		return resultErr(fmt.Errorf("manage_profiles: %w", err)), nil
	}
	return jsonOrErr("manage_profiles", resp)
}

// ─── get_segment_activations ──────────────────────────────────────────────────

func (s *Server) toolGetSegmentActivations() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_segment_activations",
		mcplib.WithDescription("Get activation status and history for segments"),
		mcplib.WithString("segment_id",
			mcplib.Description("ID of the segment"),
		),
		mcplib.WithString("activation_type",
			mcplib.Description("Type of activation to check"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetSegmentActivations}
}

func (s *Server) handleGetSegmentActivations(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentID, _ := stringArg(req, "segment_id")
	activationType, _ := stringArg(req, "activation_type")

	resp, err := s.gw.SegmentActivations(ctx, segmentID, activationType)
	if err != nil {
		return resultErr(fmt.Errorf("get_segment_activations: %w", err)), nil
	}
	return jsonOrErr("get_segment_activations", resp)
}

// ─── real_time_segment_events ─────────────────────────────────────────────────

func (s *Server) toolRealTimeSegmentEvents() mcpsrv.ServerTool {
	tool := mcplib.NewTool("real_time_segment_events",
		mcplib.WithDescription("Set up real-time event triggers for segment changes"),
		mcplib.WithString("segment_id",
			mcplib.Description("ID of the segment to monitor"),
			mcplib.Required(),
		),
		mcplib.WithArray("event_types",
			mcplib.Description("Types of events to monitor (e.g., 'member_added', 'member_removed')"),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
		mcplib.WithString("webhook_url",
			mcplib.Description("Webhook URL for event notifications"),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRealTimeSegmentEvents}
}

func (s *Server) handleRealTimeSegmentEvents(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentID, ok := stringArg(req, "segment_id")
	if !ok || segmentID == "" {
		return resultErr(errors.New("real_time_segment_events: segment_id is required")), nil
	}
	eventTypes, ok := stringSliceArg(req, "event_types")
	if !ok || len(eventTypes) == 0 {
		return resultErr(errors.New("real_time_segment_events: event_types is required")), nil
	}
	webhookURL, _ := stringArg(req, "webhook_url")

	resp, err := s.gw.SubscribeSegmentEvents(ctx, segmentID, eventTypes, webhookURL)
	if err != nil {
		return resultErr(fmt.Errorf("real_time_segment_events: %w", err)), nil
	}
	return jsonOrErr("real_time_segment_events", resp)
}
