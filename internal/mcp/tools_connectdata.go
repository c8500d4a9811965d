package mcp

// In this file: Connect Data API tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/sfdc-tools/datacloud/internal/dcapi"
)

// ─── get_connect_segments ─────────────────────────────────────────────────────

func (s *Server) toolGetConnectSegments() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_connect_segments",
		mcplib.WithDescription("Get segments using official Connect Data API"),
		mcplib.WithString("segment_name",
			mcplib.Description("Optional filter by segment name"),
		),
		mcplib.WithString("status",
			mcplib.Description("Filter by status (Active, Inactive, etc.)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetConnectSegments}
}

func (s *Server) handleGetConnectSegments(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, _ := stringArg(req, "segment_name")
	status, _ := stringArg(req, "status")

	resp, err := s.gw.ConnectSegments(ctx, name, status)
	if err != nil {
		return resultErr(fmt.Errorf("get_connect_segments: %w", err)), nil
	}
	return jsonOrErr("get_connect_segments", resp)
}

// ─── get_connect_segment_details ──────────────────────────────────────────────

func (s *Server) toolGetConnectSegmentDetails() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_connect_segment_details",
		mcplib.WithDescription("Get detailed information about a specific segment using Connect Data API"),
		mcplib.WithString("segment_id",
			mcplib.Description("ID of the segment"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetConnectSegmentDetails}
}

func (s *Server) handleGetConnectSegmentDetails(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentID, ok := stringArg(req, "segment_id")
	if !ok || segmentID == "" {
		return resultErr(errors.New("get_connect_segment_details: segment_id is required")), nil
	}

	resp, err := s.gw.ConnectSegmentDetails(ctx, segmentID)
	if err != nil {
		if errors.Is(err, dcapi.ErrNotFound) {
			return resultText(fmt.Sprintf("Segment %q not found.", segmentID)), nil
		}
		return resultErr(fmt.Errorf("get_connect_segment_details: %w", err)), nil
	}
	return jsonOrErr("get_connect_segment_details", resp)
}

// ─── get_connect_segment_members ──────────────────────────────────────────────

func (s *Server) toolGetConnectSegmentMembers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_connect_segment_members",
		mcplib.WithDescription("Get segment members using Connect Data API"),
		mcplib.WithString("segment_id",
			mcplib.Description("ID of the segment"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of members to return"),
			mcplib.DefaultNumber(100),
		),
		mcplib.WithNumber("offset",
			mcplib.Description("Offset for pagination"),
			mcplib.DefaultNumber(0),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetConnectSegmentMembers}
}

func (s *Server) handleGetConnectSegmentMembers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentID, ok := stringArg(req, "segment_id")
	if !ok || segmentID == "" {
		return resultErr(errors.New("get_connect_segment_members: segment_id is required")), nil
	}
	limit := intArg(req, "limit", 100)
	if limit < 1 {
		return resultErr(fmt.Errorf("get_connect_segment_members: limit must be at least 1, got %d", limit)), nil
	}
	offset := intArg(req, "offset", 0)
	if offset < 0 {
		return resultErr(fmt.Errorf("get_connect_segment_members: offset must not be negative, got %d", offset)), nil
	}

	resp, err := s.gw.ConnectSegmentMembers(ctx, segmentID, limit, offset)
	if err != nil {
		return resultErr(fmt.Errorf("get_connect_segment_members: %w", err)), nil
	}
	return jsonOrErr("get_connect_segment_members", resp)
}

// ─── search_connect_segments ──────────────────────────────────────────────────

func (s *Server) toolSearchConnectSegments() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_connect_segments",
		mcplib.WithDescription("Search segments by name using Connect Data API"),
		mcplib.WithString("search_term",
			mcplib.Description("Search term to find segments"),
			mcplib.Required(),
		),
		mcplib.WithBoolean("exact_match",
			mcplib.Description("Whether to perform exact match"),
			mcplib.DefaultBool(false),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchConnectSegments}
}

func (s *Server) handleSearchConnectSegments(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	term, ok := stringArg(req, "search_term")
	if !ok || term == "" {
		return resultErr(errors.New("search_connect_segments: search_term is required")), nil
	}
	exact := boolArg(req, "exact_match", false)

	resp, err := s.gw.SearchConnectSegments(ctx, term, exact)
	if err != nil {
		return resultErr(fmt.Errorf("search_connect_segments: %w", err)), nil
	}
	return jsonOrErr("search_connect_segments", resp)
}
