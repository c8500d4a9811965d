package mcp

// In this file: segment and profile tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/sfdc-tools/datacloud/internal/dcapi"
)

// ─── get_segments ─────────────────────────────────────────────────────────────

func (s *Server) toolGetSegments() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_segments",
		mcplib.WithDescription("Fetch all Segment definitions from Data Cloud"),
		mcplib.WithString("segment_type",
			mcplib.Description("Type of segments to fetch"),
			mcplib.Enum(dcapi.SegmentAll, dcapi.SegmentActive, dcapi.SegmentArchived),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetSegments}
}

func (s *Server) handleGetSegments(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentType, _ := stringArg(req, "segment_type")
	if segmentType == "" {
		segmentType = dcapi.SegmentAll
	}

	res, err := s.gw.Segments(ctx, segmentType)
	if err != nil {
		return resultErr(fmt.Errorf("get_segments: %w", err)), nil
	}
	return jsonOrErr("get_segments", res)
}

// ─── get_segment_members ──────────────────────────────────────────────────────

func (s *Server) toolGetSegmentMembers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_segment_members",
		mcplib.WithDescription("Get members of a specific segment"),
		mcplib.WithString("segment_id",
			mcplib.Description("ID of the segment"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of members to fetch"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetSegmentMembers}
}

func (s *Server) handleGetSegmentMembers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentID, ok := stringArg(req, "segment_id")
	if !ok || segmentID == "" {
		return resultErr(errors.New("get_segment_members: segment_id is required")), nil
	}
	limit, ok := intArgOK(req, "limit")
	if !ok {
		return resultErr(errors.New("get_segment_members: limit is required")), nil
	}
	if limit < 1 {
		return resultErr(fmt.Errorf("get_segment_members: limit must be at least 1, got %d", limit)), nil
	}

	res, err := s.gw.SegmentMembers(ctx, segmentID, limit)
	if err != nil {
		return resultErr(fmt.Errorf("get_segment_members: %w", err)), nil
	}
	return jsonOrErr("get_segment_members", res)
}

// ─── enrich_profiles ──────────────────────────────────────────────────────────

func (s *Server) toolEnrichProfiles() mcpsrv.ServerTool {
	tool := mcplib.NewTool("enrich_profiles",
		mcplib.WithDescription("Enrich profiles for segment members"),
		mcplib.WithArray("profile_ids",
			mcplib.Description("List of profile IDs to enrich"),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
		mcplib.WithArray("fields",
			mcplib.Description("Fields to include in enrichment"),
			mcplib.Items(map[string]any{"type": "string"}),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleEnrichProfiles}
}

func (s *Server) handleEnrichProfiles(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ids, ok := stringSliceArg(req, "profile_ids")
	if !ok || len(ids) == 0 {
		return resultErr(errors.New("enrich_profiles: profile_ids is required")), nil
	}
	fields, _ := stringSliceArg(req, "fields")

	// Profiles are fetched one by one; the first failure aborts the whole
	// run so that a partial result is never presented as complete.
	profiles := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		res, err := s.gw.Profile(ctx, id, fields)
		if err != nil {
			return resultErr(fmt.Errorf("enrich_profiles: profile %q: %w", id, err)), nil
		}
		rows := res.Rows()
		if len(rows) == 0 {
			profiles = append(profiles, map[string]any{"Id": id})
			continue
		}
		profiles = append(profiles, rows[0])
	}

	return jsonOrErr("enrich_profiles", map[string]any{
		"profiles":  profiles,
		"totalSize": len(profiles),
	})
}
