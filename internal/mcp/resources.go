package mcp

// In this file: MCP resource definitions.

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

const (
	uriConfig  = "salesforce://config"
	uriObjects = "salesforce://objects"
)

// registerResources registers the static resources on the MCP server.
func (s *Server) registerResources() {
	s.mcp.AddResource(mcplib.NewResource(uriConfig, "Salesforce Configuration",
		mcplib.WithResourceDescription("Current Salesforce connection configuration"),
		mcplib.WithMIMEType("application/json"),
	), s.handleConfigResource)
	s.mcp.AddResource(mcplib.NewResource(uriObjects, "Data Cloud Objects",
		mcplib.WithResourceDescription("List of available Data Cloud objects"),
		mcplib.WithMIMEType("application/json"),
	), s.handleObjectsResource)
}

func (s *Server) handleConfigResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uriConfig,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleObjectsResource(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	objects, err := s.gw.SObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uriObjects,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
