package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/sfdc-tools/datacloud/ai"
	"github.com/sfdc-tools/datacloud/internal/dcapi"
)

const (
	serverName    = "salesforce-data-cloud"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// analyser is the part of [ai.Client] the tool handlers use.
type analyser interface {
	Complete(ctx context.Context, prompt, model string) (*ai.Analysis, error)
	Enabled() bool
}

// ConfigInfo is the connection summary served by the salesforce://config
// resource.
type ConfigInfo struct {
	Username   string `json:"username"`
	APIVersion string `json:"api_version"`
	Connected  bool   `json:"connected"`
}

// Server wraps an MCP server and its Data Cloud gateway.
type Server struct {
	mcp    *mcpsrv.MCPServer
	gw     dcapi.Gateway
	ai     analyser
	cfg    ConfigInfo
	logger *slog.Logger
}

// New creates a new MCP server backed by the given gateway.  aicl may be
// an [ai.Client] without a key; AI tools then return a configuration
// error.  The server is populated with all tools and resources but does
// not start listening until one of the Serve* methods is called.
func New(gw dcapi.Gateway, aicl analyser, cfg ConfigInfo, lg *slog.Logger) *Server {
	if lg == nil {
		lg = slog.Default()
	}
	s := &Server{
		gw:     gw,
		ai:     aicl,
		cfg:    cfg,
		logger: lg,
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
		mcpsrv.WithResourceCapabilities(true, true),
	)

	// Register all tools.
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	s.registerResources()
	return s
}

// instructions returns the server instructions that describe the backend
// to the connecting agent.
func instructions() string {
	return `You are connected to a Salesforce Data Cloud MCP server.

Available tools allow you to:
- Run SQL queries against Data Cloud (Query API V2, with SOQL fallback)
- List and describe Data Cloud objects and entity metadata
- Fetch segments, segment members and unified profiles
- Enrich profiles, resolve identities and manage the identity graph
- Activate segments, subscribe to segment events and check activations
- Ingest records and retrieve calculated insights
- Generate AI prompts from segment data and run AI analysis over them

Data Cloud data model objects carry the __dlm suffix (e.g.
UnifiedIndividual__dlm).  Query results are returned as JSON.`
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as
// "127.0.0.1:8483".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolQueryDataCloud(),
		s.toolGetDataCloudObjects(),
		s.toolDescribeObject(),
		s.toolGetDataCloudMetadata(),
		s.toolGetSegments(),
		s.toolGetSegmentMembers(),
		s.toolEnrichProfiles(),
		s.toolGenerateAIPrompt(),
		s.toolExecuteAIAnalysis(),
		s.toolStoreAIResults(),
		s.toolActivateSegment(),
		s.toolIngestDataCloud(),
		s.toolGetCalculatedInsights(),
		s.toolManageProfiles(),
		s.toolGetSegmentActivations(),
		s.toolRealTimeSegmentEvents(),
		s.toolGetConnectSegments(),
		s.toolGetConnectSegmentDetails(),
		s.toolGetConnectSegmentMembers(),
		s.toolSearchConnectSegments(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called
// after New but before serving starts.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with
// IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a
// CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument from a tool call request.  The MCP
// protocol serialises numbers as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// intArgOK is like [intArg], but reports whether the argument was present
// and numeric, for arguments that must not fall back to a default.
func intArgOK(req mcplib.CallToolRequest, name string) (int, bool) {
	args := req.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// boolArg extracts a named bool argument from a tool call request.
func boolArg(req mcplib.CallToolRequest, name string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// stringSliceArg extracts a named array-of-strings argument.  Returns
// (nil, false) if the argument is absent or not an array of strings.
func stringSliceArg(req mcplib.CallToolRequest, name string) ([]string, bool) {
	args := req.GetArguments()
	if args == nil {
		return nil, false
	}
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// mapArg extracts a named object argument.  Returns (nil, false) if the
// argument is absent or not an object.
func mapArg(req mcplib.CallToolRequest, name string) (map[string]any, bool) {
	args := req.GetArguments()
	if args == nil {
		return nil, false
	}
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// mapSliceArg extracts a named array-of-objects argument.
func mapSliceArg(req mcplib.CallToolRequest, name string) ([]map[string]any, bool) {
	args := req.GetArguments()
	if args == nil {
		return nil, false
	}
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}
