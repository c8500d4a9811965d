package mcp

// In this file: AI analysis tool definitions and handlers.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/sfdc-tools/datacloud/ai"
)

// maxPromptProfiles limits how many profiles are inlined into a generated
// prompt.
const maxPromptProfiles = 10

// defPromptTemplate is used by generate_ai_prompt when the caller does
// not supply a template.  Placeholders: {member_count}, {timestamp},
// {profiles}.
const defPromptTemplate = `Analyze the following segment of {member_count} customers (showing first 10):

Timestamp: {timestamp}

Customer Profiles:
{profiles}

Please provide:
1. Key characteristics and patterns
2. Behavioral insights
3. Recommended marketing strategies
4. Potential risks or opportunities
`

// ─── generate_ai_prompt ───────────────────────────────────────────────────────

func (s *Server) toolGenerateAIPrompt() mcpsrv.ServerTool {
	tool := mcplib.NewTool("generate_ai_prompt",
		mcplib.WithDescription("Generate AI prompt based on segment data"),
		mcplib.WithObject("segment_data",
			mcplib.Description("Segment member data"),
			mcplib.Required(),
		),
		mcplib.WithString("prompt_template",
			mcplib.Description("Template for AI prompt"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGenerateAIPrompt}
}

func (s *Server) handleGenerateAIPrompt(_ context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	segmentData, ok := mapArg(req, "segment_data")
	if !ok {
		return resultErr(errors.New("generate_ai_prompt: segment_data is required")), nil
	}
	template, _ := stringArg(req, "prompt_template")
	if template == "" {
		template = defPromptTemplate
	}

	records := segmentRecords(segmentData)
	preview := records
	if len(preview) > maxPromptProfiles {
		preview = preview[:maxPromptProfiles]
	}
	profiles, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return resultErr(fmt.Errorf("generate_ai_prompt: serialise profiles: %w", err)), nil
	}

	prompt := strings.NewReplacer(
		"{member_count}", strconv.Itoa(len(records)),
		"{timestamp}", time.Now().UTC().Format(time.RFC3339),
		"{profiles}", string(profiles),
	).Replace(template)

	return jsonOrErr("generate_ai_prompt", map[string]any{"prompt": prompt})
}

// segmentRecords pulls the row list out of a query result shaped object,
// accepting both the Query API ("data") and SOQL ("records") layouts.
func segmentRecords(segmentData map[string]any) []any {
	for _, key := range []string{"records", "data"} {
		if rows, ok := segmentData[key].([]any); ok {
			return rows
		}
	}
	return nil
}

// ─── execute_ai_analysis ──────────────────────────────────────────────────────

func (s *Server) toolExecuteAIAnalysis() mcpsrv.ServerTool {
	tool := mcplib.NewTool("execute_ai_analysis",
		mcplib.WithDescription("Execute AI analysis on segment data"),
		mcplib.WithString("prompt",
			mcplib.Description("AI prompt"),
			mcplib.Required(),
		),
		mcplib.WithString("model",
			mcplib.Description("AI model to use"),
			mcplib.DefaultString(ai.DefModel),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleExecuteAIAnalysis}
}

func (s *Server) handleExecuteAIAnalysis(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	prompt, ok := stringArg(req, "prompt")
	if !ok || prompt == "" {
		return resultErr(errors.New("execute_ai_analysis: prompt is required")), nil
	}
	model, _ := stringArg(req, "model")

	analysis, err := s.ai.Complete(ctx, prompt, model)
	if err != nil {
		if errors.Is(err, ai.ErrNoAPIKey) {
			return resultErr(errors.New("execute_ai_analysis: OpenAI API key not configured, set OPENAI_API_KEY")), nil
		}
		return resultErr(fmt.Errorf("execute_ai_analysis: %w", err)), nil
	}
	return jsonOrErr("execute_ai_analysis", analysis)
}

// ─── store_ai_results ─────────────────────────────────────────────────────────

func (s *Server) toolStoreAIResults() mcpsrv.ServerTool {
	tool := mcplib.NewTool("store_ai_results",
		mcplib.WithDescription("Store AI analysis results back to Data Cloud"),
		mcplib.WithObject("results",
			mcplib.Description("AI analysis results"),
			mcplib.Required(),
		),
		mcplib.WithString("target_object",
			mcplib.Description("Target Data Cloud object"),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleStoreAIResults}
}

func (s *Server) handleStoreAIResults(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	results, ok := mapArg(req, "results")
	if !ok {
		return resultErr(errors.New("store_ai_results: results is required")), nil
	}
	targetObject, ok := stringArg(req, "target_object")
	if !ok || targetObject == "" {
		return resultErr(errors.New("store_ai_results: target_object is required")), nil
	}

	metadata, err := json.Marshal(results)
	if err != nil {
		return resultErr(fmt.Errorf("store_ai_results: serialise results: %w", err)), nil
	}
	record := map[string]any{
		"Id__c":        uuid.NewString(),
		"Analysis__c":  stringField(results, "analysis"),
		"Model__c":     stringField(results, "model"),
		"SegmentId__c": stringField(results, "segment_id"),
		"Timestamp__c": time.Now().UTC().Format(time.RFC3339),
		"Metadata__c":  string(metadata),
	}

	s.logger.InfoContext(ctx, "mcp: store_ai_results", "target", targetObject)

	resp, err := s.gw.Ingest(ctx, targetObject, "upsert", []map[string]any{record})
	if err != nil {
		return resultErr(fmt.Errorf("store_ai_results: ingest into %q: %w", targetObject, err)), nil
	}
	return jsonOrErr("store_ai_results", map[string]any{
		"status": "success",
		"object": targetObject,
		"record": record,
		"result": resp,
	})
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
