// Package mcp implements a Model Context Protocol (MCP) server for
// Salesforce Data Cloud.  It exposes the Data Cloud Query API, the
// metadata APIs, segmentation, activation, ingestion and profile identity
// operations as MCP tools that AI agents can call, plus an optional AI
// analysis bridge backed by the OpenAI chat completions API.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio  – standard MCP stdio transport (default); suitable for local
//     agent integration (e.g. Claude Desktop, VS Code Copilot).
//   - http   – Streamable HTTP transport; suitable for remote agents or
//     when multiple concurrent clients are needed.
package mcp
