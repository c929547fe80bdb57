// Package mcp exposes the generation and history operations through an MCP
// (Model Context Protocol) JSON-RPC dispatcher. The facade is stateless: it
// maps wire envelopes onto orchestrator/store calls and nothing more.
package mcp

import "encoding/json"

// ProtocolVersion is the MCP revision this facade speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeToolFailed     = -32000
)

// Request is a JSON-RPC style MCP request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC style MCP response envelope. The ID mirrors the
// request's verbatim.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ToolSchema describes one callable tool for tools/list.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// callParams are the parameters of a tools/call request.
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// historyArgs are the arguments of the list_history tool.
type historyArgs struct {
	Search string `json:"search"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// textContent wraps a tool result the way MCP clients expect.
type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(text string) map[string]any {
	return map[string]any{
		"content": []textContent{{Type: "text", Text: text}},
	}
}
