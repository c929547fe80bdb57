package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/twalderman/zimage-studio/internal/generate"
	"github.com/twalderman/zimage-studio/internal/history"
	"github.com/twalderman/zimage-studio/internal/logging"
)

// Generator runs one image generation to completion.
type Generator interface {
	Generate(ctx context.Context, req *generate.Request) (*history.Record, error)
}

// Historian reads persisted generation records.
type Historian interface {
	Query(search string, limit, offset int) ([]history.Record, error)
	Count() (int, error)
}

// Dispatcher routes MCP requests to the orchestrator and history store.
type Dispatcher struct {
	gen     Generator
	hist    Historian
	name    string
	version string
}

func NewDispatcher(gen Generator, hist Historian, name, version string) *Dispatcher {
	return &Dispatcher{gen: gen, hist: hist, name: name, version: version}
}

// Dispatch handles one MCP request and always produces a response envelope
// whose id mirrors the request's verbatim.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}

	logging.MCPDebug("dispatch method=%s", req.Method)

	switch req.Method {
	case "initialize":
		resp.Result = map[string]any{
			"protocolVersion": ProtocolVersion,
			"serverInfo": map[string]any{
				"name":    d.name,
				"version": d.version,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}
	case "tools/list":
		resp.Result = map[string]any{"tools": toolSchemas()}
	case "tools/call":
		result, rpcErr := d.call(ctx, req.Params)
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
	default:
		resp.Error = &Error{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}
	return resp
}

func (d *Dispatcher) call(ctx context.Context, params json.RawMessage) (any, *Error) {
	var cp callParams
	if err := json.Unmarshal(params, &cp); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "invalid tools/call params: " + err.Error()}
	}

	switch cp.Name {
	case "generate":
		return d.callGenerate(ctx, cp.Arguments)
	case "list_history":
		return d.callListHistory(cp.Arguments)
	default:
		return nil, &Error{Code: CodeInvalidParams, Message: "unknown tool: " + cp.Name}
	}
}

func (d *Dispatcher) callGenerate(ctx context.Context, args json.RawMessage) (any, *Error) {
	var req generate.Request
	if len(args) > 0 {
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: "invalid generate arguments: " + err.Error()}
		}
	}

	rec, err := d.gen.Generate(ctx, &req)
	if err != nil {
		logging.MCP("generate failed: %v", err)
		rpcErr := &Error{Code: CodeToolFailed, Message: err.Error()}
		var gerr *generate.Error
		if generate.CodeOf(err) == generate.CodeValidation {
			rpcErr.Code = CodeInvalidParams
		} else if errors.As(err, &gerr) && gerr.Diagnostics != "" {
			rpcErr.Data = gerr.Diagnostics
		}
		return nil, rpcErr
	}

	text, err := json.Marshal(recordView(rec))
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	return textResult(string(text)), nil
}

func (d *Dispatcher) callListHistory(args json.RawMessage) (any, *Error) {
	var ha historyArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &ha); err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: "invalid list_history arguments: " + err.Error()}
		}
	}

	records, err := d.hist.Query(ha.Search, ha.Limit, ha.Offset)
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	total, err := d.hist.Count()
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}

	views := make([]map[string]any, 0, len(records))
	for i := range records {
		views = append(views, recordView(&records[i]))
	}
	text, err := json.Marshal(map[string]any{"items": views, "total": total})
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	return textResult(string(text)), nil
}

// recordView shapes a history record the way the HTTP API reports it, with
// paths rewritten to served URLs.
func recordView(rec *history.Record) map[string]any {
	view := map[string]any{
		"id":              rec.ID,
		"prompt":          rec.Prompt,
		"negative_prompt": rec.NegativePrompt,
		"width":           rec.Width,
		"height":          rec.Height,
		"steps":           rec.Steps,
		"seed":            rec.Seed,
		"output_url":      "/outputs/" + filepath.Base(rec.OutputPath),
		"duration":        rec.Duration,
		"created_at":      rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if rec.SVGPath != "" {
		view["svg_url"] = "/outputs/" + filepath.Base(rec.SVGPath)
		view["svg_preset"] = rec.SVGPreset
	}
	if rec.Loras != "" && rec.Loras != "[]" {
		var loras []generate.Lora
		if err := json.Unmarshal([]byte(rec.Loras), &loras); err == nil {
			view["loras"] = loras
		}
	}
	return view
}

func toolSchemas() []ToolSchema {
	return []ToolSchema{
		{
			Name:        "generate",
			Description: "Generate an image from a text prompt",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt":          map[string]any{"type": "string", "description": "Text prompt describing the image"},
					"negative_prompt": map[string]any{"type": "string", "description": "What to avoid in the image"},
					"width":           map[string]any{"type": "integer", "description": "Image width in pixels (rounded to a multiple of 16)"},
					"height":          map[string]any{"type": "integer", "description": "Image height in pixels (rounded to a multiple of 16)"},
					"steps":           map[string]any{"type": "integer", "description": "Diffusion steps"},
					"seed":            map[string]any{"type": "integer", "description": "Random seed for reproducibility"},
					"svg":             map[string]any{"type": "boolean", "description": "Also produce an SVG conversion"},
					"svg_preset":      map[string]any{"type": "string", "description": "SVG conversion preset"},
				},
				"required": []string{"prompt"},
			},
		},
		{
			Name:        "list_history",
			Description: "List past generations, newest first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"search": map[string]any{"type": "string", "description": "Substring filter on the prompt"},
					"limit":  map[string]any{"type": "integer", "description": "Maximum records to return"},
					"offset": map[string]any{"type": "integer", "description": "Records to skip"},
				},
			},
		},
	}
}
