package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/twalderman/zimage-studio/internal/generate"
	"github.com/twalderman/zimage-studio/internal/history"
)

type fakeGenerator struct {
	lastReq *generate.Request
	record  *history.Record
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, req *generate.Request) (*history.Record, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

type fakeHistorian struct {
	lastSearch string
	lastLimit  int
	lastOffset int
	records    []history.Record
}

func (f *fakeHistorian) Query(search string, limit, offset int) ([]history.Record, error) {
	f.lastSearch = search
	f.lastLimit = limit
	f.lastOffset = offset
	return f.records, nil
}

func (f *fakeHistorian) Count() (int, error) {
	return len(f.records), nil
}

func sampleRecord() *history.Record {
	return &history.Record{
		ID:         "ab12cd34",
		Prompt:     "a red cube",
		Width:      1024,
		Height:     1024,
		Steps:      16,
		Seed:       "42",
		OutputPath: "/data/outputs/20260831_120000_ab12cd34.png",
		Loras:      "[]",
		Duration:   3.5,
		CreatedAt:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func newTestDispatcher(gen Generator, hist Historian) *Dispatcher {
	return NewDispatcher(gen, hist, "zimage-studio", "1.0.0")
}

func dispatch(t *testing.T, d *Dispatcher, raw string) Response {
	t.Helper()
	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	return d.Dispatch(context.Background(), req)
}

func TestInitialize(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{}, &fakeHistorian{})
	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"initialize","id":1}`)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if string(resp.ID) != "1" {
		t.Errorf("id = %s, want 1", resp.ID)
	}
	result := resp.Result.(map[string]any)
	if result["protocolVersion"] != ProtocolVersion {
		t.Errorf("protocolVersion = %v, want %s", result["protocolVersion"], ProtocolVersion)
	}
	info := result["serverInfo"].(map[string]any)
	if info["name"] != "zimage-studio" {
		t.Errorf("serverInfo.name = %v", info["name"])
	}
}

func TestToolsList(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{}, &fakeHistorian{})
	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"tools/list","id":2}`)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	tools := resp.Result.(map[string]any)["tools"].([]ToolSchema)
	if len(tools) != 2 {
		t.Fatalf("tool count = %d, want 2", len(tools))
	}
	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
		if len(tool.InputSchema) == 0 {
			t.Errorf("tool %s has empty input schema", tool.Name)
		}
	}
	if !names["generate"] || !names["list_history"] {
		t.Errorf("tool names = %v, want generate and list_history", names)
	}
}

func TestToolsCallGenerateEchoesID(t *testing.T) {
	gen := &fakeGenerator{record: sampleRecord()}
	d := newTestDispatcher(gen, &fakeHistorian{})

	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"generate","arguments":{"prompt":"a red cube"}},"id":7}`)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if string(resp.ID) != "7" {
		t.Errorf("id = %s, want 7", resp.ID)
	}
	if gen.lastReq == nil || gen.lastReq.Prompt != "a red cube" {
		t.Fatalf("generator saw request %+v", gen.lastReq)
	}

	content := resp.Result.(map[string]any)["content"].([]textContent)
	if len(content) != 1 || content[0].Type != "text" {
		t.Fatalf("content = %+v", content)
	}
	var view map[string]any
	if err := json.Unmarshal([]byte(content[0].Text), &view); err != nil {
		t.Fatalf("result text is not JSON: %v", err)
	}
	if view["id"] != "ab12cd34" {
		t.Errorf("view id = %v", view["id"])
	}
	if view["output_url"] != "/outputs/20260831_120000_ab12cd34.png" {
		t.Errorf("output_url = %v", view["output_url"])
	}
	if _, ok := view["svg_url"]; ok {
		t.Error("svg_url present for a non-SVG generation")
	}
}

func TestToolsCallGenerateSVGView(t *testing.T) {
	rec := sampleRecord()
	rec.SVGPath = "/data/outputs/20260831_120000_ab12cd34.svg"
	rec.SVGPreset = "poster"
	d := newTestDispatcher(&fakeGenerator{record: rec}, &fakeHistorian{})

	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"generate","arguments":{"prompt":"x","svg":true,"svg_preset":"poster"}},"id":3}`)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	content := resp.Result.(map[string]any)["content"].([]textContent)
	var view map[string]any
	if err := json.Unmarshal([]byte(content[0].Text), &view); err != nil {
		t.Fatalf("result text is not JSON: %v", err)
	}
	if view["svg_url"] != "/outputs/20260831_120000_ab12cd34.svg" {
		t.Errorf("svg_url = %v", view["svg_url"])
	}
	if view["svg_preset"] != "poster" {
		t.Errorf("svg_preset = %v", view["svg_preset"])
	}
}

func TestToolsCallGenerateFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantData bool
	}{
		{
			name:     "validation maps to invalid params",
			err:      &generate.Error{Code: generate.CodeValidation, Message: "prompt is required"},
			wantCode: CodeInvalidParams,
		},
		{
			name:     "tool crash carries diagnostics",
			err:      &generate.Error{Code: generate.CodeGeneration, Message: "generation failed", Diagnostics: "CUDA out of memory"},
			wantCode: CodeToolFailed,
			wantData: true,
		},
		{
			name:     "timeout maps to tool failure",
			err:      &generate.Error{Code: generate.CodeTimeout, Message: "generation timed out after 600s"},
			wantCode: CodeToolFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher(&fakeGenerator{err: tt.err}, &fakeHistorian{})
			resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"generate","arguments":{"prompt":"x"}},"id":4}`)

			if resp.Error == nil {
				t.Fatal("expected an error response")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", resp.Error.Code, tt.wantCode)
			}
			if tt.wantData && resp.Error.Data == nil {
				t.Error("expected diagnostics in error data")
			}
			if string(resp.ID) != "4" {
				t.Errorf("id = %s, want 4", resp.ID)
			}
		})
	}
}

func TestToolsCallListHistory(t *testing.T) {
	hist := &fakeHistorian{records: []history.Record{*sampleRecord()}}
	d := newTestDispatcher(&fakeGenerator{}, hist)

	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"list_history","arguments":{"search":"cube","limit":5,"offset":2}},"id":5}`)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if hist.lastSearch != "cube" || hist.lastLimit != 5 || hist.lastOffset != 2 {
		t.Errorf("query args = %q %d %d", hist.lastSearch, hist.lastLimit, hist.lastOffset)
	}

	content := resp.Result.(map[string]any)["content"].([]textContent)
	var payload struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal([]byte(content[0].Text), &payload); err != nil {
		t.Fatalf("result text is not JSON: %v", err)
	}
	if payload.Total != 1 || len(payload.Items) != 1 {
		t.Fatalf("total = %d, items = %d", payload.Total, len(payload.Items))
	}
	if payload.Items[0]["prompt"] != "a red cube" {
		t.Errorf("item prompt = %v", payload.Items[0]["prompt"])
	}
}

func TestUnknownMethod(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{}, &fakeHistorian{})
	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"resources/list","id":6}`)

	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != CodeMethodNotFound {
		t.Errorf("code = %d, want %d", resp.Error.Code, CodeMethodNotFound)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Errorf("message %q does not name the method", resp.Error.Message)
	}
	if string(resp.ID) != "6" {
		t.Errorf("id = %s, want 6", resp.ID)
	}
}

func TestUnknownTool(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{}, &fakeHistorian{})
	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"delete_everything","arguments":{}},"id":8}`)

	if resp.Error == nil || resp.Error.Code != CodeInvalidParams {
		t.Fatalf("error = %+v, want code %d", resp.Error, CodeInvalidParams)
	}
}

func TestStringIDMirroredVerbatim(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{}, &fakeHistorian{})
	resp := dispatch(t, d, `{"jsonrpc":"2.0","method":"initialize","id":"req-0042"}`)

	if string(resp.ID) != `"req-0042"` {
		t.Errorf("id = %s, want %q", resp.ID, `"req-0042"`)
	}
}
