package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/twalderman/zimage-studio/internal/enhance"
	"github.com/twalderman/zimage-studio/internal/generate"
	"github.com/twalderman/zimage-studio/internal/history"
	"github.com/twalderman/zimage-studio/internal/library"
	"github.com/twalderman/zimage-studio/internal/logging"
	"github.com/twalderman/zimage-studio/internal/lora"
	"github.com/twalderman/zimage-studio/internal/mcp"
)

// maxUploadBytes caps LoRA uploads. Adapter files run to a few hundred MB.
const maxUploadBytes = 2 << 30

// generateResponse is the POST /generate reply.
type generateResponse struct {
	ID        string  `json:"id"`
	Prompt    string  `json:"prompt"`
	OutputURL string  `json:"output_url"`
	SVGURL    *string `json:"svg_url"`
	Duration  float64 `json:"duration"`
	Seed      string  `json:"seed"`
}

// historyItem is one GET /history entry with paths rewritten to served URLs.
type historyItem struct {
	ID             string  `json:"id"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	Seed           string  `json:"seed"`
	OutputURL      string  `json:"output_url"`
	SVGURL         *string `json:"svg_url"`
	Duration       float64 `json:"duration"`
	CreatedAt      string  `json:"created_at"`
}

func outputURL(path string) string {
	return "/outputs/" + filepath.Base(path)
}

func svgURL(rec *history.Record) *string {
	if rec.SVGPath == "" {
		return nil
	}
	u := outputURL(rec.SVGPath)
	return &u
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := s.gen.Generate(r.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if generate.CodeOf(err) == generate.CodeValidation {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		ID:        rec.ID,
		Prompt:    rec.Prompt,
		OutputURL: outputURL(rec.OutputPath),
		SVGURL:    svgURL(rec),
		Duration:  rec.Duration,
		Seed:      rec.Seed,
	})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	limit := intParam(q.Get("limit"), 0)
	offset := intParam(q.Get("offset"), 0)

	records, err := s.hist.Query(search, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.hist.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]historyItem, 0, len(records))
	for i := range records {
		rec := &records[i]
		items = append(items, historyItem{
			ID:             rec.ID,
			Prompt:         rec.Prompt,
			NegativePrompt: rec.NegativePrompt,
			Width:          rec.Width,
			Height:         rec.Height,
			Steps:          rec.Steps,
			Seed:           rec.Seed,
			OutputURL:      outputURL(rec.OutputPath),
			SVGURL:         svgURL(rec),
			Duration:       rec.Duration,
			CreatedAt:      rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.hist.Delete(id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default_model": "Tongyi-MAI/Z-Image-Turbo",
		"hardware": map[string]string{
			"platform":     runtime.GOOS,
			"architecture": runtime.GOARCH,
		},
		"svg_presets": generate.SVGPresets,
	})
}

func (s *Server) handleLoraList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"loras": s.loras.List()})
}

func (s *Server) handleLoraUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing upload field 'file'")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !strings.HasSuffix(name, lora.Extension) {
		writeError(w, http.StatusBadRequest, "Only "+lora.Extension+" files are allowed")
		return
	}

	dest := filepath.Join(s.loras.Dir(), name)
	out, err := os.Create(dest)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dest)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := out.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.loras.Refresh(); err != nil {
		logging.Server("lora refresh after upload failed: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "uploaded", "path": dest})
}

func (s *Server) handlePromptLibrary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":    library.Categories(),
		"total_prompts": library.TotalPrompts(),
	})
}

func (s *Server) handlePromptCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "category")
	cat, ok := library.GetCategory(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Category '"+id+"' not found")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	catID := chi.URLParam(r, "category")
	promptID := chi.URLParam(r, "promptID")

	if _, ok := library.GetCategory(catID); !ok {
		writeError(w, http.StatusNotFound, "Category '"+catID+"' not found")
		return
	}
	p, cat, ok := library.GetPrompt(catID, promptID)
	if !ok {
		writeError(w, http.StatusNotFound, "Prompt '"+promptID+"' not found in category '"+catID+"'")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"prompt":          p.Prompt,
		"negative_prompt": p.NegativePrompt,
		"category":        catID,
		"svg_preset":      cat.SVGPreset,
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := library.Templates()
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"total":     len(templates),
	})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	t, ok := library.GetTemplate(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Template '"+id+"' not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":               id,
		"name":             t.Name,
		"description":      t.Description,
		"template":         t.Template,
		"negative":         t.Negative,
		"svg_preset":       t.SVGPreset,
		"recommended_size": t.RecommendedSize,
	})
}

func (s *Server) handleTemplateApply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	subject := r.URL.Query().Get("subject")
	if subject == "" {
		writeError(w, http.StatusBadRequest, "subject query parameter is required")
		return
	}

	applied, ok := library.ApplyTemplate(id, subject)
	if !ok {
		writeError(w, http.StatusNotFound, "Template '"+id+"' not found")
		return
	}
	writeJSON(w, http.StatusOK, applied)
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
		Style  string `json:"style"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.Style == "" {
		req.Style = "logo"
	}
	writeJSON(w, http.StatusOK, enhance.ForVector(req.Prompt, req.Style))
}

func (s *Server) handleEnhanceStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"styles": enhance.Styles()})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	path := filepath.Join(s.outputDir, name)

	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	http.ServeFile(w, r, path)
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req mcp.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, mcp.Response{
			JSONRPC: "2.0",
			Error:   &mcp.Error{Code: mcp.CodeParseError, Message: "invalid JSON-RPC request: " + err.Error()},
		})
		return
	}
	writeJSON(w, http.StatusOK, s.dispatcher.Dispatch(r.Context(), req))
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
