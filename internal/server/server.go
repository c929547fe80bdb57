// Package server is the HTTP/JSON front end: REST endpoints for generation,
// history, the prompt library, and LoRA management, plus the MCP JSON-RPC
// endpoint and file serving for generated outputs.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/twalderman/zimage-studio/internal/generate"
	"github.com/twalderman/zimage-studio/internal/history"
	"github.com/twalderman/zimage-studio/internal/logging"
	"github.com/twalderman/zimage-studio/internal/lora"
	"github.com/twalderman/zimage-studio/internal/mcp"
)

// Generator runs one image generation to completion. Satisfied by
// *generate.Orchestrator.
type Generator interface {
	Generate(ctx context.Context, req *generate.Request) (*history.Record, error)
}

// Historian is the slice of the history store the HTTP layer needs.
// Satisfied by *history.Store.
type Historian interface {
	Query(search string, limit, offset int) ([]history.Record, error)
	Delete(id string) error
	Count() (int, error)
}

// Options configures a Server.
type Options struct {
	Addr      string
	Name      string
	Version   string
	OutputDir string

	Generator Generator
	Historian Historian
	Loras     *lora.Registry
}

// Server holds the wired dependencies and the route table.
type Server struct {
	addr       string
	outputDir  string
	gen        Generator
	hist       Historian
	loras      *lora.Registry
	dispatcher *mcp.Dispatcher
	router     chi.Router
	httpSrv    *http.Server
}

func New(opts Options) *Server {
	s := &Server{
		addr:       opts.Addr,
		outputDir:  opts.OutputDir,
		gen:        opts.Generator,
		hist:       opts.Historian,
		loras:      opts.Loras,
		dispatcher: mcp.NewDispatcher(opts.Generator, historianAdapter{opts.Historian}, opts.Name, opts.Version),
	}
	s.router = s.buildRouter()
	return s
}

// historianAdapter narrows the server's Historian to the dispatcher's.
type historianAdapter struct{ h Historian }

func (a historianAdapter) Query(search string, limit, offset int) ([]history.Record, error) {
	return a.h.Query(search, limit, offset)
}

func (a historianAdapter) Count() (int, error) { return a.h.Count() }

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server. The write timeout has to outlast the
// longest allowed generation, so it sits above the invoker's 600s bound.
func (s *Server) ListenAndServe() error {
	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      11 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	logging.Server("listening on %s", s.addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Post("/generate", s.handleGenerate)

	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.handleHistoryList)
		r.Delete("/{id}", s.handleHistoryDelete)
	})

	r.Get("/models", s.handleModels)

	r.Route("/loras", func(r chi.Router) {
		r.Get("/", s.handleLoraList)
		r.Post("/", s.handleLoraUpload)
	})

	r.Route("/prompts", func(r chi.Router) {
		r.Get("/", s.handlePromptLibrary)
		r.Get("/{category}", s.handlePromptCategory)
		r.Get("/{category}/{promptID}", s.handlePrompt)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.handleTemplates)
		r.Get("/{templateID}", s.handleTemplate)
		r.Post("/{templateID}/apply", s.handleTemplateApply)
	})

	r.Post("/enhance", s.handleEnhance)
	r.Get("/enhance/styles", s.handleEnhanceStyles)

	r.Handle("/outputs/*", http.StripPrefix("/outputs/", http.FileServer(http.Dir(s.outputDir))))
	r.Get("/download/{filename}", s.handleDownload)

	r.Post("/mcp", s.handleMCP)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
