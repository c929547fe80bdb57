package generate

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/twalderman/zimage-studio/internal/history"
	"github.com/twalderman/zimage-studio/internal/invoker"
	"github.com/twalderman/zimage-studio/internal/logging"
)

// Runner executes the external tool. Satisfied by *invoker.Invoker.
type Runner interface {
	Invoke(ctx context.Context, args []string) invoker.Outcome
}

// Recorder persists generation records. Satisfied by *history.Store.
type Recorder interface {
	Append(rec *history.Record) error
}

// Orchestrator drives the request-to-record pipeline. Concurrent requests
// each block only their own caller; the semaphore bounds how many external
// invocations run at once.
type Orchestrator struct {
	outputDir string
	runner    Runner
	store     Recorder
	sem       *semaphore.Weighted
}

// NewOrchestrator wires the pipeline. maxConcurrent < 1 is treated as 1.
func NewOrchestrator(outputDir string, runner Runner, store Recorder, maxConcurrent int) *Orchestrator {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Orchestrator{
		outputDir: outputDir,
		runner:    runner,
		store:     store,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Generate validates and normalizes the request, invokes the tool, extracts
// the result metadata, and persists exactly one record on success. A failed
// invocation persists nothing.
func (o *Orchestrator) Generate(ctx context.Context, req *Request) (*history.Record, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	width := NormalizeDimension(req.Width)
	height := NormalizeDimension(req.Height)

	// Timestamp prefix keeps output listings human-sortable; the id suffix
	// avoids collisions within one second.
	id := uuid.New().String()[:8]
	filename := time.Now().Format("20060102_150405") + "_" + id + ".png"
	outputPath := filepath.Join(o.outputDir, filename)

	args := BuildArgs(req, width, height, outputPath)
	logging.GenDebug("generation %s: %dx%d steps=%d svg=%v", id, width, height, req.Steps, req.SVG)

	if err := o.sem.Acquire(ctx, 1); err != nil {
		return nil, &Error{Code: CodeInternal, Message: "request canceled while queued"}
	}
	defer o.sem.Release(1)

	// The child is detached from the caller's cancellation: a dropped
	// connection must not kill an in-flight render. The invoker applies its
	// own wall-clock bound.
	start := time.Now()
	outcome := o.runner.Invoke(context.WithoutCancel(ctx), args)
	duration := time.Since(start).Seconds()

	if !outcome.Success {
		logging.Gen("generation %s failed: %s", id, outcome.Reason)
		switch outcome.Kind {
		case invoker.KindNotFound:
			return nil, &Error{Code: CodeConfiguration, Message: outcome.Reason}
		case invoker.KindTimeout:
			return nil, &Error{Code: CodeTimeout, Message: outcome.Reason, Diagnostics: outcome.Stderr}
		default:
			return nil, &Error{Code: CodeGeneration, Message: "generation failed", Diagnostics: outcome.Stderr}
		}
	}

	seed := ExtractSeed(outcome.Stderr)

	svgPath := ""
	svgPreset := ""
	if req.SVG {
		svgPath = DetectSVGSibling(outputPath)
		svgPreset = req.SVGPreset
	}

	loras := "[]"
	if len(req.Loras) > 0 {
		if data, err := json.Marshal(req.Loras); err == nil {
			loras = string(data)
		}
	}

	rec := &history.Record{
		ID:             id,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Width:          width,
		Height:         height,
		Steps:          req.Steps,
		Seed:           seed,
		OutputPath:     outputPath,
		SVGPath:        svgPath,
		SVGPreset:      svgPreset,
		Loras:          loras,
		Duration:       duration,
		CreatedAt:      time.Now(),
	}

	if err := o.store.Append(rec); err != nil {
		logging.Get(logging.CategoryGen).Error("failed to persist record %s: %v", id, err)
		return nil, &Error{Code: CodeInternal, Message: "failed to persist generation record"}
	}

	logging.Gen("generation %s done in %.1fs seed=%s", id, duration, seed)
	return rec, nil
}
