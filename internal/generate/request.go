// Package generate turns an image-generation request into an invocation of
// the external tool, parses the result, and persists one history record per
// successful run.
package generate

import (
	"fmt"
)

// Request bounds. Dimensions are normalized to multiples of DimensionAlign
// after validation.
const (
	MinDimension   = 256
	MaxDimension   = 2048
	MinSteps       = 1
	MaxSteps       = 50
	DimensionAlign = 16

	DefaultDimension = 1024
	DefaultSteps     = 16
	DefaultSVGPreset = "default"
)

// SVGPresets is the fixed set of accepted secondary-artifact presets.
var SVGPresets = []string{"default", "logo", "detailed", "simplified", "bw"}

// Lora is one adapter specification passed through to the external tool.
type Lora struct {
	Path  string   `json:"path"`
	Scale *float64 `json:"scale,omitempty"`
}

// Request is a caller-supplied generation request.
type Request struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Steps          int    `json:"steps"`
	Seed           *int64 `json:"seed,omitempty"`
	SVG            bool   `json:"svg"`
	SVGPreset      string `json:"svg_preset,omitempty"`
	Loras          []Lora `json:"loras,omitempty"`
}

// ApplyDefaults fills unset numeric fields and the SVG preset.
func (r *Request) ApplyDefaults() {
	if r.Width == 0 {
		r.Width = DefaultDimension
	}
	if r.Height == 0 {
		r.Height = DefaultDimension
	}
	if r.Steps == 0 {
		r.Steps = DefaultSteps
	}
	if r.SVGPreset == "" {
		r.SVGPreset = DefaultSVGPreset
	}
}

// Validate rejects out-of-bounds parameters before anything is spawned.
func (r *Request) Validate() error {
	if r.Prompt == "" {
		return &Error{Code: CodeValidation, Message: "prompt must not be empty"}
	}
	if r.Width < MinDimension || r.Width > MaxDimension {
		return &Error{Code: CodeValidation,
			Message: fmt.Sprintf("width must be in [%d,%d], got %d", MinDimension, MaxDimension, r.Width)}
	}
	if r.Height < MinDimension || r.Height > MaxDimension {
		return &Error{Code: CodeValidation,
			Message: fmt.Sprintf("height must be in [%d,%d], got %d", MinDimension, MaxDimension, r.Height)}
	}
	if r.Steps < MinSteps || r.Steps > MaxSteps {
		return &Error{Code: CodeValidation,
			Message: fmt.Sprintf("steps must be in [%d,%d], got %d", MinSteps, MaxSteps, r.Steps)}
	}
	if r.SVG && !validPreset(r.SVGPreset) {
		return &Error{Code: CodeValidation,
			Message: fmt.Sprintf("unknown svg preset %q", r.SVGPreset)}
	}
	for i, lora := range r.Loras {
		if lora.Path == "" {
			return &Error{Code: CodeValidation,
				Message: fmt.Sprintf("lora %d has no path", i)}
		}
	}
	return nil
}

func validPreset(p string) bool {
	for _, v := range SVGPresets {
		if v == p {
			return true
		}
	}
	return false
}

// NormalizeDimension rounds up to the next multiple of DimensionAlign.
// Idempotent: an aligned value maps to itself.
func NormalizeDimension(d int) int {
	return ((d + DimensionAlign - 1) / DimensionAlign) * DimensionAlign
}
