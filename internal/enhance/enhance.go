// Package enhance rewrites prompts for better vector/SVG output. It is a
// pure rule-based string transformation; no model calls, no state.
package enhance

import (
	"fmt"
	"strings"
)

// Result describes one enhancement pass.
type Result struct {
	Original             string   `json:"original"`
	Enhanced             string   `json:"enhanced"`
	NegativePrompt       string   `json:"negative_prompt"`
	Style                string   `json:"style"`
	OptimizationsApplied []string `json:"optimizations_applied"`
}

// StyleInfo describes one enhancement style for discovery endpoints.
type StyleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BestFor     []string `json:"best_for"`
	SVGPreset   string   `json:"svg_preset"`
}

type styleConfig struct {
	add      []string
	negative string
}

var styleConfigs = map[string]styleConfig{
	"logo": {
		add:      []string{"minimalist logo design", "pure white background", "professional corporate identity", "geometric shapes", "scalable"},
		negative: "gradients, shadows, soft edges, photorealistic, 3d, texture, noise, blurry, complex details, realistic shading, soft lighting",
	},
	"icon": {
		add:      []string{"simple icon design", "single bold color", "white background", "minimal geometric shape", "clean lines"},
		negative: "gradients, shadows, realistic, detailed, textured, 3d, complex, photorealistic, soft edges",
	},
	"illustration": {
		add:      []string{"flat vector illustration", "bold distinct colors", "solid color fills", "white background", "cartoon style", "graphic design"},
		negative: "gradients, shadows, realistic, photorealistic, complex shading, soft edges, 3d, detailed textures, soft lighting",
	},
	"silhouette": {
		add:      []string{"bold black silhouette", "solid black shape", "pure white background", "no internal details"},
		negative: "gradients, shading, gray tones, details inside shape, texture, 3d, realistic, colors",
	},
	"badge": {
		add:      []string{"circular badge emblem", "2-3 bold colors maximum", "vintage badge aesthetic", "clean geometric elements"},
		negative: "gradients, shadows, photorealistic, complex details, soft edges, 3d effects, many colors",
	},
}

// ForVector enhances a basic prompt for vector/SVG conversion. Unknown styles
// fall back to "logo".
func ForVector(prompt, style string) Result {
	cfg, ok := styleConfigs[style]
	if !ok {
		style = "logo"
		cfg = styleConfigs["logo"]
	}

	lower := strings.ToLower(prompt)
	parts := []string{strings.TrimRight(strings.TrimSpace(prompt), ",.")}

	if !strings.Contains(lower, "contrast") {
		parts = append(parts, "HIGH CONTRAST")
	}
	if !strings.Contains(lower, "flat") {
		parts = append(parts, "flat design")
	}
	if !strings.Contains(lower, "vector") {
		parts = append(parts, "vector style")
	}

	for _, add := range cfg.add {
		if !strings.Contains(lower, strings.ToLower(add)) {
			parts = append(parts, add)
		}
	}

	for _, kw := range []string{"bold solid colors", "clean sharp edges", "no gradients"} {
		if !strings.Contains(lower, kw) {
			parts = append(parts, kw)
		}
	}

	return Result{
		Original:       prompt,
		Enhanced:       strings.Join(parts, ", "),
		NegativePrompt: cfg.negative,
		Style:          style,
		OptimizationsApplied: []string{
			"Added HIGH CONTRAST for clean edges",
			"Added flat design keywords",
			"Added vector style indicators",
			fmt.Sprintf("Applied %s style enhancements", style),
			"Added gradient/shadow removal",
		},
	}
}

// Styles returns the enhancement styles and what they are good for.
func Styles() map[string]StyleInfo {
	return map[string]StyleInfo{
		"logo": {
			Name:        "Logo",
			Description: "Optimized for minimalist logo designs with clean edges",
			BestFor:     []string{"company logos", "brand marks", "corporate identity"},
			SVGPreset:   "logo",
		},
		"icon": {
			Name:        "Icon",
			Description: "Optimized for simple, single-color icons",
			BestFor:     []string{"app icons", "UI icons", "simple symbols"},
			SVGPreset:   "logo",
		},
		"illustration": {
			Name:        "Illustration",
			Description: "Optimized for flat vector illustrations",
			BestFor:     []string{"characters", "scenes", "infographics"},
			SVGPreset:   "default",
		},
		"silhouette": {
			Name:        "Silhouette",
			Description: "Optimized for bold black silhouettes",
			BestFor:     []string{"silhouette art", "cutouts", "stencils"},
			SVGPreset:   "bw",
		},
		"badge": {
			Name:        "Badge",
			Description: "Optimized for circular badge/emblem designs",
			BestFor:     []string{"emblems", "seals", "vintage badges"},
			SVGPreset:   "logo",
		},
	}
}
