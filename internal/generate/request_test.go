package generate

import "testing"

func TestNormalizeDimension(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"already aligned", 1024, 1024},
		{"rounds up", 1000, 1008},
		{"just above multiple", 1009, 1024},
		{"minimum", 256, 256},
		{"one above minimum", 257, 272},
		{"maximum", 2048, 2048},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDimension(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDimension(%d) = %d, want %d", tt.in, got, tt.want)
			}
			// Idempotent: normalizing an aligned value is a no-op.
			if again := NormalizeDimension(got); again != got {
				t.Errorf("not idempotent: %d -> %d", got, again)
			}
			if got < tt.in {
				t.Errorf("normalization decreased %d to %d", tt.in, got)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	req := &Request{Prompt: "x"}
	req.ApplyDefaults()

	if req.Width != DefaultDimension || req.Height != DefaultDimension {
		t.Errorf("dimensions not defaulted: %dx%d", req.Width, req.Height)
	}
	if req.Steps != DefaultSteps {
		t.Errorf("steps not defaulted: %d", req.Steps)
	}
	if req.SVGPreset != DefaultSVGPreset {
		t.Errorf("svg preset not defaulted: %q", req.SVGPreset)
	}
}

func TestValidate(t *testing.T) {
	scale := 0.8
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid minimal", Request{Prompt: "a red cube", Width: 1024, Height: 1024, Steps: 16}, false},
		{"empty prompt", Request{Width: 1024, Height: 1024, Steps: 16}, true},
		{"width too small", Request{Prompt: "x", Width: 128, Height: 1024, Steps: 16}, true},
		{"width too large", Request{Prompt: "x", Width: 4096, Height: 1024, Steps: 16}, true},
		{"height too small", Request{Prompt: "x", Width: 1024, Height: 255, Steps: 16}, true},
		{"steps too low", Request{Prompt: "x", Width: 1024, Height: 1024, Steps: 0}, true},
		{"steps too high", Request{Prompt: "x", Width: 1024, Height: 1024, Steps: 51}, true},
		{"bad svg preset", Request{Prompt: "x", Width: 1024, Height: 1024, Steps: 16, SVG: true, SVGPreset: "fancy"}, true},
		{"good svg preset", Request{Prompt: "x", Width: 1024, Height: 1024, Steps: 16, SVG: true, SVGPreset: "logo"}, false},
		{"preset ignored without svg", Request{Prompt: "x", Width: 1024, Height: 1024, Steps: 16, SVGPreset: "fancy"}, false},
		{"lora without path", Request{Prompt: "x", Width: 1024, Height: 1024, Steps: 16, Loras: []Lora{{Scale: &scale}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && CodeOf(err) != CodeValidation {
				t.Errorf("expected validation code, got %v", CodeOf(err))
			}
		})
	}
}
