package enhance

import (
	"strings"
	"testing"
)

func TestForVectorAddsKeywords(t *testing.T) {
	res := ForVector("a phoenix bird", "logo")

	if !strings.HasPrefix(res.Enhanced, "a phoenix bird, ") {
		t.Errorf("original prompt not preserved: %q", res.Enhanced)
	}
	for _, kw := range []string{"HIGH CONTRAST", "flat design", "vector style", "minimalist logo design"} {
		if !strings.Contains(res.Enhanced, kw) {
			t.Errorf("missing keyword %q in %q", kw, res.Enhanced)
		}
	}
	if res.NegativePrompt == "" {
		t.Error("negative prompt missing")
	}
	if res.Style != "logo" {
		t.Errorf("unexpected style %q", res.Style)
	}
}

func TestForVectorSkipsPresentKeywords(t *testing.T) {
	res := ForVector("high contrast flat vector logo", "logo")

	if strings.Count(strings.ToLower(res.Enhanced), "contrast") > 1 {
		t.Errorf("contrast keyword duplicated: %q", res.Enhanced)
	}
	if strings.Contains(res.Enhanced, "flat design") {
		t.Errorf("flat keyword added despite being present: %q", res.Enhanced)
	}
}

func TestForVectorTrimsPunctuation(t *testing.T) {
	res := ForVector("a red cube, ", "icon")
	if strings.Contains(res.Enhanced, ",,") {
		t.Errorf("double comma in enhanced prompt: %q", res.Enhanced)
	}
}

func TestForVectorUnknownStyleFallsBack(t *testing.T) {
	res := ForVector("x", "cubist")
	if res.Style != "logo" {
		t.Errorf("unknown style should fall back to logo, got %q", res.Style)
	}
}

func TestStyles(t *testing.T) {
	styles := Styles()
	for _, id := range []string{"logo", "icon", "illustration", "silhouette", "badge"} {
		info, ok := styles[id]
		if !ok {
			t.Errorf("missing style %q", id)
			continue
		}
		if info.SVGPreset == "" {
			t.Errorf("style %q has no svg preset", id)
		}
	}
}
