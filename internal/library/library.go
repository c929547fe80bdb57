// Package library holds the curated prompt catalog and the vector-optimized
// prompt templates. Both are static read-only lookup data.
package library

import "strings"

// Prompt is one curated prompt entry.
type Prompt struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// Category groups prompts that share an SVG preset.
type Category struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SVGPreset   string   `json:"svg_preset"`
	Prompts     []Prompt `json:"prompts"`
}

// Template is a vector-optimized prompt template with a {subject} slot.
type Template struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Template        string `json:"template"`
	Negative        string `json:"negative"`
	SVGPreset       string `json:"svg_preset"`
	RecommendedSize [2]int `json:"recommended_size"`
}

// Applied is the result of substituting a subject into a template.
type Applied struct {
	TemplateID      string `json:"template_id"`
	Subject         string `json:"subject"`
	Prompt          string `json:"prompt"`
	NegativePrompt  string `json:"negative_prompt"`
	SVGPreset       string `json:"svg_preset"`
	RecommendedSize [2]int `json:"recommended_size"`
}

// Categories returns the full prompt library keyed by category id.
func Categories() map[string]Category {
	return promptLibrary
}

// GetCategory looks up one category by id.
func GetCategory(id string) (Category, bool) {
	c, ok := promptLibrary[id]
	return c, ok
}

// GetPrompt looks up a prompt inside a category.
func GetPrompt(categoryID, promptID string) (Prompt, Category, bool) {
	cat, ok := promptLibrary[categoryID]
	if !ok {
		return Prompt{}, Category{}, false
	}
	for _, p := range cat.Prompts {
		if p.ID == promptID {
			return p, cat, true
		}
	}
	return Prompt{}, Category{}, false
}

// TotalPrompts counts all prompts across categories.
func TotalPrompts() int {
	n := 0
	for _, cat := range promptLibrary {
		n += len(cat.Prompts)
	}
	return n
}

// Templates returns all vector templates keyed by id.
func Templates() map[string]Template {
	return vectorTemplates
}

// GetTemplate looks up one template by id.
func GetTemplate(id string) (Template, bool) {
	t, ok := vectorTemplates[id]
	return t, ok
}

// ApplyTemplate substitutes the subject into the template's {subject} slot.
func ApplyTemplate(id, subject string) (Applied, bool) {
	t, ok := vectorTemplates[id]
	if !ok {
		return Applied{}, false
	}
	return Applied{
		TemplateID:      id,
		Subject:         subject,
		Prompt:          strings.ReplaceAll(t.Template, "{subject}", subject),
		NegativePrompt:  t.Negative,
		SVGPreset:       t.SVGPreset,
		RecommendedSize: t.RecommendedSize,
	}, true
}
