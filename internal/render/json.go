package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/alnah/go-recipefmt/recipe"
)

// jsonDocument fixes the key order of the JSON output.
type jsonDocument struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []any    `json:"ingredients"`
	Instructions []any    `json:"instructions"`
	Notes        string   `json:"notes,omitempty"`
	Source       string   `json:"source,omitempty"`
	Tips         []string `json:"tips,omitempty"`
}

// jsonGroup is one named group of entries.
type jsonGroup struct {
	Group string   `json:"group"`
	Items []string `json:"items"`
}

// JSON renders the exchange document with entries as display lines.
type JSON struct{}

// Render implements Renderer. Grouped lists become {"group", "items"}
// objects in group order, followed by the ungrouped entries as plain strings.
func (JSON) Render(ctx context.Context, r *recipe.Recipe) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := jsonDocument{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  jsonEntries(r.IngredientSections(), recipe.Ingredient.Line),
		Instructions: jsonEntries(r.InstructionSections(), func(i recipe.Instruction) string { return i.Text }),
		Notes:        r.Notes,
		Source:       r.Source,
		Tips:         r.Tips,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func jsonEntries[T any](sections []recipe.Section[T], text func(T) string) []any {
	out := make([]any, 0)
	for _, s := range sections {
		lines := make([]string, len(s.Items))
		for i, it := range s.Items {
			lines[i] = text(it)
		}
		if s.Label == "" {
			for _, l := range lines {
				out = append(out, l)
			}
			continue
		}
		out = append(out, jsonGroup{Group: s.Label, Items: lines})
	}
	return out
}

// Compile-time interface check.
var _ Renderer = JSON{}
