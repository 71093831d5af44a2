package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-recipefmt/recipe"
)

// Markdown renders a recipe as a Markdown document.
type Markdown struct{}

// Render implements Renderer.
func (Markdown) Render(ctx context.Context, r *recipe.Recipe) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(markdown(r)), nil
}

func markdown(r *recipe.Recipe) string {
	blocks := []string{"# " + oneLine(r.Title)}
	if d := strings.TrimSpace(r.Description); d != "" {
		blocks = append(blocks, normalizeLineEndings(d))
	}

	blocks = append(blocks, "## Ingredients")
	ingredients := r.IngredientSections()
	for _, s := range ingredients {
		if h := s.Heading(len(ingredients)); h != "" {
			blocks = append(blocks, "### "+h)
		}
		lines := make([]string, len(s.Items))
		for i, ing := range s.Items {
			lines[i] = "* " + ing.Line()
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	blocks = append(blocks, "## Instructions")
	instructions := r.InstructionSections()
	for _, s := range instructions {
		if h := s.Heading(len(instructions)); h != "" {
			blocks = append(blocks, "### "+h)
		}
		lines := make([]string, len(s.Items))
		for i, ins := range s.Items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, oneLine(ins.Text))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	if n := strings.TrimSpace(r.Notes); n != "" {
		blocks = append(blocks, "## Notes", normalizeLineEndings(n))
	}

	if len(r.Tips) > 0 {
		lines := make([]string, 0, len(r.Tips))
		for _, tip := range r.Tips {
			if tip = oneLine(tip); tip != "" {
				lines = append(lines, "* "+tip)
			}
		}
		if len(lines) > 0 {
			blocks = append(blocks, "## Tips", strings.Join(lines, "\n"))
		}
	}

	if src := strings.TrimSpace(r.Source); src != "" {
		blocks = append(blocks, "Source: "+src)
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

// oneLine folds a list entry onto a single line so it cannot break the list.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Compile-time interface check.
var _ Renderer = Markdown{}
