// Package render turns a validated recipe into its output documents.
//
// Four renderers share the Renderer interface:
//
//   - JSON: the exchange document, entries as display lines
//   - Markdown: headings, bullet lists and numbered steps
//   - LaTeX: a two-column typesetting source built from a text/template
//   - HTML: the Markdown rendering converted by goldmark with an embedded
//     stylesheet, used for HTML output and the Chrome PDF engine
//
// Renderers are pure: they never modify the recipe and never touch the
// filesystem. Group subheadings follow recipe.Section: a list with a single
// bucket gets none, otherwise every bucket gets one and Ungrouped comes last.
package render

import (
	"context"

	"github.com/alnah/go-recipefmt/recipe"
)

// Renderer renders a recipe to bytes.
type Renderer interface {
	Render(ctx context.Context, r *recipe.Recipe) ([]byte, error)
}
