package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/alnah/go-recipefmt/recipe"
)

// Template delimiters. LaTeX uses braces everywhere, so the default {{ }}
// would collide with document text.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

// texDocument is the data handed to the LaTeX template. Every string is
// already escaped.
type texDocument struct {
	Geometry     string
	MainFont     string
	Title        string
	Description  string
	Source       string
	Ingredients  []texSection
	Instructions []texSection
	Notes        string
	Tips         []string
}

type texSection struct {
	Heading string
	Items   []string
}

// LaTeX renders a typesetting source from a text/template.
type LaTeX struct {
	tmpl     *template.Template
	page     *PageSettings
	mainFont string
}

// NewLaTeX parses source as the document template. page may be nil for the
// defaults; mainFont may be empty to keep the engine's default font.
func NewLaTeX(source string, page *PageSettings, mainFont string) (*LaTeX, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := template.New("recipe").Delims(leftDelim, rightDelim).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &LaTeX{tmpl: tmpl, page: page, mainFont: strings.TrimSpace(mainFont)}, nil
}

// Render implements Renderer.
func (l *LaTeX) Render(ctx context.Context, r *recipe.Recipe) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := texDocument{
		Geometry:    l.page.Geometry(),
		MainFont:    Escape(l.mainFont),
		Title:       Escape(oneLine(r.Title)),
		Description: Escape(strings.TrimSpace(r.Description)),
		Source:      Escape(strings.TrimSpace(r.Source)),
		Notes:       Escape(strings.TrimSpace(r.Notes)),
	}

	ingredients := r.IngredientSections()
	for _, s := range ingredients {
		sec := texSection{Heading: Escape(s.Heading(len(ingredients)))}
		for _, ing := range s.Items {
			sec.Items = append(sec.Items, Escape(ing.Line()))
		}
		doc.Ingredients = append(doc.Ingredients, sec)
	}

	instructions := r.InstructionSections()
	for _, s := range instructions {
		sec := texSection{Heading: Escape(s.Heading(len(instructions)))}
		for _, ins := range s.Items {
			sec.Items = append(sec.Items, Escape(oneLine(ins.Text)))
		}
		doc.Instructions = append(doc.Instructions, sec)
	}

	for _, tip := range r.Tips {
		if tip = oneLine(tip); tip != "" {
			doc.Tips = append(doc.Tips, Escape(tip))
		}
	}

	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ Renderer = (*LaTeX)(nil)
