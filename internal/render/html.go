package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-recipefmt/recipe"
)

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// HTML renders a standalone HTML document from the Markdown rendering.
type HTML struct {
	md  goldmark.Markdown
	css string
}

// NewHTML creates an HTML renderer that embeds css in the document head.
func NewHTML(css string) *HTML {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM), // autolinks for the source URL
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			// Raw HTML in recipe text is dropped, not rendered.
		),
	)
	return &HTML{md: md, css: css}
}

// Render implements Renderer. goldmark has no context support, so the
// conversion runs in a goroutine and the call returns early on cancellation.
func (h *HTML) Render(ctx context.Context, r *recipe.Recipe) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc []byte
		err error
	}
	done := make(chan result, 1)

	go func() {
		var body bytes.Buffer
		if err := h.md.Convert([]byte(markdown(r)), &body); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		doc := fmt.Sprintf(htmlTemplate, html.EscapeString(oneLine(r.Title)), body.String())
		done <- result{doc: []byte(injectCSS(doc, h.css))}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.doc, res.err
	}
}

// injectCSS inserts a <style> block before </head>, or prepends it when the
// document has no head.
func injectCSS(doc, css string) string {
	if strings.TrimSpace(css) == "" {
		return doc
	}
	style := "<style>\n" + sanitizeCSS(css) + "\n</style>\n"
	if idx := strings.Index(strings.ToLower(doc), "</head>"); idx != -1 {
		return doc[:idx] + style + doc[idx:]
	}
	return style + doc
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ Renderer = (*HTML)(nil)
