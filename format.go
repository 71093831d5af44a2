package recipefmt

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatLaTeX    Format = "tex"
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
)

// formatAliases maps accepted spellings to formats.
var formatAliases = map[string]Format{
	"json":     FormatJSON,
	"md":       FormatMarkdown,
	"markdown": FormatMarkdown,
	"tex":      FormatLaTeX,
	"latex":    FormatLaTeX,
	"pdf":      FormatPDF,
	"html":     FormatHTML,
	"htm":      FormatHTML,
}

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatMarkdown, FormatLaTeX, FormatPDF, FormatHTML}
}

// ParseFormat parses a format name or extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// ResolveFormat picks the output format: an explicit name wins, then the
// extension of path, then JSON. unknownExt reports that path had an
// extension that names no format, which callers should warn about.
func ResolveFormat(explicit, path string) (f Format, unknownExt bool, err error) {
	if strings.TrimSpace(explicit) != "" {
		f, err := ParseFormat(explicit)
		return f, false, err
	}
	if f, ok := FormatFromPath(path); ok {
		return f, false, nil
	}
	return FormatJSON, filepath.Ext(path) != "", nil
}

// Extension returns the file extension for f, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// Binary reports whether the payload is not text.
func (f Format) Binary() bool {
	return f == FormatPDF
}
