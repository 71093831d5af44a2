package render

import "errors"

// Sentinel errors for rendering and page settings.
var (
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// ErrTemplate indicates the LaTeX template failed to parse or execute.
	ErrTemplate = errors.New("template error")

	// ErrHTMLConversion indicates goldmark failed to convert Markdown.
	ErrHTMLConversion = errors.New("HTML conversion failed")
)
