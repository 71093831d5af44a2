package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-recipefmt"
	"github.com/alnah/go-recipefmt/internal/config"
	"github.com/alnah/go-recipefmt/internal/fileutil"
	"github.com/alnah/go-recipefmt/internal/hints"
	"github.com/alnah/go-recipefmt/internal/llm"
	"github.com/alnah/go-recipefmt/internal/render"
	"github.com/alnah/go-recipefmt/internal/typeset"
)

// Exit codes for recipefmt CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful conversion
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // Source unreadable, fetch failed, output not writable
	ExitRendering = 4 // Renderer or typesetting engine errors
	ExitModel     = 5 // Language-model or schema errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Rendering errors (exit 4)
	if errors.Is(err, recipefmt.ErrRendering) ||
		errors.Is(err, recipefmt.ErrEngineFailed) ||
		errors.Is(err, recipefmt.ErrEngineNotFound) ||
		errors.Is(err, typeset.ErrBrowserConnect) {
		return ExitRendering
	}

	// Model and schema errors (exit 5)
	if errors.Is(err, recipefmt.ErrSchemaValidation) ||
		errors.Is(err, recipefmt.ErrExtraction) ||
		errors.Is(err, recipefmt.ErrRevision) ||
		errors.Is(err, recipefmt.ErrNoCollaborator) ||
		errors.Is(err, llm.ErrNoAPIKey) {
		return ExitModel
	}

	// I/O errors (exit 3)
	if errors.Is(err, recipefmt.ErrRetrieval) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrWriteFailed) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, recipefmt.ErrUnsupportedFormat) ||
		errors.Is(err, recipefmt.ErrInvalidScale) ||
		errors.Is(err, recipefmt.ErrEmptyDirective) ||
		errors.Is(err, recipefmt.ErrInvalidAssetPath) ||
		errors.Is(err, render.ErrInvalidPageSize) ||
		errors.Is(err, render.ErrInvalidOrientation) ||
		errors.Is(err, render.ErrInvalidMargin) ||
		errors.Is(err, typeset.ErrUnknownEngine) ||
		errors.Is(err, llm.ErrUnknownProvider) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for errors raised inside the
// pipeline. Errors built by the CLI carry their hint already.
func hintFor(err error) string {
	var engErr *typeset.EngineError
	switch {
	case errors.Is(err, typeset.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, recipefmt.ErrEngineNotFound):
		return hints.ForEngineNotFound(engineName(err))
	case errors.As(err, &engErr):
		return hints.ForEngineFailed()
	case errors.Is(err, recipefmt.ErrSchemaValidation):
		return hints.ForSchemaValidation()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	}
	return ""
}

// engineName guesses the missing engine from the error chain.
func engineName(err error) string {
	var engErr *typeset.EngineError
	if errors.As(err, &engErr) {
		return engErr.Engine
	}
	if errors.Is(err, typeset.ErrBrowserConnect) {
		return typeset.EngineChrome
	}
	return typeset.EngineXeLaTeX
}
