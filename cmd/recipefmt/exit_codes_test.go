package main

// Notes:
// - exitCodeFor: we test the sentinels of every category, plus wrapped
//   errors to verify the errors.Is chain works correctly.
// - hintFor: we test that pipeline errors get the matching hint.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-recipefmt"
	"github.com/alnah/go-recipefmt/internal/config"
	"github.com/alnah/go-recipefmt/internal/llm"
	"github.com/alnah/go-recipefmt/internal/render"
	"github.com/alnah/go-recipefmt/internal/typeset"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Rendering errors (exit 4)
		{"rendering", recipefmt.ErrRendering, ExitRendering},
		{"engine failed", &typeset.EngineError{Engine: "xelatex", ExitCode: 1}, ExitRendering},
		{"engine not found", fmt.Errorf("%w: xelatex", typeset.ErrEngineNotFound), ExitRendering},
		{"browser connect", typeset.ErrBrowserConnect, ExitRendering},
		{"wrapped engine failure", fmt.Errorf("%w: %w", recipefmt.ErrRendering, &typeset.EngineError{}), ExitRendering},

		// Model errors (exit 5)
		{"schema validation", recipefmt.ErrSchemaValidation, ExitModel},
		{"extraction", recipefmt.ErrExtraction, ExitModel},
		{"revision", recipefmt.ErrRevision, ExitModel},
		{"no collaborator", recipefmt.ErrNoCollaborator, ExitModel},
		{"no api key", fmt.Errorf("%w for openai", llm.ErrNoAPIKey), ExitModel},

		// I/O errors (exit 3)
		{"retrieval", recipefmt.ErrRetrieval, ExitIO},
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read source", fmt.Errorf("%w: %w", ErrReadSource, os.ErrNotExist), ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"unsupported format", recipefmt.ErrUnsupportedFormat, ExitUsage},
		{"invalid scale", recipefmt.ErrInvalidScale, ExitUsage},
		{"empty directive", recipefmt.ErrEmptyDirective, ExitUsage},
		{"invalid asset path", recipefmt.ErrInvalidAssetPath, ExitUsage},
		{"invalid page size", render.ErrInvalidPageSize, ExitUsage},
		{"unknown engine", typeset.ErrUnknownEngine, ExitUsage},
		{"unknown provider", llm.ErrUnknownProvider, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},

		// General
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"deadline", context.DeadlineExceeded, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitRendering, ExitModel}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints for pipeline errors
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"xelatex missing", fmt.Errorf("%w: %w", recipefmt.ErrRendering, typeset.ErrEngineNotFound), "TeX Live"},
		{"chrome missing", &typeset.EngineError{Engine: "chrome", Err: typeset.ErrEngineNotFound}, "ROD_BROWSER_BIN"},
		{"engine failed", &typeset.EngineError{Engine: "xelatex", ExitCode: 1}, "-f tex"},
		{"schema", recipefmt.ErrSchemaValidation, "--model"},
		{"timeout", fmt.Errorf("fetching: %w", context.DeadlineExceeded), "--timeout"},
		{"no hint", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}
