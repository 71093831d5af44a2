package typeset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	xelatexBinary = "xelatex"
	jobName       = "recipe"

	// diagnosticContext is the number of lines kept after each "!" error line.
	diagnosticContext = 2
	// diagnosticTail is the number of output lines kept when the log has no
	// "!" lines.
	diagnosticTail = 20
)

// XeLaTeX compiles LaTeX sources with the xelatex executable.
type XeLaTeX struct {
	Binary  string
	Timeout time.Duration
	Runner  CommandRunner
}

// NewXeLaTeX creates a XeLaTeX engine backed by a real command runner.
// An empty binary uses "xelatex" from PATH.
func NewXeLaTeX(binary string) *XeLaTeX {
	return &XeLaTeX{Binary: binary, Runner: ExecRunner{}}
}

// Name implements Engine.
func (x *XeLaTeX) Name() string { return EngineXeLaTeX }

// Source implements Engine.
func (x *XeLaTeX) Source() SourceKind { return SourceLaTeX }

// Compile implements Engine.
func (x *XeLaTeX) Compile(ctx context.Context, source string) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, x.Timeout)
	defer cancel()

	var pdf []byte
	err := WithWorkDir("recipefmt-tex-*", func(dir string) error {
		texPath := filepath.Join(dir, jobName+".tex")
		if err := os.WriteFile(texPath, []byte(source), 0o600); err != nil {
			return fmt.Errorf("%w: writing source: %v", ErrWorkDir, err)
		}

		stdout, stderr, runErr := x.runner().Run(ctx, dir, x.binary(),
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-no-shell-escape",
			"-output-directory="+dir,
			jobName+".tex",
		)
		if runErr != nil {
			return x.failure(ctx, dir, stdout+stderr, runErr)
		}

		data, err := os.ReadFile(filepath.Join(dir, jobName+".pdf"))
		if err != nil {
			return &EngineError{
				Engine:      x.Name(),
				ExitCode:    -1,
				Diagnostics: diagnostics(dir, stdout+stderr),
				Err:         ErrMissingDocument,
			}
		}
		pdf = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// failure classifies a failed run: missing executable, cancellation or
// timeout, or a non-zero exit with diagnostics.
func (x *XeLaTeX) failure(ctx context.Context, dir, output string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrEngineNotFound, x.binary(), err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", x.Name(), ctxErr)
	}

	exitCode := -1
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &EngineError{
		Engine:      x.Name(),
		ExitCode:    exitCode,
		Diagnostics: diagnostics(dir, output),
		Err:         err,
	}
}

func (x *XeLaTeX) binary() string {
	if x.Binary != "" {
		return x.Binary
	}
	return xelatexBinary
}

func (x *XeLaTeX) runner() CommandRunner {
	if x.Runner != nil {
		return x.Runner
	}
	return ExecRunner{}
}

// diagnostics extracts the "!" error lines from the job log, each with a few
// lines of context. Without a log, or without "!" lines, it falls back to the
// tail of the captured output.
func diagnostics(dir, output string) string {
	if log, err := os.ReadFile(filepath.Join(dir, jobName+".log")); err == nil {
		if lines := bangLines(string(log)); len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}
	return tail(output, diagnosticTail)
}

func bangLines(log string) []string {
	lines := strings.Split(strings.ReplaceAll(log, "\r\n", "\n"), "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "!") {
			continue
		}
		end := min(i+1+diagnosticContext, len(lines))
		for _, l := range lines[i:end] {
			if l = strings.TrimRight(l, " \t"); l != "" {
				out = append(out, l)
			}
		}
		i = end - 1
	}
	return out
}

func tail(output string, n int) string {
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(output, "\r\n", "\n"), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Compile-time interface check.
var _ Engine = (*XeLaTeX)(nil)
