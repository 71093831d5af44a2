package typeset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-recipefmt/internal/render"
)

// SourceKind names the rendering an engine consumes.
type SourceKind string

const (
	SourceLaTeX SourceKind = "latex"
	SourceHTML  SourceKind = "html"
)

// Engine names accepted by New.
const (
	EngineXeLaTeX = "xelatex"
	EngineChrome  = "chrome"
)

// DefaultTimeout bounds a single compilation when the caller sets none.
const DefaultTimeout = 2 * time.Minute

// Engine compiles a typesetting source into PDF bytes.
type Engine interface {
	Name() string
	Source() SourceKind
	Compile(ctx context.Context, source string) ([]byte, error)
}

// Options configures engine construction.
type Options struct {
	Binary  string               // engine executable, empty for the default
	Page    *render.PageSettings // paper and margins for the Chrome engine
	Timeout time.Duration        // per-compilation bound, zero for DefaultTimeout
}

// New returns the engine registered under name.
func New(name string, opts Options) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineXeLaTeX:
		e := NewXeLaTeX(opts.Binary)
		e.Timeout = opts.Timeout
		return e, nil
	case EngineChrome:
		c := NewChrome(opts.Page)
		c.Binary = opts.Binary
		c.Timeout = opts.Timeout
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, name, EngineXeLaTeX, EngineChrome)
	}
}

// withTimeout applies d, or DefaultTimeout when d is zero.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}
