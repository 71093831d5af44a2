package typeset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-recipefmt/internal/render"
)

// Printer renders a local HTML file to PDF. It exists so the Chrome engine
// can be tested without a browser.
type Printer interface {
	PrintFile(ctx context.Context, path string, page *render.PageSettings) ([]byte, error)
}

// Chrome prints HTML sources through a headless Chromium driven by go-rod.
type Chrome struct {
	Binary  string
	Page    *render.PageSettings
	Timeout time.Duration
	Printer Printer
}

// NewChrome creates a Chrome engine backed by a real browser.
func NewChrome(page *render.PageSettings) *Chrome {
	return &Chrome{Page: page}
}

// Name implements Engine.
func (c *Chrome) Name() string { return EngineChrome }

// Source implements Engine.
func (c *Chrome) Source() SourceKind { return SourceHTML }

// Compile implements Engine.
func (c *Chrome) Compile(ctx context.Context, source string) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	var pdf []byte
	err := WithWorkDir("recipefmt-html-*", func(dir string) error {
		path := filepath.Join(dir, jobName+".html")
		if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
			return fmt.Errorf("%w: writing source: %v", ErrWorkDir, err)
		}

		data, err := c.printer().PrintFile(ctx, path, c.Page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("%s: %w", c.Name(), ctxErr)
			}
			return &EngineError{Engine: c.Name(), ExitCode: -1, Err: err}
		}
		if len(data) == 0 {
			return &EngineError{Engine: c.Name(), ExitCode: -1, Err: ErrMissingDocument}
		}
		pdf = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func (c *Chrome) printer() Printer {
	if c.Printer != nil {
		return c.Printer
	}
	return &rodPrinter{binary: c.Binary}
}

// rodPrinter launches a browser per call and tears it down afterwards.
type rodPrinter struct {
	binary string
}

// PrintFile opens path in headless Chrome and prints it to PDF.
func (p *rodPrinter) PrintFile(ctx context.Context, path string, page *render.PageSettings) ([]byte, error) {
	l := launcher.New().Context(ctx)

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := p.binary
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		if strings.Contains(err.Error(), "executable file not found") {
			return nil, fmt.Errorf("%w: %v", ErrEngineNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	tab, err := browser.Page(proto.TargetCreateTarget{URL: fileURL(path)})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer func() { _ = tab.Close() }()

	if err := tab.WaitLoad(); err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	reader, err := tab.PDF(printOptions(page))
	if err != nil {
		return nil, fmt.Errorf("printing page: %w", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return data, nil
}

// printOptions maps page settings onto Chrome's print parameters.
func printOptions(page *render.PageSettings) *proto.PagePrintToPDF {
	width, height := page.Dimensions()
	margin := page.MarginInches()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

func floatPtr(f float64) *float64 { return &f }

// LookPath reports the browser executable Chrome would launch, if any.
func LookPath() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, true
	}
	return launcher.LookPath()
}

// Compile-time interface checks.
var (
	_ Engine  = (*Chrome)(nil)
	_ Printer = (*rodPrinter)(nil)
)

// fileURL turns a local path into a file URL. Drive-letter paths gain the
// leading slash a URL path needs, and reserved characters are escaped.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
