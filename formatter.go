package recipefmt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-recipefmt/internal/assets"
	"github.com/alnah/go-recipefmt/internal/fetch"
	"github.com/alnah/go-recipefmt/internal/fileutil"
	"github.com/alnah/go-recipefmt/internal/group"
	"github.com/alnah/go-recipefmt/internal/llm"
	"github.com/alnah/go-recipefmt/internal/normalize"
	"github.com/alnah/go-recipefmt/internal/render"
	"github.com/alnah/go-recipefmt/internal/revise"
	"github.com/alnah/go-recipefmt/internal/scale"
	"github.com/alnah/go-recipefmt/internal/typeset"
	"github.com/alnah/go-recipefmt/recipe"
)

// Collaborator contracts, re-exported so callers can supply their own.
type (
	ExtractRequest  = llm.ExtractRequest
	GroupAssignment = group.Assignment
	GroupAssigner   = group.Assigner
	RevisionClient  = revise.Client
	Fetcher         = fetch.Fetcher
	Engine          = typeset.Engine
	PageSettings    = render.PageSettings
)

// Extractor turns page text into recipe JSON.
type Extractor interface {
	Extract(ctx context.Context, text string, req ExtractRequest) ([]byte, error)
}

// Compile-time interface implementation checks.
var (
	_ Extractor      = (*llm.Collaborator)(nil)
	_ GroupAssigner  = (*llm.Collaborator)(nil)
	_ RevisionClient = (*llm.Collaborator)(nil)
	_ Fetcher        = (*fetch.HTTPFetcher)(nil)
	_ Engine         = (*typeset.XeLaTeX)(nil)
	_ Engine         = (*typeset.Chrome)(nil)
)

// Formatter runs the recipe pipeline: acquire, extract, validate,
// transform and render. Create with New; a Formatter is safe for
// sequential reuse.
type Formatter struct {
	extractor Extractor
	assigner  GroupAssigner
	reviser   RevisionClient
	fetcher   Fetcher
	engine    Engine
	logger    *zap.Logger
	timeout   time.Duration
	page      *PageSettings
	mainFont  string
	assetPath string

	latex *render.LaTeX
	html  *render.HTML
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCollaborator uses c for extraction, grouping and revision.
func WithCollaborator(c *llm.Collaborator) Option {
	return func(f *Formatter) {
		f.extractor = c
		f.assigner = c
		f.reviser = c
	}
}

// WithExtractor sets the extraction collaborator.
func WithExtractor(e Extractor) Option {
	return func(f *Formatter) { f.extractor = e }
}

// WithGroupAssigner sets the collaborator that proposes group labels.
func WithGroupAssigner(a GroupAssigner) Option {
	return func(f *Formatter) { f.assigner = a }
}

// WithReviser sets the collaborator that applies revision directives.
func WithReviser(c RevisionClient) Option {
	return func(f *Formatter) { f.reviser = c }
}

// WithFetcher sets the page fetcher used for URL sources.
func WithFetcher(fe Fetcher) Option {
	return func(f *Formatter) { f.fetcher = fe }
}

// WithEngine sets the typesetting engine used for PDF output.
func WithEngine(e Engine) Option {
	return func(f *Formatter) { f.engine = e }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(f *Formatter) { f.logger = l }
}

// WithTimeout bounds a whole Process call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Formatter) { f.timeout = d }
}

// WithPage sets the page size, orientation and margin.
func WithPage(p *PageSettings) Option {
	return func(f *Formatter) { f.page = p }
}

// WithMainFont sets the document font for LaTeX output.
func WithMainFont(name string) Option {
	return func(f *Formatter) { f.mainFont = name }
}

// WithAssetPath overrides the embedded template and stylesheet with files
// from dir. Missing files fall back to the embedded versions.
func WithAssetPath(dir string) Option {
	return func(f *Formatter) { f.assetPath = dir }
}

// New creates a Formatter. Returns an error if the page settings are
// invalid or the assets cannot be loaded.
func New(opts ...Option) (*Formatter, error) {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.fetcher == nil {
		f.fetcher = fetch.NewHTTPFetcher(fetch.Options{})
	}
	if f.engine == nil {
		f.engine = typeset.NewXeLaTeX("")
	}
	if err := f.page.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(f.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
	}
	theme, err := assets.LoadTheme(resolver, assets.DefaultTheme)
	if err != nil {
		return nil, err
	}

	f.latex, err = render.NewLaTeX(theme.Template, f.page, f.mainFont)
	if err != nil {
		return nil, fmt.Errorf("initializing LaTeX renderer: %w", err)
	}
	f.html = render.NewHTML(theme.Stylesheet)
	return f, nil
}

// Input is one recipe to process. Exactly one of Recipe, Text or Source is
// used, in that order of preference. Source may be a URL, in which case it
// is fetched and recorded in the recipe.
type Input struct {
	Recipe  *recipe.Recipe
	Text    string
	Source  string
	Options RenderOptions
}

// Result holds the final recipe and its rendering.
type Result struct {
	Recipe  *recipe.Recipe
	Payload []byte
	Format  Format
}

// Process runs the full pipeline for in. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (f *Formatter) Process(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	opts := in.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, _ := ParseFormat(string(opts.Format))

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	r := in.Recipe
	if r == nil {
		r, err = f.load(ctx, in, opts)
		if err != nil {
			return nil, err
		}
	}

	r, err = f.Transform(ctx, r, opts)
	if err != nil {
		return nil, err
	}

	payload, err := f.Render(ctx, r, format)
	if err != nil {
		return nil, err
	}
	return &Result{Recipe: r, Payload: payload, Format: format}, nil
}

// load acquires text for in and extracts a recipe from it.
func (f *Formatter) load(ctx context.Context, in Input, opts RenderOptions) (*recipe.Recipe, error) {
	text := in.Text
	isURL := fileutil.IsURL(in.Source)
	if text == "" && isURL {
		f.logger.Debug("fetching page", zap.String("url", in.Source))
		var err error
		text, err = f.fetcher.Fetch(ctx, in.Source)
		if err != nil {
			return nil, err
		}
	}
	if text == "" {
		return nil, ErrEmptyInput
	}

	r, err := f.Extract(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	if isURL {
		r.Source = in.Source
	}
	return r, nil
}

// Extract turns text into a validated recipe. Text that already decodes
// into a valid recipe document is used as is.
func (f *Formatter) Extract(ctx context.Context, text string, opts RenderOptions) (*recipe.Recipe, error) {
	if r, ok := asRecipe(text); ok {
		f.logger.Debug("input is a recipe document, skipping extraction")
		return r, nil
	}
	if f.extractor == nil {
		return nil, fmt.Errorf("%w: extraction", ErrNoCollaborator)
	}

	f.logger.Debug("extracting recipe", zap.Int("chars", len(text)))
	data, err := f.extractor.Extract(ctx, text, ExtractRequest{Tips: opts.Tips, Model: opts.Model})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	r, err := recipe.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	return r, nil
}

// asRecipe reports whether text is a JSON recipe document that passes the
// validation gate.
func asRecipe(text string) (*recipe.Recipe, bool) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	r, err := recipe.Decode(data)
	if err != nil || r.Validate() != nil {
		return nil, false
	}
	return r, true
}

// Transform applies the requested transforms to a copy of r, in pipeline
// order: tips filter, normalize, group, clean, revise, scale. r must
// already be valid.
func (f *Formatter) Transform(ctx context.Context, r *recipe.Recipe, opts RenderOptions) (*recipe.Recipe, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r = r.Clone()

	if !opts.Tips {
		r.Tips = nil
	}
	if opts.Normalize {
		f.logger.Debug("normalizing units")
		r = normalize.Recipe(r)
	}
	if opts.Group || r.Grouped() {
		f.logger.Debug("grouping", zap.String("hint", opts.GroupHint))
		r = group.New(f.assigner, f.logger).Group(ctx, r, opts.GroupHint)
	}

	var err error
	if opts.Clean {
		f.logger.Debug("applying clean style")
		if r, err = f.revise(ctx, r, revise.CleanDirective); err != nil {
			return nil, err
		}
	}
	if opts.Revision != "" {
		f.logger.Debug("applying revision", zap.String("directive", opts.Revision))
		if r, err = f.revise(ctx, r, opts.Revision); err != nil {
			return nil, err
		}
	}

	if opts.scaled() {
		f.logger.Debug("scaling", zap.Float64("factor", opts.Scale))
		r = scale.Recipe(r, opts.Scale)
	}
	return r, nil
}

// revise applies one directive and classifies the failure.
func (f *Formatter) revise(ctx context.Context, r *recipe.Recipe, directive string) (*recipe.Recipe, error) {
	if f.reviser == nil {
		return nil, fmt.Errorf("%w: revision", ErrNoCollaborator)
	}
	revised, err := revise.New(f.reviser).Revise(ctx, r, directive)
	switch {
	case err == nil:
		return revised, nil
	case errors.Is(err, ErrEmptyDirective), errors.Is(err, ErrRevision):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
}

// Render produces the payload for format. PDF compiles the rendering the
// engine consumes.
func (f *Formatter) Render(ctx context.Context, r *recipe.Recipe, format Format) ([]byte, error) {
	if format == FormatPDF {
		return f.compile(ctx, r)
	}

	renderer, err := f.renderer(format)
	if err != nil {
		return nil, err
	}
	out, err := renderer.Render(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRendering, err)
	}
	return out, nil
}

func (f *Formatter) compile(ctx context.Context, r *recipe.Recipe) ([]byte, error) {
	src := FormatLaTeX
	if f.engine.Source() == typeset.SourceHTML {
		src = FormatHTML
	}
	source, err := f.Render(ctx, r, src)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("typesetting", zap.String("engine", f.engine.Name()))
	pdf, err := f.engine.Compile(ctx, string(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRendering, err)
	}
	return pdf, nil
}

func (f *Formatter) renderer(format Format) (render.Renderer, error) {
	switch format {
	case FormatJSON:
		return render.JSON{}, nil
	case FormatMarkdown:
		return render.Markdown{}, nil
	case FormatLaTeX:
		return f.latex, nil
	case FormatHTML:
		return f.html, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
