package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-recipefmt"
	"github.com/alnah/go-recipefmt/internal/config"
	"github.com/alnah/go-recipefmt/internal/fetch"
	"github.com/alnah/go-recipefmt/internal/fileutil"
	"github.com/alnah/go-recipefmt/internal/hints"
	"github.com/alnah/go-recipefmt/internal/llm"
	"github.com/alnah/go-recipefmt/internal/logging"
	"github.com/alnah/go-recipefmt/internal/typeset"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrReadSource     = errors.New("failed to read source")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// File permission constants.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// runConvert orchestrates one conversion: settings, source, pipeline, write.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	source, err := resolveSource(positionalArgs)
	if err != nil {
		return err
	}

	cfg, envCfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	logger, err := newLogger(env.Stderr, flags.common, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, outPath, err := buildRenderOptions(flags, cfg, logger)
	if err != nil {
		return err
	}

	input, err := readSource(source, env)
	if err != nil {
		return err
	}
	input.Options = opts

	formatter, keyErr, err := buildFormatter(cfg, timeout, logger, env)
	if err != nil {
		return err
	}

	start := env.Now()
	res, err := formatter.Process(ctx, input)
	if err != nil {
		if errors.Is(err, recipefmt.ErrNoCollaborator) && keyErr != nil {
			return fmt.Errorf("%w: %w", err, keyErr)
		}
		return err
	}

	return writeOutput(res, outPath, env, logger, start)
}

// resolveSource returns the single positional argument.
func resolveSource(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: pass a URL, a file or - for stdin", ErrNoInput)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one source, got %d", ErrTooManyArgs, len(args))
	}
}

// resolveConfig loads the config file named by flag or RECIPEFMT_CONFIG and
// applies environment overrides on top of it.
func resolveConfig(name string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// mergeFlags applies explicitly set CLI flags over config values.
// Boolean switches only turn features on. The format flag is resolved in
// buildRenderOptions so an unknown name reports ErrUnsupportedFormat.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	// Output
	set(&cfg.Output.Path, flags.output)

	// Model
	set(&cfg.Model.Provider, flags.model.provider)
	set(&cfg.Model.Name, flags.model.name)

	// Pipeline
	cfg.Pipeline.Normalize = cfg.Pipeline.Normalize || flags.pipeline.normalize
	cfg.Pipeline.Group = cfg.Pipeline.Group || flags.pipeline.group
	cfg.Pipeline.Tips = cfg.Pipeline.Tips || flags.pipeline.tips
	cfg.Pipeline.Clean = cfg.Pipeline.Clean || flags.pipeline.clean
	set(&cfg.Pipeline.GroupHint, flags.pipeline.groupHint)

	// Page
	set(&cfg.Page.Size, flags.page.size)
	set(&cfg.Page.Orientation, flags.page.orientation)
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Typeset
	set(&cfg.Typeset.Engine, flags.typeset.engine)
	set(&cfg.Typeset.Font, flags.typeset.font)
	set(&cfg.Assets.BasePath, flags.typeset.assetPath)
}

// resolveTimeout picks the --timeout flag, then RECIPEFMT_TIMEOUT.
// Zero means the run is not bounded as a whole.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q (use e.g. 90s or 5m)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// newLogger builds the stderr logger. -v and -q override the configured
// level.
func newLogger(w io.Writer, f commonFlags, cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	switch {
	case f.verbose:
		level = "debug"
	case f.quiet:
		level = "error"
	}
	logger, err := logging.New(w, logging.Options{Level: level, Color: isTerminal(w)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}
	return logger, nil
}

// isTerminal reports whether w is a character device and NO_COLOR is unset.
func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// buildRenderOptions resolves the output format and path and the pipeline
// switches. Binary formats without an output path go to {title}.<ext>.
func buildRenderOptions(flags *convertFlags, cfg *config.Config, logger *zap.Logger) (recipefmt.RenderOptions, string, error) {
	explicit := cfg.Output.Format
	if flags.format != "" {
		explicit = flags.format
	}
	format, unknownExt, err := recipefmt.ResolveFormat(explicit, cfg.Output.Path)
	if err != nil {
		return recipefmt.RenderOptions{}, "", fmt.Errorf("%w%s", err, hints.ForFormat(formatNames()))
	}
	if unknownExt {
		logger.Warn("unknown output extension, writing JSON", zap.String("path", cfg.Output.Path))
	}

	outPath := cfg.Output.Path
	if outPath == "" && format.Binary() {
		outPath = fileutil.TitlePlaceholder + format.Extension()
	}

	scale := cfg.Pipeline.Scale
	if scale == 0 {
		scale = 1
	}
	if flags.changed("scale") {
		scale = flags.pipeline.scale
	}

	revision := flags.pipeline.revision
	if flags.changed("revise") && strings.TrimSpace(revision) == "" {
		return recipefmt.RenderOptions{}, "", recipefmt.ErrEmptyDirective
	}

	opts := recipefmt.RenderOptions{
		Format:    format,
		Normalize: cfg.Pipeline.Normalize,
		Group:     cfg.Pipeline.Group,
		GroupHint: cfg.Pipeline.GroupHint,
		Tips:      cfg.Pipeline.Tips,
		Clean:     cfg.Pipeline.Clean,
		Scale:     scale,
		Revision:  revision,
	}
	if err := opts.Validate(); err != nil {
		return recipefmt.RenderOptions{}, "", err
	}
	return opts, outPath, nil
}

func formatNames() []string {
	formats := recipefmt.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// readSource turns the positional argument into pipeline input. URLs are
// fetched by the formatter; "-" reads stdin.
func readSource(source string, env *Environment) (recipefmt.Input, error) {
	if fileutil.IsURL(source) {
		return recipefmt.Input{Source: source}, nil
	}

	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(env.Stdin)
	} else {
		data, err = os.ReadFile(source) // #nosec G304 -- source path is user-provided
	}
	if err != nil {
		return recipefmt.Input{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return recipefmt.Input{}, fmt.Errorf("%w: %s is empty", ErrReadSource, source)
	}
	return recipefmt.Input{Text: string(data), Source: source}, nil
}

// buildFormatter wires the engine, fetcher and collaborator from cfg. A
// missing API key is not fatal: it is returned as keyErr and only reported
// when a stage needs the collaborator.
func buildFormatter(cfg *config.Config, timeout time.Duration, logger *zap.Logger, env *Environment) (f *recipefmt.Formatter, keyErr error, err error) {
	page := &recipefmt.PageSettings{
		Size:        strings.ToLower(cfg.Page.Size),
		Orientation: strings.ToLower(cfg.Page.Orientation),
		Margin:      cfg.Page.Margin,
	}

	engine, err := env.NewEngine(cfg.Typeset.Engine, typeset.Options{
		Binary:  cfg.Typeset.Binary,
		Page:    page,
		Timeout: cfg.TypesetTimeout(),
	})
	if err != nil {
		return nil, nil, err
	}

	opts := []recipefmt.Option{
		recipefmt.WithEngine(engine),
		recipefmt.WithLogger(logger),
		recipefmt.WithTimeout(timeout),
		recipefmt.WithPage(page),
		recipefmt.WithMainFont(cfg.Typeset.Font),
		recipefmt.WithAssetPath(cfg.Assets.BasePath),
		recipefmt.WithFetcher(fetch.NewHTTPFetcher(fetch.Options{
			Timeout:   cfg.FetchTimeout(),
			UserAgent: cfg.Fetch.UserAgent,
		})),
	}

	collab, err := llm.New(llm.Config{
		Provider:    cfg.Model.Provider,
		Model:       cfg.Model.Name,
		APIKey:      resolveAPIKey(cfg),
		BaseURL:     cfg.Model.BaseURL,
		Timeout:     cfg.ModelTimeout(),
		MaxAttempts: cfg.Model.MaxAttempts,
	})
	switch {
	case err == nil:
		opts = append(opts, recipefmt.WithCollaborator(collab))
	case errors.Is(err, llm.ErrNoAPIKey):
		keyErr = fmt.Errorf("%w%s", err, hints.ForAPIKey(cfg.Model.Provider))
	default:
		return nil, nil, err
	}

	f, err = recipefmt.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return f, keyErr, nil
}

// writeOutput writes the payload to the output path, expanding {title}, or
// to stdout when no path is set.
func writeOutput(res *recipefmt.Result, path string, env *Environment, logger *zap.Logger, start time.Time) error {
	if path == "" {
		if _, err := env.Stdout.Write(res.Payload); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	path = fileutil.ExpandTitle(path, res.Recipe.Title)
	if err := fileutil.WriteFileAtomic(path, res.Payload, filePermissions); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	logger.Info("wrote recipe",
		zap.String("path", path),
		zap.String("format", string(res.Format)),
		zap.Duration("elapsed", env.Now().Sub(start).Round(time.Millisecond)),
	)
	return nil
}
