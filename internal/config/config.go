// Package config loads the recipefmt YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-recipefmt/internal/fileutil"
	"github.com/alnah/go-recipefmt/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "recipefmt"

// Field length limits.
const (
	MaxNameLength      = 100  // model, provider, font names
	MaxKeyLength       = 512  // API keys
	MaxPathLength      = 4096 // file system paths
	MaxDirectiveLength = 2000 // free-text hints
	MaxDurationLength  = 20   // "90s", "2m30s"
	MaxEnumLength      = 20   // format, engine, size, orientation, level
)

// Config holds every setting the CLI can also take from flags or the
// environment.
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Output   OutputConfig   `yaml:"output"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Page     PageConfig     `yaml:"page"`
	Typeset  TypesetConfig  `yaml:"typeset"`
	Assets   AssetsConfig   `yaml:"assets"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Log      LogConfig      `yaml:"log"`
}

// ModelConfig selects the language-model collaborator.
type ModelConfig struct {
	Provider    string `yaml:"provider"`    // "openai", "openrouter", "anthropic" (default: "openai")
	Name        string `yaml:"name"`        // model name, empty = provider default
	APIKey      string `yaml:"apiKey"`      // prefer the environment for secrets
	BaseURL     string `yaml:"baseURL"`     // empty = provider's public endpoint
	Timeout     string `yaml:"timeout"`     // per request, e.g. "60s"
	MaxAttempts int    `yaml:"maxAttempts"` // 1-10 (default: 3)
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Format string `yaml:"format"` // "json", "md", "tex", "pdf", "html"
	Path   string `yaml:"path"`   // may contain {title}
}

// PipelineConfig enables the optional transforms.
type PipelineConfig struct {
	Normalize bool    `yaml:"normalize"`
	Group     bool    `yaml:"group"`
	GroupHint string  `yaml:"groupHint"`
	Tips      bool    `yaml:"tips"`
	Clean     bool    `yaml:"clean"`
	Scale     float64 `yaml:"scale"` // 0 = unscaled
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.75)
}

// TypesetConfig selects the PDF engine.
type TypesetConfig struct {
	Engine  string `yaml:"engine"`  // "xelatex", "chrome" (default: "xelatex")
	Binary  string `yaml:"binary"`  // engine executable override
	Font    string `yaml:"font"`    // main font for XeLaTeX
	Timeout string `yaml:"timeout"` // per compilation, e.g. "2m"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// FetchConfig tunes page retrieval.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"userAgent"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

var (
	validProviders    = []string{"openai", "openrouter", "anthropic"}
	validFormats      = []string{"json", "md", "markdown", "tex", "latex", "pdf", "html"}
	validEngines      = []string{"xelatex", "chrome"}
	validSizes        = []string{"letter", "a4", "legal"}
	validOrientations = []string{"portrait", "landscape"}
	validLevels       = []string{"debug", "info", "warn", "error"}
)

// Validate checks field lengths, enumerations, durations and numeric ranges.
// Called automatically by LoadConfig, but available for callers who build
// a Config by hand.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"model.provider", c.Model.Provider, MaxEnumLength},
		{"model.name", c.Model.Name, MaxNameLength},
		{"model.apiKey", c.Model.APIKey, MaxKeyLength},
		{"model.baseURL", c.Model.BaseURL, MaxPathLength},
		{"model.timeout", c.Model.Timeout, MaxDurationLength},
		{"output.format", c.Output.Format, MaxEnumLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"pipeline.groupHint", c.Pipeline.GroupHint, MaxDirectiveLength},
		{"page.size", c.Page.Size, MaxEnumLength},
		{"page.orientation", c.Page.Orientation, MaxEnumLength},
		{"typeset.engine", c.Typeset.Engine, MaxEnumLength},
		{"typeset.binary", c.Typeset.Binary, MaxPathLength},
		{"typeset.font", c.Typeset.Font, MaxNameLength},
		{"typeset.timeout", c.Typeset.Timeout, MaxDurationLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"fetch.timeout", c.Fetch.Timeout, MaxDurationLength},
		{"fetch.userAgent", c.Fetch.UserAgent, MaxNameLength * 2},
		{"log.level", c.Log.Level, MaxEnumLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	enums := []struct {
		field string
		value string
		valid []string
	}{
		{"model.provider", c.Model.Provider, validProviders},
		{"output.format", c.Output.Format, validFormats},
		{"page.size", c.Page.Size, validSizes},
		{"page.orientation", c.Page.Orientation, validOrientations},
		{"typeset.engine", c.Typeset.Engine, validEngines},
		{"log.level", c.Log.Level, validLevels},
	}
	for _, e := range enums {
		if err := validateEnum(e.field, e.value, e.valid); err != nil {
			return err
		}
	}

	for field, value := range map[string]string{
		"model.timeout":   c.Model.Timeout,
		"typeset.timeout": c.Typeset.Timeout,
		"fetch.timeout":   c.Fetch.Timeout,
	} {
		if _, err := parseDuration(field, value); err != nil {
			return err
		}
	}

	if c.Model.MaxAttempts < 0 || c.Model.MaxAttempts > 10 {
		return fmt.Errorf("%w: model.maxAttempts: must be between 1 and 10 (0 for the default), got %d", ErrInvalidValue, c.Model.MaxAttempts)
	}
	if s := c.Pipeline.Scale; s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: pipeline.scale: must be a positive number, got %v", ErrInvalidValue, s)
	}
	if m := c.Page.Margin; m != 0 && (m < 0.25 || m > 3) {
		return fmt.Errorf("%w: page.margin: must be between 0.25 and 3 inches, got %.2f", ErrInvalidValue, m)
	}

	return nil
}

// ModelTimeout returns model.timeout, or 0 when unset.
func (c *Config) ModelTimeout() time.Duration {
	d, _ := parseDuration("model.timeout", c.Model.Timeout)
	return d
}

// TypesetTimeout returns typeset.timeout, or 0 when unset.
func (c *Config) TypesetTimeout() time.Duration {
	d, _ := parseDuration("typeset.timeout", c.Typeset.Timeout)
	return d
}

// FetchTimeout returns fetch.timeout, or 0 when unset.
func (c *Config) FetchTimeout() time.Duration {
	d, _ := parseDuration("fetch.timeout", c.Fetch.Timeout)
	return d
}

// Marshal encodes c as YAML, with the API key masked.
func (c *Config) Marshal() ([]byte, error) {
	masked := *c
	if masked.Model.APIKey != "" {
		masked.Model.APIKey = "****"
	}
	return yamlutil.Marshal(masked)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of valid, case-insensitively.
func validateEnum(fieldName, value string, valid []string) error {
	if value == "" {
		return nil
	}
	for _, v := range valid {
		if strings.EqualFold(value, v) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(valid, ", "))
}

func parseDuration(fieldName, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s: %q is not a positive duration", ErrInvalidValue, fieldName, value)
	}
	return d, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Model:    ModelConfig{Provider: "openai", MaxAttempts: 3},
		Output:   OutputConfig{Format: ""},
		Pipeline: PipelineConfig{Scale: 1},
		Page:     PageConfig{Size: "letter", Orientation: "portrait", Margin: 0.75},
		Typeset:  TypesetConfig{Engine: "xelatex"},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/recipefmt/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
