package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-recipefmt/internal/config"
	"github.com/alnah/go-recipefmt/internal/hints"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // RECIPEFMT_CONFIG: config file name or path
	APIKey     string        // RECIPEFMT_API_KEY: key for the selected provider
	Provider   string        // RECIPEFMT_PROVIDER: openai, openrouter, anthropic
	Model      string        // RECIPEFMT_MODEL: model name
	Timeout    time.Duration // RECIPEFMT_TIMEOUT: whole-run timeout

	// Tier 2 - Output
	Format    string // RECIPEFMT_FORMAT: json, md, tex, pdf, html
	Output    string // RECIPEFMT_OUTPUT: output path, may contain {title}
	PDFEngine string // RECIPEFMT_PDF_ENGINE: xelatex, chrome
	LogLevel  string // RECIPEFMT_LOG_LEVEL: debug, info, warn, error

	// Tier 3 - Extended
	BaseURL  string // RECIPEFMT_BASE_URL: provider endpoint override
	PageSize string // RECIPEFMT_PAGE_SIZE: letter, a4, legal
	Font     string // RECIPEFMT_FONT: main LaTeX font
	Assets   string // RECIPEFMT_ASSETS: custom template/style directory
}

// knownEnvVars lists valid RECIPEFMT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"RECIPEFMT_CONFIG":   true,
	"RECIPEFMT_API_KEY":  true,
	"RECIPEFMT_PROVIDER": true,
	"RECIPEFMT_MODEL":    true,
	"RECIPEFMT_TIMEOUT":  true,
	// Tier 2 - Output
	"RECIPEFMT_FORMAT":     true,
	"RECIPEFMT_OUTPUT":     true,
	"RECIPEFMT_PDF_ENGINE": true,
	"RECIPEFMT_LOG_LEVEL":  true,
	// Tier 3 - Extended
	"RECIPEFMT_BASE_URL":  true,
	"RECIPEFMT_PAGE_SIZE": true,
	"RECIPEFMT_FONT":      true,
	"RECIPEFMT_ASSETS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized RECIPEFMT_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("RECIPEFMT_CONFIG"),
		APIKey:     os.Getenv("RECIPEFMT_API_KEY"),
		Provider:   os.Getenv("RECIPEFMT_PROVIDER"),
		Model:      os.Getenv("RECIPEFMT_MODEL"),
		// Tier 2
		Format:    os.Getenv("RECIPEFMT_FORMAT"),
		Output:    os.Getenv("RECIPEFMT_OUTPUT"),
		PDFEngine: os.Getenv("RECIPEFMT_PDF_ENGINE"),
		LogLevel:  os.Getenv("RECIPEFMT_LOG_LEVEL"),
		// Tier 3
		BaseURL:  os.Getenv("RECIPEFMT_BASE_URL"),
		PageSize: os.Getenv("RECIPEFMT_PAGE_SIZE"),
		Font:     os.Getenv("RECIPEFMT_FONT"),
		Assets:   os.Getenv("RECIPEFMT_ASSETS"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("RECIPEFMT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RECIPEFMT_* variables.
// Helps catch typos like RECIPEFMT_APIKEY instead of RECIPEFMT_API_KEY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "RECIPEFMT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// CLI flags are applied later via mergeFlags, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	// Tier 1 - Model
	set(&cfg.Model.APIKey, env.APIKey)
	set(&cfg.Model.Provider, env.Provider)
	set(&cfg.Model.Name, env.Model)

	// Tier 2 - Output
	set(&cfg.Output.Format, env.Format)
	set(&cfg.Output.Path, env.Output)
	set(&cfg.Typeset.Engine, env.PDFEngine)
	set(&cfg.Log.Level, env.LogLevel)

	// Tier 3 - Extended
	set(&cfg.Model.BaseURL, env.BaseURL)
	set(&cfg.Page.Size, env.PageSize)
	set(&cfg.Typeset.Font, env.Font)
	set(&cfg.Assets.BasePath, env.Assets)
}

// resolveAPIKey returns the configured key, falling back to the
// provider's conventional variable (OPENAI_API_KEY and so on).
func resolveAPIKey(cfg *config.Config) string {
	if cfg.Model.APIKey != "" {
		return cfg.Model.APIKey
	}
	name, ok := hints.APIKeyEnv[strings.ToLower(cfg.Model.Provider)]
	if !ok {
		return ""
	}
	return os.Getenv(name)
}

// loadDotEnv loads variables from path without overriding ones already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
