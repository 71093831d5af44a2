package main

// Notes:
// - loadEnvConfig: we test every variable across the 3 tiers. An invalid
//   timeout is ignored, not an error.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that env values override the config file and
//   empty values leave it alone.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-recipefmt/internal/config"
)

// isolateEnv clears every variable the CLI reads so the host environment
// cannot leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
	for _, name := range []string{"OPENAI_API_KEY", "OPENROUTER_API_KEY", "ANTHROPIC_API_KEY", "NO_COLOR"} {
		t.Setenv(name, "")
	}
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("Tier 1 - Essential", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("RECIPEFMT_CONFIG", "/path/to/config.yaml")
		t.Setenv("RECIPEFMT_API_KEY", "sk-test")
		t.Setenv("RECIPEFMT_PROVIDER", "anthropic")
		t.Setenv("RECIPEFMT_MODEL", "claude-haiku-4-5")
		t.Setenv("RECIPEFMT_TIMEOUT", "2m")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "/path/to/config.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.APIKey != "sk-test" {
			t.Errorf("APIKey = %q", cfg.APIKey)
		}
		if cfg.Provider != "anthropic" || cfg.Model != "claude-haiku-4-5" {
			t.Errorf("Provider/Model = %q/%q", cfg.Provider, cfg.Model)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
		}
	})

	t.Run("Tier 2 - Output", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("RECIPEFMT_FORMAT", "md")
		t.Setenv("RECIPEFMT_OUTPUT", "out/{title}.md")
		t.Setenv("RECIPEFMT_PDF_ENGINE", "chrome")
		t.Setenv("RECIPEFMT_LOG_LEVEL", "debug")

		cfg := loadEnvConfig()

		if cfg.Format != "md" || cfg.Output != "out/{title}.md" {
			t.Errorf("Format/Output = %q/%q", cfg.Format, cfg.Output)
		}
		if cfg.PDFEngine != "chrome" || cfg.LogLevel != "debug" {
			t.Errorf("PDFEngine/LogLevel = %q/%q", cfg.PDFEngine, cfg.LogLevel)
		}
	})

	t.Run("Tier 3 - Extended", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("RECIPEFMT_BASE_URL", "http://localhost:8080/v1")
		t.Setenv("RECIPEFMT_PAGE_SIZE", "a4")
		t.Setenv("RECIPEFMT_FONT", "TeX Gyre Pagella")
		t.Setenv("RECIPEFMT_ASSETS", "/srv/assets")

		cfg := loadEnvConfig()

		if cfg.BaseURL != "http://localhost:8080/v1" || cfg.PageSize != "a4" {
			t.Errorf("BaseURL/PageSize = %q/%q", cfg.BaseURL, cfg.PageSize)
		}
		if cfg.Font != "TeX Gyre Pagella" || cfg.Assets != "/srv/assets" {
			t.Errorf("Font/Assets = %q/%q", cfg.Font, cfg.Assets)
		}
	})

	t.Run("invalid timeout is ignored", func(t *testing.T) {
		isolateEnv(t)
		for _, v := range []string{"soon", "-5s", "0s"} {
			t.Setenv("RECIPEFMT_TIMEOUT", v)
			if got := loadEnvConfig().Timeout; got != 0 {
				t.Errorf("RECIPEFMT_TIMEOUT=%q gave %v, want 0", v, got)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("RECIPEFMT_APIKEY", "oops")
	t.Setenv("RECIPEFMT_MODEL", "gpt-4o")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "RECIPEFMT_APIKEY") {
		t.Errorf("missing warning for RECIPEFMT_APIKEY: %q", buf.String())
	}
	if strings.Contains(buf.String(), "RECIPEFMT_MODEL") {
		t.Errorf("known variable reported: %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Model.Name = "from-file"
	cfg.Typeset.Font = "File Font"

	applyEnvConfig(&envConfig{Model: "from-env", PDFEngine: "chrome"}, cfg)

	if cfg.Model.Name != "from-env" {
		t.Errorf("Model.Name = %q, want from-env", cfg.Model.Name)
	}
	if cfg.Typeset.Engine != "chrome" {
		t.Errorf("Typeset.Engine = %q, want chrome", cfg.Typeset.Engine)
	}
	if cfg.Typeset.Font != "File Font" {
		t.Errorf("Typeset.Font = %q, empty env value must not override", cfg.Typeset.Font)
	}
}

// ---------------------------------------------------------------------------
// TestResolveAPIKey - Provider variable fallback
// ---------------------------------------------------------------------------

func TestResolveAPIKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := config.DefaultConfig()
	cfg.Model.Provider = "anthropic"
	if got := resolveAPIKey(cfg); got != "sk-ant" {
		t.Errorf("resolveAPIKey() = %q, want provider variable", got)
	}

	cfg.Model.APIKey = "sk-explicit"
	if got := resolveAPIKey(cfg); got != "sk-explicit" {
		t.Errorf("resolveAPIKey() = %q, want configured key", got)
	}

	cfg.Model.APIKey = ""
	cfg.Model.Provider = "openai"
	if got := resolveAPIKey(cfg); got != "" {
		t.Errorf("resolveAPIKey() = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestLoadDotEnv - .env file loading
// ---------------------------------------------------------------------------

func TestLoadDotEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("RECIPEFMT_MODEL", "already-set")
	// An empty variable still counts as set for godotenv.
	_ = os.Unsetenv("RECIPEFMT_FONT")

	path := filepath.Join(t.TempDir(), ".env")
	content := "RECIPEFMT_FONT=Dotenv Font\nRECIPEFMT_MODEL=from-dotenv\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv("RECIPEFMT_FONT"); got != "Dotenv Font" {
		t.Errorf("RECIPEFMT_FONT = %q", got)
	}
	if got := os.Getenv("RECIPEFMT_MODEL"); got != "already-set" {
		t.Errorf("RECIPEFMT_MODEL = %q, .env must not override the environment", got)
	}

	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file: error = %v, want nil", err)
	}
	if err := loadDotEnv(""); err != nil {
		t.Errorf("empty path: error = %v, want nil", err)
	}
}
