package main

// Notes:
// - runDoctor: engine discovery goes through env.LookPath and
//   env.BrowserPath, so tests decide which engines exist.
// - A missing selected engine is an error; a missing alternative is a
//   warning. A missing API key is always a warning.
// - Tests use t.Setenv() which prevents t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-recipefmt/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	tests := []struct {
		name        string
		engine      string
		xelatex     bool
		chrome      bool
		apiKey      string
		wantStatus  string
		wantMessage string
	}{
		{"ready", "xelatex", true, true, "sk-test", "ready", ""},
		{"missing key warns", "xelatex", true, true, "", "warnings", "OPENAI_API_KEY"},
		{"missing alternative warns", "xelatex", true, false, "sk-test", "warnings", "Chrome/Chromium not found"},
		{"missing selected xelatex", "xelatex", false, true, "sk-test", "errors", "xelatex not found"},
		{"missing selected chrome", "chrome", true, false, "sk-test", "errors", "Chrome/Chromium not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, _ := testEnv(t, nil)
			t.Setenv("OPENAI_API_KEY", tt.apiKey)
			env.LookPath = func(file string) (string, error) {
				if tt.xelatex && file == "xelatex" {
					return "/bin/true", nil
				}
				return "", errors.New("not found")
			}
			env.BrowserPath = func() (string, bool) {
				if !tt.chrome {
					return "", false
				}
				return os.Args[0], true
			}

			cfg := config.DefaultConfig()
			cfg.Typeset.Engine = tt.engine
			result := runDoctor(cfg, env)

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (errors %v, warnings %v)",
					result.Status, tt.wantStatus, result.Errors, result.Warnings)
			}
			if tt.wantMessage != "" {
				all := strings.Join(append(result.Errors, result.Warnings...), "\n")
				if !strings.Contains(all, tt.wantMessage) {
					t.Errorf("messages missing %q:\n%s", tt.wantMessage, all)
				}
			}
			if len(result.Engines) != 2 {
				t.Fatalf("Engines = %d, want 2", len(result.Engines))
			}
		})
	}
}

func TestRunDoctor_ChromeFound(t *testing.T) {
	env, _, _ := testEnv(t, nil)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	browser, err := os.Executable()
	if err != nil {
		t.Skip("no executable path")
	}
	env.BrowserPath = func() (string, bool) { return browser, true }

	cfg := config.DefaultConfig()
	cfg.Typeset.Engine = "chrome"
	result := runDoctor(cfg, env)

	var chrome *engineInfo
	for i := range result.Engines {
		if result.Engines[i].Name == "chrome" {
			chrome = &result.Engines[i]
		}
	}
	if chrome == nil || !chrome.Found || !chrome.Selected {
		t.Fatalf("chrome engine = %+v, want found and selected", chrome)
	}
	if chrome.Path != browser {
		t.Errorf("Path = %q, want %q", chrome.Path, browser)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output formats and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	env, stdout, _ := testEnv(t, nil)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("RECIPEFMT_PROVIDER", "anthropic")
	env.LookPath = func(string) (string, error) { return "/bin/true", nil }

	code := run([]string{"recipefmt", "doctor", "--json"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stdout: %s", code, stdout.String())
	}

	var got doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if got.Model.Provider != "anthropic" || !got.Model.KeySet {
		t.Errorf("Model = %+v, want anthropic with key", got.Model)
	}
	if got.Model.KeyEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("KeyEnv = %q", got.Model.KeyEnv)
	}
}

func TestRunDoctorCmd_Text(t *testing.T) {
	env, stdout, _ := testEnv(t, nil)

	code := run([]string{"recipefmt", "doctor"}, env)
	if code != ExitGeneral {
		t.Errorf("exit = %d, want %d with no engine installed", code, ExitGeneral)
	}
	for _, want := range []string{"recipefmt doctor", "PDF engines", "[ERROR] xelatex (selected)", "NOT READY"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsContainer - Container detection override
// ---------------------------------------------------------------------------

func TestIsContainer(t *testing.T) {
	t.Setenv("RECIPEFMT_CONTAINER", "1")

	got, hint := isContainer()
	if !got || hint != "RECIPEFMT_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", got, hint)
	}
}
