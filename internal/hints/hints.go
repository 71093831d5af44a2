// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-recipefmt/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// APIKeyEnv maps model providers to the environment variable holding their key.
var APIKeyEnv = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	// Detect CI environment
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	// Suggest ROD_NO_SANDBOX for container/CI environments
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	// Suggest ROD_BROWSER_BIN if not set
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForEngineNotFound returns a hint for a missing typesetting engine.
func ForEngineNotFound(engine string) string {
	switch strings.ToLower(engine) {
	case "xelatex", "":
		return format("install TeX Live (xelatex) or use --pdf-engine chrome")
	case "chrome":
		return format("install Chrome/Chromium or set ROD_BROWSER_BIN")
	}
	return ""
}

// ForEngineFailed returns a hint for a typesetting run that exited with errors.
func ForEngineFailed() string {
	return format("run with -f tex to inspect the generated source")
}

// ForAPIKey returns a hint naming the variable that holds the provider's key.
func ForAPIKey(provider string) string {
	env, ok := APIKeyEnv[strings.ToLower(provider)]
	if !ok {
		env = APIKeyEnv["openai"]
	}
	return format("set " + env + " (or RECIPEFMT_API_KEY) in the environment or a .env file")
}

// ForSchemaValidation returns a hint for model output that failed validation.
func ForSchemaValidation() string {
	return format("retry, or pick a stronger model with --model")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for slow models or sites, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/recipefmt/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/recipefmt) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/recipefmt/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns a hint for output paths that cannot be written.
// Missing directories are created, so the parent is either a file or read-only.
func ForOutputDirectory() string {
	return format("check that the output path's parent is a writable directory")
}

// ForFormat returns a hint listing the supported output formats.
func ForFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("supported formats: " + strings.Join(available, ", "))
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
