package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-recipefmt/internal/config"
	"github.com/alnah/go-recipefmt/internal/hints"
	"github.com/alnah/go-recipefmt/internal/typeset"
)

// versionTimeout bounds "<engine> --version" probes.
const versionTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Engines  []engineInfo `json:"engines"`
	Model    modelInfo    `json:"model"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// engineInfo holds PDF engine detection results.
type engineInfo struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
}

// modelInfo holds model provider and API key detection results.
type modelInfo struct {
	Provider string `json:"provider"`
	KeyEnv   string `json:"key_env"`
	KeySet   bool   `json:"key_set"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	name := fs.String("config", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, _, err := resolveConfig(*name, env)
	if err != nil {
		return reportError(env, err)
	}

	result := runDoctor(cfg, env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	selected := strings.ToLower(cfg.Typeset.Engine)
	if selected == "" {
		selected = typeset.EngineXeLaTeX
	}
	checkXeLaTeX(result, cfg, selected == typeset.EngineXeLaTeX, env)
	checkChrome(result, selected == typeset.EngineChrome, env)
	checkModel(result, cfg)
	checkEnvironment(result, selected == typeset.EngineChrome)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// report files a missing engine as an error when it is the selected one
// and as a warning otherwise.
func (r *doctorResult) report(selected bool, msg string) {
	if selected {
		r.Errors = append(r.Errors, msg)
		return
	}
	r.Warnings = append(r.Warnings, msg)
}

// checkXeLaTeX locates the xelatex binary on PATH.
func checkXeLaTeX(result *doctorResult, cfg *config.Config, selected bool, env *Environment) {
	info := engineInfo{Name: typeset.EngineXeLaTeX, Selected: selected}
	defer func() { result.Engines = append(result.Engines, info) }()

	bin := cfg.Typeset.Binary
	if bin == "" || !selected {
		bin = typeset.EngineXeLaTeX
	}
	path, err := env.LookPath(bin)
	if err != nil {
		result.report(selected, "xelatex not found. Install TeX Live or use --pdf-engine chrome")
		return
	}

	info.Found = true
	info.Path = path
	info.Version = commandVersion(path)
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, selected bool, env *Environment) {
	info := engineInfo{Name: typeset.EngineChrome, Selected: selected}
	defer func() { result.Engines = append(result.Engines, info) }()

	path, found := env.BrowserPath()
	if !found {
		result.report(selected, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
		return
	}
	if _, err := os.Stat(path); err != nil {
		result.report(selected, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	info.Found = true
	info.Path = path
	info.Version = commandVersion(path)
}

// checkModel reports whether an API key is available for the provider.
// Without one only recipe .json sources can be rendered.
func checkModel(result *doctorResult, cfg *config.Config) {
	provider := strings.ToLower(cfg.Model.Provider)
	result.Model = modelInfo{
		Provider: provider,
		KeyEnv:   hints.APIKeyEnv[provider],
		KeySet:   resolveAPIKey(cfg) != "",
	}
	if !result.Model.KeySet {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No API key for %s. Set %s or RECIPEFMT_API_KEY", provider, result.Model.KeyEnv))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, chromeSelected bool) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Warn if container/CI without sandbox disabled
	if chromeSelected && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("RECIPEFMT_CONTAINER") == "1" {
		return true, "RECIPEFMT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for engine work dirs.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "recipefmt-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// commandVersion returns the first line of "<path> --version", or "" when
// the probe fails.
func commandVersion(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path comes from PATH lookup
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "recipefmt doctor")
	fmt.Fprintln(w)

	// Engines section
	fmt.Fprintln(w, "PDF engines")
	for _, e := range r.Engines {
		mark := ""
		if e.Selected {
			mark = " (selected)"
		}
		switch {
		case e.Found && e.Version != "":
			fmt.Fprintf(w, "  [OK] %s%s: %s (%s)\n", e.Name, mark, e.Path, e.Version)
		case e.Found:
			fmt.Fprintf(w, "  [OK] %s%s: %s\n", e.Name, mark, e.Path)
		case e.Selected:
			fmt.Fprintf(w, "  [ERROR] %s%s: not found\n", e.Name, mark)
		default:
			fmt.Fprintf(w, "  [WARN] %s: not found\n", e.Name)
		}
	}
	fmt.Fprintln(w)

	// Model section
	fmt.Fprintln(w, "Model")
	if r.Model.KeySet {
		fmt.Fprintf(w, "  [OK] %s: API key set\n", r.Model.Provider)
	} else {
		fmt.Fprintf(w, "  [WARN] %s: no API key (%s)\n", r.Model.Provider, r.Model.KeyEnv)
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}
