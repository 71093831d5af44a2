package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// runConfigCmd prints the effective configuration as YAML. The API key is
// masked.
func runConfigCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
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
	if err := cfg.Validate(); err != nil {
		return reportError(env, err)
	}

	out, err := cfg.Marshal()
	if err != nil {
		return reportError(env, fmt.Errorf("encoding config: %w", err))
	}
	_, _ = env.Stdout.Write(out)
	return ExitSuccess
}
