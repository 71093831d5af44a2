package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// run dispatches to a command and returns the process exit code. A first
// argument that names no command is the source of an implicit convert.
func run(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err := loadDotEnv(env.DotEnv); err != nil {
		fmt.Fprintf(env.Stderr, "warning: %v\n", err)
	}

	rest := args[1:]
	switch args[1] {
	case "help", "-h", "--help":
		runHelp(args[2:], env)
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "recipefmt %s\n", Version)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(args[2:], env)
	case "config":
		return runConfigCmd(args[2:], env)
	case "convert":
		rest = args[2:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()
	return runConvertCmd(ctx, rest, env)
}

// runConvertCmd parses convert flags, runs the conversion and reports the
// outcome.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'recipefmt help convert' for usage.")
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		return reportError(env, err)
	}
	return ExitSuccess
}

// reportError prints err with an actionable hint and returns its exit code.
func reportError(env *Environment, err error) int {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
