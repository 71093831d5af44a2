package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipefmt <command> [flags] [args]")
	fmt.Fprintln(w, "       recipefmt <url|file|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Extract, transform and render a recipe (default)")
	fmt.Fprintln(w, "  doctor     Check PDF engines and API keys")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'recipefmt help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipefmt convert <source> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn a recipe page or text file into a structured recipe and render it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source    URL, text file, recipe .json file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file; {title} expands to the recipe slug")
	fmt.Fprintln(w, "  -f, --format <s>          Format: json, md, tex, pdf, html (default: from -o, else json)")
	fmt.Fprintln(w, "      --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --timeout <d>         Whole-run timeout (e.g., 90s, 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "  -n, --normalize           Canonical unit abbreviations and fractions")
	fmt.Fprintln(w, "  -g, --group               Split ingredients and steps into components")
	fmt.Fprintln(w, "      --group-hint <s>      Hint for grouping")
	fmt.Fprintln(w, "  -t, --tips                Keep tips from the source")
	fmt.Fprintln(w, "  -c, --clean               Rewrite in the built-in house style")
	fmt.Fprintln(w, "  -r, --revise <s>          Free-text revision (e.g. \"make it vegan\")")
	fmt.Fprintln(w, "  -s, --scale <f>           Multiply quantities by factor (default: 1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Model:")
	fmt.Fprintln(w, "  -e, --engine <s>          Provider: openai, openrouter, anthropic")
	fmt.Fprintln(w, "  -m, --model <s>           Model name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf-engine <s>      Engine: xelatex, chrome (default: xelatex)")
	fmt.Fprintln(w, "      --font <s>            Main font for LaTeX output")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding templates/ and styles/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every pipeline stage")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RECIPEFMT_API_KEY, OPENAI_API_KEY, OPENROUTER_API_KEY, ANTHROPIC_API_KEY")
	fmt.Fprintln(w, "  RECIPEFMT_CONFIG, RECIPEFMT_PROVIDER, RECIPEFMT_MODEL, RECIPEFMT_TIMEOUT")
	fmt.Fprintln(w, "  RECIPEFMT_FORMAT, RECIPEFMT_OUTPUT, RECIPEFMT_PDF_ENGINE, RECIPEFMT_LOG_LEVEL")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  recipefmt https://example.com/cake -n -g -o cake.md")
	fmt.Fprintln(w, "  recipefmt cake.json -s 2 -o '{title}.pdf'")
	fmt.Fprintln(w, "  recipefmt notes.txt -r \"make it vegan\" -f tex")
}

// runHelp prints help for a command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: recipefmt doctor [--config <name>] [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check PDF engines, API keys and the environment.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: recipefmt config [--config <name>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration after defaults, file and environment are merged.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: recipefmt version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: recipefmt help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
