package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pipelineFlags holds the transform switches.
type pipelineFlags struct {
	normalize bool
	group     bool
	groupHint string
	tips      bool
	clean     bool
	scale     float64
	revision  string
}

// modelFlags holds collaborator selection flags.
type modelFlags struct {
	provider string
	name     string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// typesetFlags holds PDF engine and asset flags.
type typesetFlags struct {
	engine    string
	font      string
	assetPath string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	format   string
	timeout  string
	pipeline pipelineFlags
	model    modelFlags
	page     pageFlags
	typeset  typesetFlags

	// changed reports whether a flag was given on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every pipeline stage")
}

// addPipelineFlags adds transform flags to a FlagSet.
func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.BoolVarP(&f.normalize, "normalize", "n", false, "canonical unit abbreviations and fractions")
	fs.BoolVarP(&f.group, "group", "g", false, "split ingredients and steps into components")
	fs.StringVar(&f.groupHint, "group-hint", "", "hint for grouping (e.g. \"separate the sauce\")")
	fs.BoolVarP(&f.tips, "tips", "t", false, "keep tips from the source")
	fs.BoolVarP(&f.clean, "clean", "c", false, "rewrite in the built-in house style")
	fs.Float64VarP(&f.scale, "scale", "s", 1, "multiply quantities by factor")
	fs.StringVarP(&f.revision, "revise", "r", "", "free-text revision (e.g. \"make it vegan\")")
}

// addModelFlags adds collaborator flags to a FlagSet.
func addModelFlags(fs *flag.FlagSet, f *modelFlags) {
	fs.StringVarP(&f.provider, "engine", "e", "", "model provider: openai, openrouter, anthropic")
	fs.StringVarP(&f.name, "model", "m", "", "model name")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addTypesetFlags adds PDF engine and asset flags to a FlagSet.
func addTypesetFlags(fs *flag.FlagSet, f *typesetFlags) {
	fs.StringVar(&f.engine, "pdf-engine", "", "PDF engine: xelatex, chrome")
	fs.StringVar(&f.font, "font", "", "main font for LaTeX output")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the template and stylesheet")
}

// parseConvertFlags parses convert flags and returns the positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &convertFlags{changed: fs.Changed}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file, may contain {title}")
	fs.StringVarP(&f.format, "format", "f", "", "output format: json, md, tex, pdf, html")
	fs.StringVar(&f.timeout, "timeout", "", "whole-run timeout (e.g., 90s, 5m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPipelineFlags(fs, &f.pipeline)
	addModelFlags(fs, &f.model)
	addPageFlags(fs, &f.page)
	addTypesetFlags(fs, &f.typeset)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
