// Package recipefmt turns unstructured recipes into a structured, validated
// form and renders them as JSON, Markdown, LaTeX, HTML or PDF.
//
// # Quick Start
//
// Create a formatter with a language-model collaborator and process a page:
//
//	collab, err := llm.New(llm.Config{Provider: "openai", APIKey: key})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := recipefmt.New(recipefmt.WithCollaborator(collab))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := recipefmt.DefaultRenderOptions()
//	opts.Format = recipefmt.FormatMarkdown
//	opts.Normalize = true
//	res, err := f.Process(ctx, recipefmt.Input{Source: "https://example.com/cake", Options: opts})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(res.Payload)
//
// # Pipeline
//
// Process runs these stages in order:
//
//  1. Acquire: fetch the URL, or use the given text
//  2. Extract: ask the collaborator for recipe JSON (skipped when the text
//     already is a valid recipe document)
//  3. Validate: the single schema gate, failures wrap ErrSchemaValidation
//  4. Transform: tips filter, normalize, group, clean, revise, scale
//  5. Render: the selected format; PDF compiles the LaTeX or HTML
//     rendering with the configured typesetting engine
//
// Grouping never fails the pipeline: when labels cannot be assigned the
// recipe continues ungrouped and a warning is logged.
//
// # Errors
//
// Errors wrap the sentinels in errors.go; use errors.Is to classify them.
package recipefmt
