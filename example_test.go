package recipefmt_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-recipefmt"
)

// Example re-renders an exported recipe document as Markdown, doubling the
// quantities. A valid recipe document needs no collaborator.
func Example() {
	f, err := recipefmt.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	opts := recipefmt.DefaultRenderOptions()
	opts.Format = recipefmt.FormatMarkdown
	opts.Scale = 2

	res, err := f.Process(context.Background(), recipefmt.Input{
		Text: `{
			"title": "Scrambled Eggs",
			"ingredients": ["2 eggs", "1/2 tbsp butter, soft"],
			"instructions": ["Melt the butter.", "Stir in the eggs."]
		}`,
		Options: opts,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(string(res.Payload))
	// Output:
	// # Scrambled Eggs
	//
	// ## Ingredients
	//
	// * 4 eggs
	// * 1 tbsp butter, soft
	//
	// ## Instructions
	//
	// 1. Melt the butter.
	// 2. Stir in the eggs.
}

// ExampleResolveFormat shows format selection from an output path.
func ExampleResolveFormat() {
	for _, path := range []string{"cake.pdf", "cake.md", "cake.txt", ""} {
		f, unknown, _ := recipefmt.ResolveFormat("", path)
		fmt.Printf("%q -> %s (unknown extension: %v)\n", path, f, unknown)
	}
	// Output:
	// "cake.pdf" -> pdf (unknown extension: false)
	// "cake.md" -> md (unknown extension: false)
	// "cake.txt" -> json (unknown extension: true)
	// "" -> json (unknown extension: false)
}
