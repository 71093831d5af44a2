package fetch

import (
	"encoding/json"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageText reduces an HTML page to recipe text. The first schema.org Recipe
// found in an ld+json block wins; otherwise the whole page is converted to
// Markdown.
func PageText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	for _, block := range ldJSONBlocks(doc) {
		if r := findRecipe(block); r != nil {
			if text := r.text(); text != "" {
				return text, nil
			}
		}
	}
	return htmltomarkdown.ConvertString(page)
}

// ldJSONBlocks returns the decoded contents of every
// <script type="application/ld+json"> element, skipping invalid ones.
func ldJSONBlocks(doc *html.Node) []any {
	var blocks []any
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && isLDJSON(n) {
			var raw strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					raw.WriteString(c.Data)
				}
			}
			var v any
			if err := json.Unmarshal([]byte(raw.String()), &v); err == nil {
				blocks = append(blocks, v)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks
}

func isLDJSON(n *html.Node) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "type") {
			return strings.EqualFold(strings.TrimSpace(a.Val), "application/ld+json")
		}
	}
	return false
}

// ldRecipe is the subset of a schema.org Recipe that carries recipe text.
type ldRecipe map[string]any

// findRecipe searches v (object, array, or @graph) for a Recipe object.
func findRecipe(v any) ldRecipe {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if r := findRecipe(item); r != nil {
				return r
			}
		}
	case map[string]any:
		if hasType(t["@type"], "Recipe") {
			return ldRecipe(t)
		}
		if graph, ok := t["@graph"]; ok {
			return findRecipe(graph)
		}
	}
	return nil
}

func hasType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// text renders the recipe as plain sections the extraction prompt can read.
func (r ldRecipe) text() string {
	var b strings.Builder
	if name := str(r["name"]); name != "" {
		b.WriteString(name + "\n\n")
	}
	if desc := str(r["description"]); desc != "" {
		b.WriteString(desc + "\n\n")
	}

	ingredients := strs(r["recipeIngredient"])
	if len(ingredients) == 0 {
		ingredients = strs(r["ingredients"])
	}
	if len(ingredients) > 0 {
		b.WriteString("Ingredients:\n")
		for _, ing := range ingredients {
			b.WriteString("- " + ing + "\n")
		}
		b.WriteString("\n")
	}

	if steps := instructionLines(r["recipeInstructions"], ""); len(steps) > 0 {
		b.WriteString("Instructions:\n")
		for _, s := range steps {
			b.WriteString(s + "\n")
		}
		b.WriteString("\n")
	}

	if y := str(r["recipeYield"]); y != "" {
		b.WriteString("Yield: " + y + "\n")
	}
	return strings.TrimSpace(b.String())
}

// instructionLines flattens recipeInstructions: a string, HowToStep objects,
// or HowToSection objects whose name becomes a heading.
func instructionLines(v any, indent string) []string {
	switch t := v.(type) {
	case string:
		var out []string
		for _, line := range strings.Split(html2text(t), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, indent+"- "+line)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, instructionLines(item, indent)...)
		}
		return out
	case map[string]any:
		if hasType(t["@type"], "HowToSection") {
			var out []string
			if name := str(t["name"]); name != "" {
				out = append(out, indent+name+":")
			}
			return append(out, instructionLines(t["itemListElement"], indent+"  ")...)
		}
		if text := str(t["text"]); text != "" {
			return instructionLines(text, indent)
		}
		return instructionLines(str(t["name"]), indent)
	}
	return nil
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(html2text(t))
	case []any:
		if len(t) > 0 {
			return str(t[0])
		}
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func strs(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s := str(v); s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range items {
		if s := str(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// html2text unescapes entities and drops tags that some sites leave inside
// ld+json strings.
func html2text(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && (n.DataAtom == atom.Br || n.DataAtom == atom.P || n.DataAtom == atom.Li):
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}
