package fetch_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alnah/go-recipefmt/internal/fetch"
)

const ldPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization","name":"Blog"}</script>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"Page"},
  {"@type":["Recipe","NewsArticle"],
   "name":"Layer Cake",
   "description":"A tall &amp; light cake.",
   "recipeYield":["8","8 servings"],
   "recipeIngredient":["2 cups flour","1 cup butter"],
   "recipeInstructions":[
     {"@type":"HowToSection","name":"Cake","itemListElement":[
       {"@type":"HowToStep","text":"Mix the flour."},
       {"@type":"HowToStep","text":"Bake."}]},
     {"@type":"HowToStep","text":"Frost <b>generously</b>."}
   ]}
]}
</script>
</head><body><p>Ten paragraphs about my summer.</p></body></html>`

// ---------------------------------------------------------------------------
// TestPageText - Recipe text extraction
// ---------------------------------------------------------------------------

func TestPageText_LDJSON(t *testing.T) {
	t.Parallel()

	got, err := fetch.PageText(ldPage)
	if err != nil {
		t.Fatalf("PageText() unexpected error: %v", err)
	}

	want := `Layer Cake

A tall & light cake.

Ingredients:
- 2 cups flour
- 1 cup butter

Instructions:
Cake:
  - Mix the flour.
  - Bake.
- Frost generously.

Yield: 8`
	if got != want {
		t.Errorf("PageText() =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, "summer") {
		t.Error("page body leaked into ld+json text")
	}
}

func TestPageText_InstructionString(t *testing.T) {
	t.Parallel()

	page := `<script type="application/ld+json">{"@type":"Recipe","name":"Toast",
"recipeIngredient":"bread","recipeInstructions":"Toast the bread.\nButter it."}</script>`

	got, err := fetch.PageText(page)
	if err != nil {
		t.Fatalf("PageText() unexpected error: %v", err)
	}
	for _, want := range []string{"- bread", "- Toast the bread.", "- Butter it."} {
		if !strings.Contains(got, want) {
			t.Errorf("PageText() missing %q:\n%s", want, got)
		}
	}
}

func TestPageText_MarkdownFallback(t *testing.T) {
	t.Parallel()

	page := `<html><body><h1>Pancakes</h1><ul><li>1 cup flour</li></ul>
<script type="application/ld+json">{not json}</script></body></html>`

	got, err := fetch.PageText(page)
	if err != nil {
		t.Fatalf("PageText() unexpected error: %v", err)
	}
	if !strings.Contains(got, "# Pancakes") || !strings.Contains(got, "1 cup flour") {
		t.Errorf("PageText() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestHTTPFetcher_Fetch - HTTP retrieval
// ---------------------------------------------------------------------------

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, ldPage)
	}))
	t.Cleanup(srv.Close)

	got, err := fetch.NewHTTPFetcher(fetch.Options{UserAgent: "test-agent"}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "Layer Cake") {
		t.Errorf("Fetch() = %q", got)
	}
	if agent != "test-agent" {
		t.Errorf("User-Agent = %q", agent)
	}
}

func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	t.Parallel()

	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(notFound.Close)

	closed := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name string
		url  string
	}{
		{name: "http 404", url: notFound.URL},
		{name: "connection refused", url: closedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fetch.NewHTTPFetcher(fetch.Options{}).Fetch(context.Background(), tt.url)
			if !errors.Is(err, fetch.ErrRetrieval) {
				t.Errorf("Fetch() error = %v, want ErrRetrieval", err)
			}
		})
	}
}

func TestHTTPFetcher_Fetch_Canceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<p>x</p>")
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fetch.NewHTTPFetcher(fetch.Options{}).Fetch(ctx, srv.URL)
	if !errors.Is(err, fetch.ErrRetrieval) || !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want ErrRetrieval and context.Canceled", err)
	}
}
