// Package fetch retrieves recipe pages over HTTP and reduces them to the
// text handed to the extraction collaborator.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrRetrieval indicates the page could not be fetched.
var ErrRetrieval = errors.New("retrieval failed")

// Defaults applied by NewHTTPFetcher.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; recipefmt/1.0)"
)

// Fetcher returns the recipe text found at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages with resty. Status codes of 400 and above are
// failures.
type HTTPFetcher struct {
	client *resty.Client
}

// Options configures an HTTPFetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &HTTPFetcher{client: client}
}

// Fetch downloads url and returns its recipe text (see PageText).
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrRetrieval, url, ctxErr)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrRetrieval, url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s: HTTP %d", ErrRetrieval, url, resp.StatusCode())
	}

	text, err := PageText(resp.String())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRetrieval, url, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: page has no text", ErrRetrieval, url)
	}
	return text, nil
}

// Compile-time interface check.
var _ Fetcher = (*HTTPFetcher)(nil)
