package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-recipefmt/internal/group"
	"github.com/alnah/go-recipefmt/internal/revise"
	"github.com/alnah/go-recipefmt/recipe"
)

// ExtractRequest carries the per-call extraction settings.
type ExtractRequest struct {
	Tips  bool   // keep cooking tips found in the text
	Model string // overrides the configured model when set
}

// Collaborator implements extraction, group assignment and revision on top
// of a Completer.
type Collaborator struct {
	completer  Completer
	attempts   int
	retryDelay time.Duration
}

// NewCollaborator wraps completer. attempts below 1 use DefaultMaxAttempts.
func NewCollaborator(completer Completer, attempts int) *Collaborator {
	if attempts < 1 {
		attempts = DefaultMaxAttempts
	}
	return &Collaborator{completer: completer, attempts: attempts, retryDelay: DefaultRetryDelay}
}

// WithRetryDelay sets the first backoff step and returns c.
func (c *Collaborator) WithRetryDelay(d time.Duration) *Collaborator {
	c.retryDelay = d
	return c
}

// Extract turns free recipe text into the JSON of a recipe. The result is
// not validated here.
func (c *Collaborator) Extract(ctx context.Context, text string, req ExtractRequest) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no recipe text", ErrEmptyResponse)
	}
	prompt := extractPrompt(text, req.Tips)
	prompt.Model = req.Model
	return c.completeJSON(ctx, prompt)
}

// Assign implements group.Assigner.
func (c *Collaborator) Assign(ctx context.Context, r *recipe.Recipe, directive string) (*group.Assignment, error) {
	data, err := c.completeJSON(ctx, assignPrompt(r, directive))
	if err != nil {
		return nil, err
	}
	var a group.Assignment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", group.ErrMalformedAssignment, err)
	}
	return &a, nil
}

// Revise implements revise.Client.
func (c *Collaborator) Revise(ctx context.Context, current []byte, directive string) ([]byte, error) {
	return c.completeJSON(ctx, revisePrompt(current, directive))
}

// completeJSON runs the exchange until the reply carries a JSON object, up
// to c.attempts times with exponential backoff.
func (c *Collaborator) completeJSON(ctx context.Context, req Request) ([]byte, error) {
	var lastErr error
	for i := range c.attempts {
		reply, err := c.completer.Complete(ctx, req)
		if err == nil {
			data, jsonErr := ExtractJSON(reply)
			if jsonErr == nil {
				return data, nil
			}
			err = jsonErr
		}
		lastErr = err

		// Don't retry on context cancellation
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if i == c.attempts-1 {
			break
		}

		backoff := c.retryDelay << uint(i)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.attempts == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", c.attempts, lastErr)
}

// ExtractJSON returns the JSON object embedded in a model reply, tolerating
// Markdown code fences and surrounding prose.
func ExtractJSON(reply string) ([]byte, error) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start == -1 || end < start {
		return nil, ErrNoJSON
	}
	data := []byte(reply[start : end+1])
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: reply is not valid JSON", ErrNoJSON)
	}
	return bytes.TrimSpace(data), nil
}

// IsModelError reports whether err came from a collaborator exchange.
func IsModelError(err error) bool {
	return errors.Is(err, ErrRequest) || errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrNoJSON)
}

// Compile-time interface checks.
var (
	_ group.Assigner = (*Collaborator)(nil)
	_ revise.Client  = (*Collaborator)(nil)
)
