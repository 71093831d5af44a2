// Package revise applies a free-text revision directive to a recipe through a
// language-model collaborator and validates what comes back.
package revise

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-recipefmt/recipe"
)

var (
	// ErrEmptyDirective indicates a blank revision directive.
	ErrEmptyDirective = errors.New("revision directive is empty")

	// ErrRevisionFailed indicates the collaborator call itself failed.
	ErrRevisionFailed = errors.New("revision failed")

	// ErrNoClient indicates revision was requested without a collaborator.
	ErrNoClient = errors.New("no revision client configured")
)

// CleanDirective is the built-in style guide applied by the clean step.
const CleanDirective = `Rewrite the recipe in a clean, consistent house style:
- Title: short and descriptive, in title case, without marketing words.
- Ingredients: lowercase names, quantities as numbers, abbreviated units, preparation details in the note.
- Instructions: one action per step, imperative mood, complete sentences, no numbering in the text.
- Keep every ingredient, quantity and step; do not invent or drop anything.
- Keep existing group labels unchanged.`

// Client sends the canonical JSON of a recipe plus a directive and returns
// the JSON of the revised recipe.
type Client interface {
	Revise(ctx context.Context, current []byte, directive string) ([]byte, error)
}

// Reviser applies revision directives.
type Reviser struct {
	client Client
}

// New creates a Reviser backed by client.
func New(client Client) *Reviser {
	return &Reviser{client: client}
}

// Revise returns the recipe produced by applying directive to r. The result
// replaces r entirely; revisions are not guaranteed to be minimal. When the
// response omits the source it keeps the source of r. The response must be
// a valid recipe with no unknown top-level fields.
func (rv *Reviser) Revise(ctx context.Context, r *recipe.Recipe, directive string) (*recipe.Recipe, error) {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return nil, ErrEmptyDirective
	}
	if rv.client == nil {
		return nil, ErrNoClient
	}

	payload, err := recipe.Encode(r)
	if err != nil {
		return nil, err
	}

	resp, err := rv.client.Revise(ctx, payload, directive)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRevisionFailed, err)
	}

	revised, err := recipe.DecodeStrict(resp)
	if err != nil {
		return nil, fmt.Errorf("decoding revised recipe: %w", err)
	}
	if err := revised.Validate(); err != nil {
		return nil, fmt.Errorf("revised recipe: %w", err)
	}
	if revised.Source == "" {
		revised.Source = r.Source
	}
	return revised, nil
}
