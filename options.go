package recipefmt

import (
	"fmt"
	"math"
)

// RenderOptions selects the transforms and the output format for one
// recipe. The zero value is not valid; start from DefaultRenderOptions.
type RenderOptions struct {
	Format    Format
	Normalize bool    // canonical unit abbreviations and snapped fractions
	Group     bool    // assign component labels
	GroupHint string  // free-text hint for the group assigner
	Tips      bool    // keep tips extracted from the source
	Clean     bool    // apply the built-in style-guide revision
	Scale     float64 // multiply quantities, 1 leaves them unchanged
	Revision  string  // free-text revision directive, empty for none
	Model     string  // overrides the collaborator's model for extraction
}

// DefaultRenderOptions returns JSON output with every transform off.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Format: FormatJSON, Scale: 1}
}

// Validate checks the format and the scale factor. A zero scale is
// rejected; callers that want "unscaled" use 1.
func (o RenderOptions) Validate() error {
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if o.Scale <= 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidScale, o.Scale)
	}
	return nil
}

// scaled reports whether the options change quantities.
func (o RenderOptions) scaled() bool {
	return o.Scale != 1
}
