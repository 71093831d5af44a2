// Package recipe defines the structured recipe exchanged between every stage of
// recipefmt: extraction, normalization, scaling, grouping, revision and
// rendering.
//
// A Recipe is only trusted after Validate succeeds. Decoding is lenient about
// shape (ingredients may be plain strings or grouped blocks) so rendered JSON
// can be fed back in as a source; Encode always produces the canonical
// structured form.
package recipe

import (
	"fmt"
	"strings"
)

// Ungrouped is the display label of the implicit bucket holding items with no
// group label.
const Ungrouped = "Ungrouped"

// Recipe is a structured recipe.
type Recipe struct {
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`
	Notes        string        `json:"notes,omitempty"`
	Source       string        `json:"source,omitempty"`
	Tips         []string      `json:"tips,omitempty"`
}

// Ingredient is one ingredient line. A zero Quantity means "no quantity"
// ("salt to taste").
type Ingredient struct {
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Name     string  `json:"name"`
	Note     string  `json:"note,omitempty"`
	Group    string  `json:"group,omitempty"`
}

// Instruction is one preparation step.
type Instruction struct {
	Text  string `json:"text"`
	Group string `json:"group,omitempty"`
}

// Validate is the validation gate every recipe passes before it is
// transformed or rendered.
func (r *Recipe) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: recipe is nil", ErrInvalidRecipe)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrMissingTitle)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrNoIngredients)
	}
	if len(r.Instructions) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrNoInstructions)
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: ingredient %d: %w", ErrInvalidRecipe, i+1, ErrEmptyIngredient)
		}
	}
	for i, ins := range r.Instructions {
		if strings.TrimSpace(ins.Text) == "" {
			return fmt.Errorf("%w: instruction %d: %w", ErrInvalidRecipe, i+1, ErrEmptyInstruction)
		}
	}
	return nil
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	c.Instructions = append([]Instruction(nil), r.Instructions...)
	c.Tips = append([]string(nil), r.Tips...)
	return &c
}

// Grouped reports whether any ingredient or instruction carries a group label.
func (r *Recipe) Grouped() bool {
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Group) != "" {
			return true
		}
	}
	for _, ins := range r.Instructions {
		if strings.TrimSpace(ins.Group) != "" {
			return true
		}
	}
	return false
}

// ClearGroups removes every group label.
func (r *Recipe) ClearGroups() {
	for i := range r.Ingredients {
		r.Ingredients[i].Group = ""
	}
	for i := range r.Instructions {
		r.Instructions[i].Group = ""
	}
}
