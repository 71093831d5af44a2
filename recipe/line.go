package recipe

import (
	"fmt"
	"strings"

	"github.com/alnah/go-recipefmt/internal/measure"
)

// Line reconstructs the display form of an ingredient:
// "quantity unit name, note". Absent parts are omitted and parts are joined
// by single spaces; the comma only appears when a note follows something.
func (i Ingredient) Line() string {
	parts := make([]string, 0, 3)
	if q := measure.Format(i.Quantity); q != "" {
		parts = append(parts, q)
	}
	if u := collapse(i.Unit); u != "" {
		parts = append(parts, u)
	}
	if n := collapse(i.Name); n != "" {
		parts = append(parts, n)
	}

	line := strings.Join(parts, " ")
	note := collapse(i.Note)
	switch {
	case note == "":
		return line
	case line == "":
		return note
	default:
		return line + ", " + note
	}
}

func (i Ingredient) String() string {
	return i.Line()
}

// ParseLine is the inverse of Line for well-formed lines. The leading
// quantity may be an integer, a decimal, a fraction, a mixed number or a
// precomposed fraction glyph. A known unit token directly after the
// quantity is the unit; without a quantity only a measured unit such as
// "tsp" followed by a name is. Anything else belongs to the name. The note
// is everything after the first ", ".
func ParseLine(s string) (Ingredient, error) {
	rest := collapse(s)
	if rest == "" {
		return Ingredient{}, fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyIngredient)
	}

	var ing Ingredient
	if q, n := measure.LeadingQuantity(rest); n > 0 {
		ing.Quantity = q
		rest = strings.TrimSpace(rest[n:])

		if _, n := measure.LeadingUnit(rest); n > 0 {
			ing.Unit = strings.TrimSuffix(strings.TrimSpace(rest[:n]), ".")
			rest = strings.TrimSpace(rest[n:])
		}
	} else if u, n := measure.LeadingUnit(rest); n > 0 && !u.Informal && n < len(rest) && rest[n] == ' ' {
		// "tsp salt": a measured unit without a quantity. Informal units
		// stay in the name so "dash of bitters" keeps its wording.
		ing.Unit = strings.TrimSuffix(rest[:n], ".")
		rest = strings.TrimSpace(rest[n:])
	}

	if name, note, ok := strings.Cut(rest, ", "); ok {
		ing.Name = strings.TrimSpace(name)
		ing.Note = strings.TrimSpace(note)
	} else {
		ing.Name = strings.TrimSpace(strings.TrimPrefix(rest, ","))
	}

	if ing.Name == "" {
		return Ingredient{}, fmt.Errorf("%w: %q: %w", ErrInvalidRecipe, s, ErrEmptyIngredient)
	}
	return ing, nil
}

// collapse trims s and folds internal whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
