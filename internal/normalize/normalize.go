// Package normalize rewrites a recipe's units and quantities into one
// canonical notation: abbreviated units and ladder fractions.
package normalize

import (
	"github.com/alnah/go-recipefmt/internal/measure"
	"github.com/alnah/go-recipefmt/recipe"
)

// Recipe normalizes r in place and returns it. Ingredient units are mapped to
// their canonical abbreviation, ingredient quantities snap to the fraction
// ladder, and quantity-unit spans inside instruction text are rewritten.
// Unknown units and text without recognizable spans are left as they are.
// Applying Recipe twice yields the same result as applying it once.
func Recipe(r *recipe.Recipe) *recipe.Recipe {
	for i := range r.Ingredients {
		ing := &r.Ingredients[i]
		ing.Unit = Unit(ing.Unit)
		ing.Quantity = measure.Snap(ing.Quantity)
	}
	for i := range r.Instructions {
		r.Instructions[i].Text = Text(r.Instructions[i].Text)
	}
	return r
}

// Unit returns the canonical abbreviation of u, or u unchanged when it is not
// a known unit. Informal units such as "Cloves" are only lowercased.
func Unit(u string) string {
	if unit, ok := measure.Lookup(u); ok {
		return unit.Canonical(u)
	}
	return u
}

// Text rewrites every "quantity unit" span of s as "formatted-quantity abbr",
// keeping ranges as ranges.
func Text(s string) string {
	return measure.ReplaceQuantities(s, func(sp measure.Span) (string, bool) {
		q := measure.Format(sp.Quantity)
		if q == "" {
			return "", false
		}
		if sp.HasRange {
			upper := measure.Format(sp.UpperQuantity)
			if upper == "" {
				return "", false
			}
			q += sp.RangeSep + upper
		}
		return q + " " + sp.Unit.Canonical(sp.UnitText), true
	})
}
