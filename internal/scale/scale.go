// Package scale multiplies a recipe's quantities by a yield factor.
package scale

import (
	"github.com/alnah/go-recipefmt/internal/measure"
	"github.com/alnah/go-recipefmt/recipe"
)

// Recipe scales r in place by factor and returns it. Ingredient quantities
// become Snap(q*factor). In instruction text only spans whose unit measures
// volume, weight or count are multiplied; lengths such as pan sizes are left
// alone. The factor is validated by the caller.
//
// With a factor of 1 quantities are only snapped and text is not touched.
func Recipe(r *recipe.Recipe, factor float64) *recipe.Recipe {
	for i := range r.Ingredients {
		r.Ingredients[i].Quantity = measure.Snap(r.Ingredients[i].Quantity * factor)
	}
	if factor == 1 {
		return r
	}
	for i := range r.Instructions {
		r.Instructions[i].Text = Text(r.Instructions[i].Text, factor)
	}
	return r
}

// Text multiplies scalable inline quantities of s by factor, scaling both
// ends of ranges. Everything except the numbers is preserved, including the
// unit spelling and the spacing before it.
func Text(s string, factor float64) string {
	return measure.ReplaceQuantities(s, func(sp measure.Span) (string, bool) {
		if !sp.Unit.Scalable() {
			return "", false
		}
		q := measure.Format(sp.Quantity * factor)
		if q == "" {
			return "", false
		}
		if sp.HasRange {
			upper := measure.Format(sp.UpperQuantity * factor)
			if upper == "" {
				return "", false
			}
			q += sp.RangeSep + upper
		}
		return q + sp.Space + sp.UnitText, true
	})
}
