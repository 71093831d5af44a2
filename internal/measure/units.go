package measure

import (
	"regexp"
	"sort"
	"strings"
)

// Kind classifies a unit by what it measures.
type Kind int

const (
	Volume Kind = iota + 1
	Weight
	Length
	Count
)

func (k Kind) String() string {
	switch k {
	case Volume:
		return "volume"
	case Weight:
		return "weight"
	case Length:
		return "length"
	case Count:
		return "count"
	default:
		return "unknown"
	}
}

// Unit is a canonical unit of measure.
type Unit struct {
	Abbr string
	Kind Kind
	// Informal units (pinch, clove, can) have no abbreviation; their
	// canonical form is the spelling as written, lowercased.
	Informal bool
}

// Canonical returns the normalized spelling of written, a form of u.
func (u Unit) Canonical(written string) string {
	if u.Informal {
		return strings.ToLower(strings.Join(strings.Fields(written), " "))
	}
	return u.Abbr
}

// Scalable reports whether quantities in this unit change with the recipe
// yield. Pan and cut dimensions do not.
func (u Unit) Scalable() bool {
	return u.Kind != Length
}

// unitEntry lists every accepted spelling of one unit. Single-letter forms are
// matched case-sensitively in free text so "180 C" is never read as cups.
type unitEntry struct {
	unit  Unit
	forms []string
}

var unitTable = []unitEntry{
	{Unit{Abbr: "c", Kind: Volume}, []string{"cup", "cups", "c"}},
	{Unit{Abbr: "tbsp", Kind: Volume}, []string{"tablespoon", "tablespoons", "tbsp", "tbsps", "tbs", "tbl", "tbls"}},
	{Unit{Abbr: "tsp", Kind: Volume}, []string{"teaspoon", "teaspoons", "tsp", "tsps"}},
	{Unit{Abbr: "fl oz", Kind: Volume}, []string{"fluid ounce", "fluid ounces", "fl oz", "fl. oz"}},
	{Unit{Abbr: "pt", Kind: Volume}, []string{"pint", "pints", "pt", "pts"}},
	{Unit{Abbr: "qt", Kind: Volume}, []string{"quart", "quarts", "qt", "qts"}},
	{Unit{Abbr: "gal", Kind: Volume}, []string{"gallon", "gallons", "gal", "gals"}},
	{Unit{Abbr: "ml", Kind: Volume}, []string{"milliliter", "milliliters", "millilitre", "millilitres", "ml"}},
	{Unit{Abbr: "L", Kind: Volume}, []string{"liter", "liters", "litre", "litres", "l", "L"}},
	{Unit{Abbr: "lb", Kind: Weight}, []string{"pound", "pounds", "lb", "lbs"}},
	{Unit{Abbr: "oz", Kind: Weight}, []string{"ounce", "ounces", "oz"}},
	{Unit{Abbr: "g", Kind: Weight}, []string{"gram", "grams", "gramme", "grammes", "g", "gm", "gms"}},
	{Unit{Abbr: "kg", Kind: Weight}, []string{"kilogram", "kilograms", "kilo", "kilos", "kg", "kgs"}},
	{Unit{Abbr: "mg", Kind: Weight}, []string{"milligram", "milligrams", "mg"}},
	{Unit{Abbr: "in", Kind: Length}, []string{"inch", "inches", "in"}},
	{Unit{Abbr: "cm", Kind: Length}, []string{"centimeter", "centimeters", "centimetre", "centimetres", "cm"}},
	{Unit{Abbr: "mm", Kind: Length}, []string{"millimeter", "millimeters", "millimetre", "millimetres", "mm"}},
	{Unit{Abbr: "ft", Kind: Length}, []string{"foot", "feet", "ft"}},
	{Unit{Abbr: "ea", Kind: Count}, []string{"each", "ea"}},

	// Informal counts keep the spelling they were written with.
	{Unit{Abbr: "pinch", Kind: Count, Informal: true}, []string{"pinch", "pinches"}},
	{Unit{Abbr: "dash", Kind: Count, Informal: true}, []string{"dash", "dashes"}},
	{Unit{Abbr: "clove", Kind: Count, Informal: true}, []string{"clove", "cloves"}},
	{Unit{Abbr: "can", Kind: Count, Informal: true}, []string{"can", "cans"}},
	{Unit{Abbr: "stick", Kind: Count, Informal: true}, []string{"stick", "sticks"}},
	{Unit{Abbr: "package", Kind: Count, Informal: true}, []string{"package", "packages", "pkg", "pkgs"}},
	{Unit{Abbr: "slice", Kind: Count, Informal: true}, []string{"slice", "slices"}},
	{Unit{Abbr: "sprig", Kind: Count, Informal: true}, []string{"sprig", "sprigs"}},
	{Unit{Abbr: "bunch", Kind: Count, Informal: true}, []string{"bunch", "bunches"}},
}

var (
	// byForm maps a lowercased, space-collapsed spelling to its unit.
	byForm = buildFormIndex()

	// leadingUnit matches a unit at the start of an ingredient line remainder,
	// case-insensitively, ending at a word boundary.
	leadingUnit = regexp.MustCompile(`^(?i:` + unitAlternation(false) + `)\b`)
)

func buildFormIndex() map[string]Unit {
	idx := make(map[string]Unit)
	for _, e := range unitTable {
		for _, f := range e.forms {
			idx[strings.ToLower(f)] = e.unit
		}
	}
	return idx
}

// unitAlternation returns a regexp alternation of every unit spelling, longest
// first so "tablespoons" wins over "tablespoon" and "tbsp" over "tbs". When
// caseSensitiveLetters is set, single-letter spellings are emitted outside any
// case-insensitive group.
func unitAlternation(caseSensitiveLetters bool) string {
	var forms []string
	for _, e := range unitTable {
		forms = append(forms, e.forms...)
	}
	sort.SliceStable(forms, func(i, j int) bool { return len(forms[i]) > len(forms[j]) })

	seen := make(map[string]bool)
	parts := make([]string, 0, len(forms))
	for _, f := range forms {
		if !caseSensitiveLetters {
			f = strings.ToLower(f)
		}
		if seen[f] {
			continue
		}
		seen[f] = true

		pattern := formPattern(f)
		if caseSensitiveLetters && len(f) > 1 {
			pattern = `(?i:` + pattern + `)`
		}
		parts = append(parts, pattern)
	}
	return strings.Join(parts, "|")
}

// formPattern quotes a spelling and lets its internal spaces match any run of
// whitespace.
func formPattern(form string) string {
	words := strings.Fields(form)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}

// Lookup resolves a unit field value ("Tablespoons", "fl. oz", "L") to its
// canonical unit. Matching is case-insensitive and ignores surrounding and
// repeated whitespace.
func Lookup(token string) (Unit, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(token), " "))
	u, ok := byForm[key]
	return u, ok
}

// LeadingUnit matches a known unit at the start of s and returns it along with
// the number of bytes consumed. The unit must be followed by whitespace, a
// comma or the end of s; a single abbreviation period is consumed with it
// ("1 c. flour").
func LeadingUnit(s string) (Unit, int) {
	loc := leadingUnit.FindStringIndex(s)
	if loc == nil {
		return Unit{}, 0
	}
	u, ok := Lookup(s[:loc[1]])
	if !ok {
		return Unit{}, 0
	}

	n := loc[1]
	if strings.HasPrefix(s[n:], ".") {
		n++
	}
	if n < len(s) && s[n] != ' ' && s[n] != '\t' && s[n] != ',' {
		return Unit{}, 0
	}
	return u, n
}
