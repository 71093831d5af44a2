package measure_test

import (
	"testing"

	"github.com/alnah/go-recipefmt/internal/measure"
)

// ---------------------------------------------------------------------------
// TestLookup - Unit field resolution
// ---------------------------------------------------------------------------

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token    string
		wantAbbr string
		wantKind measure.Kind
		wantOK   bool
	}{
		{token: "cup", wantAbbr: "c", wantKind: measure.Volume, wantOK: true},
		{token: "Cups", wantAbbr: "c", wantKind: measure.Volume, wantOK: true},
		{token: "Tablespoons", wantAbbr: "tbsp", wantKind: measure.Volume, wantOK: true},
		{token: "tbs", wantAbbr: "tbsp", wantKind: measure.Volume, wantOK: true},
		{token: "teaspoon", wantAbbr: "tsp", wantKind: measure.Volume, wantOK: true},
		{token: "fluid  ounces", wantAbbr: "fl oz", wantKind: measure.Volume, wantOK: true},
		{token: "fl. oz", wantAbbr: "fl oz", wantKind: measure.Volume, wantOK: true},
		{token: "litre", wantAbbr: "L", wantKind: measure.Volume, wantOK: true},
		{token: "l", wantAbbr: "L", wantKind: measure.Volume, wantOK: true},
		{token: "lbs", wantAbbr: "lb", wantKind: measure.Weight, wantOK: true},
		{token: "ounce", wantAbbr: "oz", wantKind: measure.Weight, wantOK: true},
		{token: "grams", wantAbbr: "g", wantKind: measure.Weight, wantOK: true},
		{token: " kilo ", wantAbbr: "kg", wantKind: measure.Weight, wantOK: true},
		{token: "inches", wantAbbr: "in", wantKind: measure.Length, wantOK: true},
		{token: "each", wantAbbr: "ea", wantKind: measure.Count, wantOK: true},
		{token: "pinch", wantAbbr: "pinch", wantKind: measure.Count, wantOK: true},
		{token: "Cloves", wantAbbr: "clove", wantKind: measure.Count, wantOK: true},
		{token: "cans", wantAbbr: "can", wantKind: measure.Count, wantOK: true},
		{token: "pkg", wantAbbr: "package", wantKind: measure.Count, wantOK: true},
		{token: "handful", wantOK: false},
		{token: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			u, ok := measure.Lookup(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.token, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if u.Abbr != tt.wantAbbr || u.Kind != tt.wantKind {
				t.Errorf("Lookup(%q) = {%q, %v}, want {%q, %v}", tt.token, u.Abbr, u.Kind, tt.wantAbbr, tt.wantKind)
			}
		})
	}
}

func TestUnit_Canonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		written string
		want    string
	}{
		{written: "Tablespoons", want: "tbsp"},
		{written: "L", want: "L"},
		{written: "Cloves", want: "cloves"},
		{written: "pinch", want: "pinch"},
		{written: "Sticks", want: "sticks"},
	}

	for _, tt := range tests {
		t.Run(tt.written, func(t *testing.T) {
			t.Parallel()

			u, ok := measure.Lookup(tt.written)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.written)
			}
			if got := u.Canonical(tt.written); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.written, got, tt.want)
			}
		})
	}
}

func TestUnit_Scalable(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"cup", "gram", "each"} {
		u, _ := measure.Lookup(token)
		if !u.Scalable() {
			t.Errorf("%q should be scalable", token)
		}
	}
	for _, token := range []string{"inch", "cm", "feet"} {
		u, _ := measure.Lookup(token)
		if u.Scalable() {
			t.Errorf("%q should not be scalable", token)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLeadingUnit - Unit prefix of an ingredient line
// ---------------------------------------------------------------------------

func TestLeadingUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantAbbr string
		consumed int
	}{
		{name: "long plural", in: "cups flour", wantAbbr: "c", consumed: 4},
		{name: "capitalized abbreviation", in: "Tbsp butter", wantAbbr: "tbsp", consumed: 4},
		{name: "abbreviation with period", in: "c. sugar", wantAbbr: "c", consumed: 2},
		{name: "two word unit", in: "fl oz cream", wantAbbr: "fl oz", consumed: 5},
		{name: "unit then comma", in: "g, sifted", wantAbbr: "g", consumed: 1},
		{name: "unit alone", in: "kg", wantAbbr: "kg", consumed: 2},
		{name: "word starting with unit", in: "garlic cloves", consumed: 0},
		{name: "hyphenated word", in: "in-season tomatoes", consumed: 0},
		{name: "no unit", in: "large eggs", consumed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, n := measure.LeadingUnit(tt.in)
			if n != tt.consumed {
				t.Fatalf("LeadingUnit(%q) consumed %d, want %d", tt.in, n, tt.consumed)
			}
			if n > 0 && u.Abbr != tt.wantAbbr {
				t.Errorf("LeadingUnit(%q) = %q, want %q", tt.in, u.Abbr, tt.wantAbbr)
			}
		})
	}
}
