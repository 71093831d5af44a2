package measure

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// inlinePattern finds "quantity [sep quantity] unit" spans in free text.
// Multi-letter unit spellings are case-insensitive; single letters are not.
var inlinePattern = regexp.MustCompile(
	`(` + quantityPattern + `)` +
		`(?:(\s*(?:-|–|to)\s*)(` + quantityPattern + `))?` +
		`(\s*)` +
		`(` + unitAlternation(true) + `)\b`,
)

// Span is one inline quantity found in free text.
type Span struct {
	// Start and End are byte offsets of the whole span in the source text.
	Start, End int

	Quantity float64
	// UpperQuantity is set for ranges such as "2-3 cups".
	UpperQuantity float64
	HasRange      bool
	// RangeSep is the text between the two quantities of a range.
	RangeSep string
	// Space is the whitespace between the last quantity and the unit.
	Space    string
	UnitText string
	Unit     Unit
}

// FindQuantities returns every inline quantity span in text, in order.
// Matches glued to a preceding letter, digit, '.', '/' or digit-comma are
// skipped, as are words that merely start with a unit spelling ("cupcake").
func FindQuantities(text string) []Span {
	var spans []Span
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(text, -1) {
		if gluedToPrevious(text, m[0]) {
			continue
		}

		q, err := Parse(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		unitText := text[m[10]:m[11]]
		u, ok := Lookup(unitText)
		if !ok {
			continue
		}

		sp := Span{
			Start:    m[0],
			End:      m[1],
			Quantity: q,
			Space:    text[m[8]:m[9]],
			UnitText: unitText,
			Unit:     u,
		}
		if m[4] >= 0 {
			upper, err := Parse(text[m[6]:m[7]])
			if err != nil {
				continue
			}
			sp.HasRange = true
			sp.RangeSep = text[m[4]:m[5]]
			sp.UpperQuantity = upper
		}
		spans = append(spans, sp)
	}
	return spans
}

// gluedToPrevious reports whether the match at start continues a token
// before it: a word, another number, or the decimal part of "2,5".
func gluedToPrevious(text string, start int) bool {
	if start == 0 {
		return false
	}
	r, size := utf8.DecodeLastRuneInString(text[:start])
	if r == ',' {
		prev, _ := utf8.DecodeLastRuneInString(text[:start-size])
		return unicode.IsDigit(prev)
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '/' || r == '⁄'
}

// ReplaceQuantities rewrites each inline quantity span with the result of fn.
// When fn returns false the span is left untouched. Text outside the spans is
// preserved byte for byte.
func ReplaceQuantities(text string, fn func(Span) (string, bool)) string {
	spans := FindQuantities(text)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, sp := range spans {
		repl, ok := fn(sp)
		if !ok {
			continue
		}
		b.WriteString(text[last:sp.Start])
		b.WriteString(repl)
		last = sp.End
	}
	b.WriteString(text[last:])
	return b.String()
}
