package measure

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FractionSlash is U+2044, used between numerator and denominator.
const FractionSlash = "⁄"

// Tolerance is the maximum distance between a quantity (after rounding to two
// decimals) and a ladder value for the quantity to snap onto the ladder.
const Tolerance = 1.0 / 32

// epsilon absorbs float noise when comparing ladder values.
const epsilon = 1e-9

// fraction is a reduced proper fraction on the culinary ladder.
type fraction struct {
	num, den int
}

func (f fraction) value() float64 {
	return float64(f.num) / float64(f.den)
}

func (f fraction) String() string {
	return strconv.Itoa(f.num) + FractionSlash + strconv.Itoa(f.den)
}

// ladder lists every proper fraction with denominator 2, 3, 4 or 8, reduced
// and sorted by value.
var ladder = buildLadder(2, 3, 4, 8)

func buildLadder(denominators ...int) []fraction {
	seen := make(map[fraction]bool)
	var out []fraction
	for _, d := range denominators {
		for n := 1; n < d; n++ {
			g := gcd(n, d)
			f := fraction{num: n / g, den: d / g}
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].value() < out[j].value() })
	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// vulgarGlyphs maps precomposed Unicode fractions to their value.
var vulgarGlyphs = map[rune]float64{
	'½': 1.0 / 2,
	'⅓': 1.0 / 3,
	'⅔': 2.0 / 3,
	'¼': 1.0 / 4,
	'¾': 3.0 / 4,
	'⅛': 1.0 / 8,
	'⅜': 3.0 / 8,
	'⅝': 5.0 / 8,
	'⅞': 7.0 / 8,
}

// quantityPattern matches one quantity token. Alternatives are ordered so the
// longest form wins: mixed numbers (also hyphenated, "1-1/2"), simple
// fractions, digits followed by a glyph, a lone glyph, comma-grouped
// thousands, decimals, integers.
const quantityPattern = `(?:\d+\s+\d+\s*[/⁄]\s*\d+|\d+-\d+[/⁄]\d+|\d+\s*[/⁄]\s*\d+|\d+\s*[½⅓⅔¼¾⅛⅜⅝⅞]|[½⅓⅔¼¾⅛⅜⅝⅞]|\d{1,3}(?:,\d{3})+|\d*\.\d+|\d+)`

var (
	exactQuantity   = regexp.MustCompile(`^` + quantityPattern + `$`)
	leadingQuantity = regexp.MustCompile(`^` + quantityPattern)
)

// Snap rounds q to two decimals and then moves it onto the fraction ladder
// when it lies within Tolerance of a ladder value. Non-positive and
// non-finite inputs return 0. Snap is idempotent.
func Snap(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}

	r := math.Round(q*100) / 100
	whole := math.Floor(r)
	frac := r - whole

	if whole > 0 && frac <= Tolerance+epsilon {
		return whole
	}
	if 1-frac <= Tolerance+epsilon {
		return whole + 1
	}

	best, bestDist := fraction{}, math.MaxFloat64
	for _, f := range ladder {
		if d := math.Abs(frac - f.value()); d < bestDist {
			best, bestDist = f, d
		}
	}
	if bestDist <= Tolerance+epsilon {
		return whole + best.value()
	}
	return r
}

// Format renders a quantity for display: the snapped value as a whole number,
// a ladder fraction ("1⁄2"), a mixed number ("1 1⁄2"), or at most two
// decimals with trailing zeros trimmed. Zero or absent quantities render as
// the empty string.
func Format(q float64) string {
	s := Snap(q)
	if s <= 0 {
		return ""
	}

	whole := math.Floor(s)
	frac := s - whole
	if frac < epsilon {
		return strconv.FormatFloat(whole, 'f', 0, 64)
	}

	for _, f := range ladder {
		if math.Abs(frac-f.value()) < epsilon {
			if whole == 0 {
				return f.String()
			}
			return strconv.FormatFloat(whole, 'f', 0, 64) + " " + f.String()
		}
	}

	out := strconv.FormatFloat(s, 'f', 2, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}

// Parse reads a single quantity token: "3", "1.5", ".5", "1,500", "1/2",
// "1⁄2", "1 1/2", "1-1/2", "1½" or "½". Surrounding whitespace is ignored.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !exactQuantity.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}

	if last, size := utf8.DecodeLastRuneInString(s); vulgarGlyphs[last] > 0 {
		whole := 0.0
		if prefix := strings.TrimSpace(s[:len(s)-size]); prefix != "" {
			w, err := strconv.Atoi(prefix)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
			}
			whole = float64(w)
		}
		return whole + vulgarGlyphs[last], nil
	}

	s = strings.ReplaceAll(s, FractionSlash, "/")
	if strings.Contains(s, "/") {
		if whole, frac, ok := strings.Cut(s, "-"); ok {
			return parseHyphenated(s, whole, frac)
		}
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	return v, nil
}

// parseHyphenated reads the "1-1/2" spelling of a mixed number. The
// fraction must be proper, otherwise the token is not a mixed number.
func parseHyphenated(s, whole, frac string) (float64, error) {
	w, err := strconv.Atoi(whole)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	f, err := parseFraction(frac)
	if err != nil || f >= 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	return float64(w) + f, nil
}

// parseFraction handles "a/b" and "w a/b" with optional spaces around the slash.
func parseFraction(s string) (float64, error) {
	idx := strings.Index(s, "/")
	left := strings.Fields(s[:idx])
	den, err := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
	if err != nil || den == 0 || len(left) == 0 || len(left) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}

	num, err := strconv.Atoi(left[len(left)-1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	whole := 0
	if len(left) == 2 {
		if whole, err = strconv.Atoi(left[0]); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
		}
	}
	return float64(whole) + float64(num)/float64(den), nil
}

// LeadingQuantity parses a quantity at the start of s. It returns the value
// and the number of bytes consumed (0 when s does not start with a quantity).
// The quantity must be followed by whitespace, a letter or the end of s, so
// "200g" yields 200 but "7-Up" yields nothing.
func LeadingQuantity(s string) (float64, int) {
	loc := leadingQuantity.FindStringIndex(s)
	if loc == nil {
		return 0, 0
	}
	if next, _ := utf8.DecodeRuneInString(s[loc[1]:]); loc[1] < len(s) && !unicode.IsSpace(next) && !unicode.IsLetter(next) {
		return 0, 0
	}
	v, err := Parse(s[:loc[1]])
	if err != nil || v <= 0 {
		return 0, 0
	}
	return v, loc[1]
}
