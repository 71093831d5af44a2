package render

import (
	"regexp"
	"strings"
)

// texReplacer escapes the ten characters LaTeX reserves, plus the angle
// brackets that the default font encoding prints as other glyphs. A Replacer
// makes a single pass, so inserted backslashes are never escaped again.
var texReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// texFraction matches the fraction-slash quantities written by the
// normalizer, such as 1⁄2.
var texFraction = regexp.MustCompile(`(\d+)⁄(\d+)`)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Escape makes free text safe to embed in a LaTeX document. Reserved
// characters are escaped, then n⁄d fractions become \nicefrac{n}{d}. All other
// Unicode passes through for XeLaTeX.
func Escape(s string) string {
	s = texReplacer.Replace(normalizeLineEndings(s))
	return texFraction.ReplaceAllString(s, `\nicefrac{${1}}{${2}}`)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(s string) string {
	return crlfOrCR.ReplaceAllString(s, "\n")
}
