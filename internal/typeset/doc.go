// Package typeset turns a rendered typesetting source into PDF bytes.
//
// Two engines are provided: XeLaTeX, which compiles the LaTeX source in a
// subprocess, and Chrome, which prints the HTML source through a headless
// browser. Each compilation runs in its own temporary work directory that
// is removed when the call returns.
package typeset
