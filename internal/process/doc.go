// Package process starts typesetting subprocesses in their own process group
// and kills the whole group when a run times out. XeLaTeX and Chrome both
// spawn helpers that would otherwise outlive a killed parent.
package process
