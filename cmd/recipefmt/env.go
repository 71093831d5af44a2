package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-recipefmt/internal/typeset"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, dotenv location and external tool discovery.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DotEnv is the .env file loaded before reading the environment.
	// Empty disables loading.
	DotEnv string

	NewEngine   func(name string, opts typeset.Options) (typeset.Engine, error)
	LookPath    func(file string) (string, error)
	BrowserPath func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		DotEnv:      ".env",
		NewEngine:   typeset.New,
		LookPath:    exec.LookPath,
		BrowserPath: typeset.LookPath,
	}
}
