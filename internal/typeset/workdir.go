package typeset

import (
	"fmt"
	"os"
)

// WithWorkDir creates a temporary directory, calls fn with its path, and
// removes the directory on every path out of fn, panics included.
func WithWorkDir(prefix string, fn func(dir string) error) error {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWorkDir, err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	return fn(dir)
}
