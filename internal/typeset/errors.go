package typeset

import (
	"errors"
	"fmt"
)

// Sentinel errors for typesetting failures.
var (
	ErrEngineFailed    = errors.New("typesetting engine failed")
	ErrEngineNotFound  = errors.New("typesetting engine not found")
	ErrUnknownEngine   = errors.New("unknown typesetting engine")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrEmptySource     = errors.New("typesetting source is empty")
	ErrWorkDir         = errors.New("failed to prepare work directory")
	ErrMissingDocument = errors.New("engine produced no document")
)

// EngineError reports a failed engine run with the diagnostics it printed.
type EngineError struct {
	Engine      string
	ExitCode    int
	Diagnostics string
	Err         error
}

func (e *EngineError) Error() string {
	msg := fmt.Sprintf("%s: %s (exit code %d)", ErrEngineFailed, e.Engine, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnostics != "" {
		msg += "\n" + e.Diagnostics
	}
	return msg
}

// Unwrap lets errors.Is match both ErrEngineFailed and the underlying cause.
func (e *EngineError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEngineFailed}
	}
	return []error{ErrEngineFailed, e.Err}
}
