package llm

import "errors"

// Sentinel errors for collaborator failures.
var (
	ErrNoAPIKey        = errors.New("API key is required")
	ErrUnknownProvider = errors.New("unknown model provider")
	ErrRequest         = errors.New("model request failed")
	ErrEmptyResponse   = errors.New("model returned an empty response")
	ErrNoJSON          = errors.New("model response contains no JSON object")
)
