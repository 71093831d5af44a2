package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
)

// Defaults applied by New.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second
	defaultMaxTokens   = 8192
)

// defaultModels holds the model used per provider when none is configured.
var defaultModels = map[string]string{
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "openai/gpt-4o-mini",
	ProviderAnthropic:  "claude-sonnet-4-5",
}

// Request is a single system+user exchange.
type Request struct {
	System string
	User   string
	Model  string // overrides the provider's configured model when set
	JSON   bool   // ask the provider for a JSON object reply where supported
}

// Completer sends one exchange to a model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string        // empty for the provider's public endpoint
	Timeout     time.Duration // per request
	MaxAttempts int
	RetryDelay  time.Duration // first backoff step, doubled per attempt
}

// New builds a Collaborator for the configured provider.
func New(cfg Config) (*Collaborator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}
	if _, ok := defaultModels[provider]; !ok {
		return nil, fmt.Errorf("%w: %q (must be %s, %s or %s)",
			ErrUnknownProvider, cfg.Provider, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w for %s", ErrNoAPIKey, provider)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[provider]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var completer Completer
	switch provider {
	case ProviderOpenAI:
		completer = NewOpenAI(cfg)
	case ProviderOpenRouter:
		completer = NewOpenRouter(cfg)
	case ProviderAnthropic:
		completer = NewAnthropic(cfg)
	}

	c := NewCollaborator(completer, cfg.MaxAttempts)
	if cfg.RetryDelay > 0 {
		c.retryDelay = cfg.RetryDelay
	}
	return c, nil
}

// modelFor returns the request's model override or the configured model.
func modelFor(req Request, configured string) string {
	if m := strings.TrimSpace(req.Model); m != "" {
		return m
	}
	return configured
}
