package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// Anthropic talks to the Messages API.
type Anthropic struct {
	client *resty.Client
	model  string
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// NewAnthropic creates an Anthropic completer.
func NewAnthropic(cfg Config) *Anthropic {
	base := cfg.BaseURL
	if base == "" {
		base = anthropicBaseURL
	}
	client := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", anthropicVersion)
	return &Anthropic{client: client, model: cfg.Model}
}

// Complete implements Completer. The Messages API has no JSON mode, so
// req.JSON only relies on the prompt.
func (a *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	body := messagesRequest{
		Model:     modelFor(req, a.model),
		MaxTokens: defaultMaxTokens,
		System:    req.System,
		Messages:  []chatMessage{{Role: "user", Content: req.User}},
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %w", ErrRequest, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: anthropic: %s", ErrRequest, statusMessage(resp))
	}

	var result messagesResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("%w: anthropic: parsing response: %v", ErrRequest, err)
	}

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: anthropic", ErrEmptyResponse)
	}
	return text.String(), nil
}

// Compile-time interface check.
var _ Completer = (*Anthropic)(nil)
