package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter talks to the OpenRouter chat completions endpoint.
type OpenRouter struct {
	client *resty.Client
	model  string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenRouter creates an OpenRouter completer.
func NewOpenRouter(cfg Config) *OpenRouter {
	base := cfg.BaseURL
	if base == "" {
		base = openRouterBaseURL
	}
	client := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "recipefmt")
	return &OpenRouter{client: client, model: cfg.Model}
}

// Complete implements Completer.
func (o *OpenRouter) Complete(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: modelFor(req, o.model),
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens: defaultMaxTokens,
	}
	if req.JSON {
		body.ResponseFormat = map[string]any{"type": "json_object"}
	}

	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: openrouter: %w", ErrRequest, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: openrouter: %s", ErrRequest, statusMessage(resp))
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("%w: openrouter: parsing response: %v", ErrRequest, err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: openrouter", ErrEmptyResponse)
	}
	return result.Choices[0].Message.Content, nil
}

// statusMessage formats an error response, preferring the API's own message.
func statusMessage(resp *resty.Response) string {
	var apiErr apiError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), resp.String())
}

// Compile-time interface check.
var _ Completer = (*OpenRouter)(nil)
