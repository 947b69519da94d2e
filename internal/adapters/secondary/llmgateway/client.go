// Package llmgateway talks to OpenAI-compatible chat completion endpoints.
// Every supported provider either exposes one natively or is reached through
// the base URL configured on the provider row.
package llmgateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

const (
	pingTimeout       = 10 * time.Second
	completionTimeout = 2 * time.Minute

	maxErrorBody = 200
)

var defaultBaseURLs = map[domain.ProviderType]string{
	domain.ProviderOpenAI:       "https://api.openai.com/v1",
	domain.ProviderAnthropic:    "https://api.anthropic.com/v1",
	domain.ProviderGoogleGemini: "https://generativelanguage.googleapis.com/v1beta/openai",
	domain.ProviderOllama:       "http://localhost:11434/v1",
	domain.ProviderHuggingFace:  "https://router.huggingface.co/v1",
	domain.ProviderGroq:         "https://api.groq.com/openai/v1",
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type client struct {
	http *resty.Client
}

func NewClient() ports.LLMClient {
	c := resty.New()
	c.SetRetryCount(0)
	return &client{http: c}
}

// Ping issues a one-token completion. Latency is reported for failed probes
// too, so callers can store how long the endpoint took to reject.
func (c *client) Ping(ctx context.Context, spec domain.ProviderSpec) (int, error) {
	start := time.Now()
	_, err := c.chat(ctx, spec, chatRequest{
		Messages:  []chatMessage{{Role: "system", Content: "ping"}},
		MaxTokens: 1,
	}, pingTimeout)
	latency := int(time.Since(start).Milliseconds())
	return latency, err
}

func (c *client) Complete(ctx context.Context, spec domain.ProviderSpec, req ports.CompletionRequest) (string, error) {
	body := chatRequest{}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.User})
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = req.MaxTokens
	}

	resp, err := c.chat(ctx, spec, body, completionTimeout)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *client) chat(ctx context.Context, spec domain.ProviderSpec, body chatRequest, timeout time.Duration) (*chatResponse, error) {
	baseURL, err := resolveBaseURL(spec)
	if err != nil {
		return nil, err
	}
	body.Model = spec.ModelName

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+spec.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(&body).
		SetResult(&out).
		Post(baseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), truncate(resp.String(), maxErrorBody))
	}
	return &out, nil
}

// resolveBaseURL prefers the configured URL; azure and custom providers have
// no public default endpoint and must configure one.
func resolveBaseURL(spec domain.ProviderSpec) (string, error) {
	if spec.BaseURL != "" {
		return strings.TrimRight(spec.BaseURL, "/"), nil
	}
	if url, ok := defaultBaseURLs[spec.ProviderType]; ok {
		return url, nil
	}
	return "", fmt.Errorf("%w: %s has no default endpoint", domain.ErrMissingBaseURL, spec.ProviderType)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
