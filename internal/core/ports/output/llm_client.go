package output

import (
	"context"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// CompletionRequest is a single chat completion call.
type CompletionRequest struct {
	System string
	User   string
	// JSONMode asks the provider for a JSON object response.
	JSONMode  bool
	MaxTokens int
}

// LLMClient defines calls against a user-configured model endpoint.
type LLMClient interface {
	// Ping issues a minimal completion to verify credentials and reachability.
	// Returns the round-trip latency in milliseconds.
	Ping(ctx context.Context, spec domain.ProviderSpec) (int, error)

	// Complete runs a chat completion and returns the raw text content.
	Complete(ctx context.Context, spec domain.ProviderSpec, req CompletionRequest) (string, error)
}
