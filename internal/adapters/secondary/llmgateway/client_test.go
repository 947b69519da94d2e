package llmgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

func TestResolveBaseURL_DefaultsPerProvider(t *testing.T) {
	url, err := resolveBaseURL(domain.ProviderSpec{ProviderType: domain.ProviderOpenAI})
	require.NoError(t, err)
	assert.Equal(t, "https://api.openai.com/v1", url)

	url, err = resolveBaseURL(domain.ProviderSpec{ProviderType: domain.ProviderGroq})
	require.NoError(t, err)
	assert.Equal(t, "https://api.groq.com/openai/v1", url)
}

func TestResolveBaseURL_ExplicitOverridesAndTrims(t *testing.T) {
	url, err := resolveBaseURL(domain.ProviderSpec{
		ProviderType: domain.ProviderOpenAI,
		BaseURL:      "http://localhost:9999/v1/",
	})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", url)
}

func TestResolveBaseURL_AzureAndCustomRequireExplicit(t *testing.T) {
	_, err := resolveBaseURL(domain.ProviderSpec{ProviderType: domain.ProviderAzureOpenAI})
	require.ErrorIs(t, err, domain.ErrMissingBaseURL)

	_, err = resolveBaseURL(domain.ProviderSpec{ProviderType: domain.ProviderCustom})
	require.ErrorIs(t, err, domain.ErrMissingBaseURL)
}

func TestClient_Ping_Success(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"pong"}}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	latency, err := c.Ping(context.Background(), domain.ProviderSpec{
		ProviderType: domain.ProviderCustom,
		ModelName:    "test-model",
		BaseURL:      srv.URL,
		APIKey:       "sk-test",
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, latency, 0)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
}

func TestClient_Ping_ReportsLatencyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewClient()
	latency, err := c.Ping(context.Background(), domain.ProviderSpec{
		ProviderType: domain.ProviderCustom,
		ModelName:    "test-model",
		BaseURL:      srv.URL,
		APIKey:       "bad",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.GreaterOrEqual(t, latency, 0)
}

func TestClient_Complete_JSONMode(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	content, err := c.Complete(context.Background(), domain.ProviderSpec{
		ProviderType: domain.ProviderCustom,
		ModelName:    "test-model",
		BaseURL:      srv.URL,
		APIKey:       "sk-test",
	}, ports.CompletionRequest{
		System:   "classify",
		User:     "some document",
		JSONMode: true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, content)
	require.NotNil(t, gotBody.ResponseFormat)
	assert.Equal(t, "json_object", gotBody.ResponseFormat.Type)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "test-model", gotBody.Model)
}

func TestClient_Complete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient()
	_, err := c.Complete(context.Background(), domain.ProviderSpec{
		ProviderType: domain.ProviderCustom,
		ModelName:    "test-model",
		BaseURL:      srv.URL,
		APIKey:       "sk-test",
	}, ports.CompletionRequest{User: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
