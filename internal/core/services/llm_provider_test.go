package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/testutil"
)

func newProviderService() (*LLMProviderService, *testutil.MockLLMProviderRepo, *testutil.MockProviderEventRepo, *testutil.MockCacheStore, *testutil.MockLLMClient, *testutil.MockKeyCipher) {
	providers := new(testutil.MockLLMProviderRepo)
	events := new(testutil.MockProviderEventRepo)
	cache := new(testutil.MockCacheStore)
	llm := new(testutil.MockLLMClient)
	cipher := new(testutil.MockKeyCipher)
	svc := NewLLMProviderService(providers, events, cache, llm, cipher, 5*time.Minute)
	return svc, providers, events, cache, llm, cipher
}

func existingProvider(userID string) *domain.LLMProvider {
	return &domain.LLMProvider{
		ID:              uuid.New(),
		UserID:          userID,
		ProviderType:    domain.ProviderOpenAI,
		ModelName:       "gpt-4o-mini",
		APIKeyEncrypted: []byte("encrypted"),
		Status:          domain.ProviderStatusInactive,
	}
}

func TestLLMProviderService_Supported(t *testing.T) {
	svc, _, _, _, _, _ := newProviderService()

	catalog := svc.Supported()
	assert.Len(t, catalog, len(domain.SupportedProviderTypes))
	for _, entry := range catalog {
		assert.NotEmpty(t, entry.DisplayName)
		assert.NotEmpty(t, entry.Initials)
	}
}

func TestLLMProviderService_Create(t *testing.T) {
	svc, providers, events, _, _, cipher := newProviderService()

	cipher.On("Encrypt", "sk-test").Return([]byte("encrypted"), nil)
	providers.On("Create", mock.Anything, mock.AnythingOfType("*domain.LLMProvider")).Return(nil)
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	provider, err := svc.Create(context.Background(), "user-1", CreateProviderRequest{
		ProviderType: "openai",
		ModelName:    "gpt-4o-mini",
		APIKey:       "sk-test",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, provider.ProviderType)
	assert.Equal(t, []byte("encrypted"), provider.APIKeyEncrypted)
	providers.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestLLMProviderService_Create_MissingAPIKey(t *testing.T) {
	svc, _, _, _, _, _ := newProviderService()

	_, err := svc.Create(context.Background(), "user-1", CreateProviderRequest{
		ProviderType: "openai",
		ModelName:    "gpt-4o-mini",
		APIKey:       "   ",
	})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestLLMProviderService_Create_Duplicate(t *testing.T) {
	svc, providers, _, _, _, cipher := newProviderService()

	cipher.On("Encrypt", "sk-test").Return([]byte("encrypted"), nil)
	providers.On("Create", mock.Anything, mock.AnythingOfType("*domain.LLMProvider")).Return(domain.ErrDuplicateProvider)

	_, err := svc.Create(context.Background(), "user-1", CreateProviderRequest{
		ProviderType: "openai",
		ModelName:    "gpt-4o-mini",
		APIKey:       "sk-test",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateProvider)
}

func TestLLMProviderService_Update_ResetsConnectivity(t *testing.T) {
	svc, providers, events, cache, _, _ := newProviderService()

	provider := existingProvider("user-1")
	latency := 42
	provider.Status = domain.ProviderStatusConnected
	provider.LatencyMs = &latency

	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	providers.On("Update", mock.Anything, provider).Return(nil)
	cache.On("Delete", mock.Anything, testCacheKey(provider.ID)).Return()
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	model := "gpt-4o"
	updated, err := svc.Update(context.Background(), "user-1", provider.ID, UpdateProviderRequest{ModelName: &model})
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", updated.ModelName)
	assert.Equal(t, domain.ProviderStatusInactive, updated.Status)
	assert.Nil(t, updated.LatencyMs)
	cache.AssertExpectations(t)
}

func TestLLMProviderService_Update_EmptyModelName(t *testing.T) {
	svc, providers, _, _, _, _ := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)

	empty := ""
	_, err := svc.Update(context.Background(), "user-1", provider.ID, UpdateProviderRequest{ModelName: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidModelName)
}

func TestLLMProviderService_Delete(t *testing.T) {
	svc, providers, events, cache, _, _ := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	providers.On("Delete", mock.Anything, "user-1", provider.ID).Return(nil)
	cache.On("Delete", mock.Anything, testCacheKey(provider.ID)).Return()
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	err := svc.Delete(context.Background(), "user-1", provider.ID)
	assert.NoError(t, err)
	providers.AssertExpectations(t)
}

func TestLLMProviderService_Delete_NotFound(t *testing.T) {
	svc, providers, _, _, _, _ := newProviderService()

	id := uuid.New()
	providers.On("GetByID", mock.Anything, "user-1", id).Return(nil, domain.ErrProviderNotFound)

	err := svc.Delete(context.Background(), "user-1", id)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestLLMProviderService_TestConnection_Success(t *testing.T) {
	svc, providers, events, cache, llm, cipher := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	cache.On("Get", mock.Anything, testCacheKey(provider.ID)).Return(nil, false)
	cipher.On("Decrypt", []byte("encrypted")).Return("sk-test", nil)
	llm.On("Ping", mock.Anything, mock.AnythingOfType("domain.ProviderSpec")).Return(120, nil)
	providers.On("Update", mock.Anything, provider).Return(nil)
	cache.On("Set", mock.Anything, testCacheKey(provider.ID), mock.AnythingOfType("[]uint8"), 5*time.Minute).Return()
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	result, err := svc.TestConnection(context.Background(), "user-1", provider.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderStatusConnected, result.Status)
	assert.Equal(t, 120, *result.LatencyMs)
	assert.False(t, result.Cached)
	assert.Equal(t, domain.ProviderStatusConnected, provider.Status)
	cache.AssertExpectations(t)
}

func TestLLMProviderService_TestConnection_CachedResult(t *testing.T) {
	svc, providers, _, cache, llm, _ := newProviderService()

	provider := existingProvider("user-1")
	latency := 95
	payload, _ := json.Marshal(cachedTest{
		Status:    domain.ProviderStatusConnected,
		LatencyMs: &latency,
		TestedAt:  time.Now().UTC(),
	})
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	cache.On("Get", mock.Anything, testCacheKey(provider.ID)).Return(payload, true)

	result, err := svc.TestConnection(context.Background(), "user-1", provider.ID, nil)
	assert.NoError(t, err)
	assert.True(t, result.Cached)
	assert.NotNil(t, result.CachedAt)
	assert.Equal(t, 95, *result.LatencyMs)
	llm.AssertNotCalled(t, "Ping", mock.Anything, mock.Anything)
}

func TestLLMProviderService_TestConnection_FailureHidesUpstreamError(t *testing.T) {
	svc, providers, events, cache, llm, cipher := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	cache.On("Get", mock.Anything, testCacheKey(provider.ID)).Return(nil, false)
	cipher.On("Decrypt", []byte("encrypted")).Return("sk-test", nil)
	llm.On("Ping", mock.Anything, mock.AnythingOfType("domain.ProviderSpec")).Return(0, errors.New("401 invalid api key sk-live-secret"))
	providers.On("Update", mock.Anything, provider).Return(nil)
	cache.On("Set", mock.Anything, testCacheKey(provider.ID), mock.AnythingOfType("[]uint8"), 5*time.Minute).Return()
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	result, err := svc.TestConnection(context.Background(), "user-1", provider.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderStatusError, result.Status)
	assert.NotNil(t, result.ErrorMessage)
	assert.NotContains(t, *result.ErrorMessage, "sk-live-secret")
}

func TestLLMProviderService_TestConnection_OverridesSkipCacheAndRow(t *testing.T) {
	svc, providers, events, cache, llm, cipher := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	cipher.On("Decrypt", []byte("encrypted")).Return("sk-test", nil)
	llm.On("Ping", mock.Anything, mock.MatchedBy(func(spec domain.ProviderSpec) bool {
		return spec.ModelName == "gpt-4o"
	})).Return(80, nil)
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	model := "gpt-4o"
	result, err := svc.TestConnection(context.Background(), "user-1", provider.ID, &TestOverrides{ModelName: &model})
	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderStatusConnected, result.Status)
	// Hypothetical settings must not touch the stored row or the cache.
	providers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLLMProviderService_TestConnection_OverrideKeySkipsDecryption(t *testing.T) {
	svc, providers, events, _, llm, cipher := newProviderService()

	provider := existingProvider("user-1")
	provider.APIKeyEncrypted = []byte("corrupted-blob")
	providers.On("GetByID", mock.Anything, "user-1", provider.ID).Return(provider, nil)
	llm.On("Ping", mock.Anything, mock.MatchedBy(func(spec domain.ProviderSpec) bool {
		return spec.APIKey == "sk-new"
	})).Return(60, nil)
	events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	key := "sk-new"
	result, err := svc.TestConnection(context.Background(), "user-1", provider.ID, &TestOverrides{APIKey: &key})
	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderStatusConnected, result.Status)
	cipher.AssertNotCalled(t, "Decrypt", mock.Anything)
}

func TestLLMProviderService_ActiveSpecForUser(t *testing.T) {
	svc, providers, _, _, _, cipher := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetPreferredForUser", mock.Anything, "user-1").Return(provider, nil)
	cipher.On("Decrypt", []byte("encrypted")).Return("sk-test", nil)

	spec, err := svc.ActiveSpecForUser(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, spec.ProviderType)
	assert.Equal(t, "sk-test", spec.APIKey)
}

func TestLLMProviderService_ActiveSpecForUser_NoProvider(t *testing.T) {
	svc, providers, _, _, _, _ := newProviderService()

	providers.On("GetPreferredForUser", mock.Anything, "user-1").Return(nil, domain.ErrNoActiveProvider)

	_, err := svc.ActiveSpecForUser(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveProvider)
}

func TestLLMProviderService_ActiveSpecForUser_CorruptedKey(t *testing.T) {
	svc, providers, _, _, _, cipher := newProviderService()

	provider := existingProvider("user-1")
	providers.On("GetPreferredForUser", mock.Anything, "user-1").Return(provider, nil)
	cipher.On("Decrypt", []byte("encrypted")).Return("", errors.New("cipher: message authentication failed"))

	_, err := svc.ActiveSpecForUser(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrProviderKeyCorrupted)
}
