package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/dto"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

func storedProvider() *domain.LLMProvider {
	return &domain.LLMProvider{
		ID:              uuid.New(),
		UserID:          testUserID,
		ProviderType:    domain.ProviderOpenAI,
		ModelName:       "gpt-4o-mini",
		APIKeyEncrypted: []byte("encrypted"),
		Status:          domain.ProviderStatusInactive,
	}
}

func TestListSupportedProviders(t *testing.T) {
	f := setupRouter()

	req, _ := http.NewRequest("GET", "/api/llm-providers/supported", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openai")
	assert.Contains(t, w.Body.String(), "anthropic")
}

func TestCreateProvider(t *testing.T) {
	f := setupRouter()

	f.cipher.On("Encrypt", "sk-test").Return([]byte("encrypted"), nil)
	f.providers.On("Create", mock.Anything, mock.AnythingOfType("*domain.LLMProvider")).Return(nil)
	f.events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	body, _ := json.Marshal(dto.CreateLLMProviderRequest{
		ProviderType: "openai",
		ModelName:    "gpt-4o-mini",
		APIKey:       "sk-test",
	})
	req, _ := http.NewRequest("POST", "/api/llm-providers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.LLMProviderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "openai", resp.ProviderType)
	// The encrypted key never leaves the server.
	assert.NotContains(t, w.Body.String(), "sk-test")
	assert.NotContains(t, w.Body.String(), "encrypted")
}

func TestCreateProvider_UnknownType(t *testing.T) {
	f := setupRouter()

	body := `{"provider_type": "skynet", "model_name": "t-800", "api_key": "sk-test"}`
	req, _ := http.NewRequest("POST", "/api/llm-providers", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProvider_MissingAPIKey(t *testing.T) {
	f := setupRouter()

	body := `{"provider_type": "openai", "model_name": "gpt-4o-mini"}`
	req, _ := http.NewRequest("POST", "/api/llm-providers", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProvider_Duplicate(t *testing.T) {
	f := setupRouter()

	f.cipher.On("Encrypt", "sk-test").Return([]byte("encrypted"), nil)
	f.providers.On("Create", mock.Anything, mock.AnythingOfType("*domain.LLMProvider")).Return(domain.ErrDuplicateProvider)

	body := `{"provider_type": "openai", "model_name": "gpt-4o-mini", "api_key": "sk-test"}`
	req, _ := http.NewRequest("POST", "/api/llm-providers", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestUpdateProvider(t *testing.T) {
	f := setupRouter()

	provider := storedProvider()
	f.providers.On("GetByID", mock.Anything, testUserID, provider.ID).Return(provider, nil)
	f.providers.On("Update", mock.Anything, provider).Return(nil)
	f.cache.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return()
	f.events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	body := `{"model_name": "gpt-4o"}`
	req, _ := http.NewRequest("PATCH", "/api/llm-providers/"+provider.ID.String(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gpt-4o")
}

func TestDeleteProvider_NotFound(t *testing.T) {
	f := setupRouter()

	id := uuid.New()
	f.providers.On("GetByID", mock.Anything, testUserID, id).Return(nil, domain.ErrProviderNotFound)

	req, _ := http.NewRequest("DELETE", "/api/llm-providers/"+id.String(), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTestProviderConnection_NoBody(t *testing.T) {
	f := setupRouter()

	provider := storedProvider()
	f.providers.On("GetByID", mock.Anything, testUserID, provider.ID).Return(provider, nil)
	f.cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, false)
	f.cipher.On("Decrypt", []byte("encrypted")).Return("sk-test", nil)
	f.llm.On("Ping", mock.Anything, mock.AnythingOfType("domain.ProviderSpec")).Return(110, nil)
	f.providers.On("Update", mock.Anything, provider).Return(nil)
	f.cache.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8"), mock.AnythingOfType("time.Duration")).Return()
	f.events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	req, _ := http.NewRequest("POST", "/api/llm-providers/"+provider.ID.String()+"/test-connection", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ConnectionTestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.ProviderStatusConnected), resp.Status)
	assert.Equal(t, 110, *resp.LatencyMs)
}

func TestTestProviderConnection_WithOverrides(t *testing.T) {
	f := setupRouter()

	provider := storedProvider()
	f.providers.On("GetByID", mock.Anything, testUserID, provider.ID).Return(provider, nil)
	f.llm.On("Ping", mock.Anything, mock.MatchedBy(func(spec domain.ProviderSpec) bool {
		return spec.APIKey == "sk-unsaved"
	})).Return(90, nil)
	f.events.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ProviderEvent")).Return(nil)

	body := `{"api_key": "sk-unsaved"}`
	req, _ := http.NewRequest("POST", "/api/llm-providers/"+provider.ID.String()+"/test-connection", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.providers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestActivateProvider(t *testing.T) {
	f := setupRouter()

	id := uuid.New()
	f.providers.On("SetActive", mock.Anything, testUserID, id).Return(nil)

	req, _ := http.NewRequest("POST", "/api/llm-providers/"+id.String()+"/activate", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "activated")
}

func TestListProviderEvents(t *testing.T) {
	f := setupRouter()

	id := uuid.New()
	events := []*domain.ProviderEvent{
		domain.NewProviderEvent(id, testUserID, domain.EventCreated, domain.EventSuccess, nil),
		domain.NewProviderEvent(id, testUserID, domain.EventTested, domain.EventFailure, nil),
	}
	f.events.On("ListByProvider", mock.Anything, testUserID, id).Return(events, nil)

	req, _ := http.NewRequest("GET", "/api/llm-providers/"+id.String()+"/events", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tested")
}
