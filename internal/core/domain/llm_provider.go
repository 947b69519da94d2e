package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// LLM Provider
// ============================================================================

type ProviderType string

const (
	ProviderOpenAI       ProviderType = "openai"
	ProviderAnthropic    ProviderType = "anthropic"
	ProviderGoogleGemini ProviderType = "google-gemini"
	ProviderAzureOpenAI  ProviderType = "azure-openai"
	ProviderOllama       ProviderType = "ollama"
	ProviderHuggingFace  ProviderType = "huggingface"
	ProviderGroq         ProviderType = "groq"
	ProviderCustom       ProviderType = "custom"
)

// SupportedProviderTypes lists providers in catalog display order.
var SupportedProviderTypes = []ProviderType{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGoogleGemini,
	ProviderAzureOpenAI,
	ProviderOllama,
	ProviderHuggingFace,
	ProviderGroq,
	ProviderCustom,
}

func ValidProviderType(s string) bool {
	switch ProviderType(s) {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogleGemini, ProviderAzureOpenAI,
		ProviderOllama, ProviderHuggingFace, ProviderGroq, ProviderCustom:
		return true
	}
	return false
}

type ProviderStatus string

const (
	ProviderStatusConnected ProviderStatus = "connected"
	ProviderStatusInactive  ProviderStatus = "inactive"
	ProviderStatusError     ProviderStatus = "error"
)

func ValidProviderStatus(s string) bool {
	switch ProviderStatus(s) {
	case ProviderStatusConnected, ProviderStatusInactive, ProviderStatusError:
		return true
	}
	return false
}

// providerPrefix maps provider types to the routing prefix expected by the
// model gateway. Custom providers address their model name verbatim.
var providerPrefix = map[ProviderType]string{
	ProviderOpenAI:       "openai",
	ProviderAnthropic:    "anthropic",
	ProviderGoogleGemini: "gemini",
	ProviderAzureOpenAI:  "azure",
	ProviderOllama:       "ollama",
	ProviderHuggingFace:  "huggingface",
	ProviderGroq:         "groq",
}

var providerDisplayName = map[ProviderType]string{
	ProviderOpenAI:       "OpenAI",
	ProviderAnthropic:    "Anthropic",
	ProviderGoogleGemini: "Google Gemini",
	ProviderAzureOpenAI:  "Azure OpenAI",
	ProviderOllama:       "Ollama",
	ProviderHuggingFace:  "Hugging Face",
	ProviderGroq:         "Groq",
	ProviderCustom:       "Custom",
}

var providerInitials = map[ProviderType]string{
	ProviderOpenAI:       "OA",
	ProviderAnthropic:    "AN",
	ProviderGoogleGemini: "GG",
	ProviderAzureOpenAI:  "AZ",
	ProviderOllama:       "OL",
	ProviderHuggingFace:  "HF",
	ProviderGroq:         "GQ",
	ProviderCustom:       "CU",
}

var providerColorClass = map[ProviderType]string{
	ProviderOpenAI:       "bg-emerald-500/10 text-emerald-500 border-emerald-500/20",
	ProviderAnthropic:    "bg-orange-500/10 text-orange-500 border-orange-500/20",
	ProviderGoogleGemini: "bg-blue-500/10 text-blue-500 border-blue-500/20",
	ProviderAzureOpenAI:  "bg-sky-500/10 text-sky-500 border-sky-500/20",
	ProviderOllama:       "bg-purple-500/10 text-purple-500 border-purple-500/20",
	ProviderHuggingFace:  "bg-yellow-500/10 text-yellow-500 border-yellow-500/20",
	ProviderGroq:         "bg-rose-500/10 text-rose-500 border-rose-500/20",
	ProviderCustom:       "bg-slate-500/10 text-slate-400 border-slate-500/20",
}

const defaultColorClass = "bg-slate-500/10 text-slate-400 border-slate-500/20"

func (t ProviderType) DisplayName() string {
	if n, ok := providerDisplayName[t]; ok {
		return n
	}
	return string(t)
}

func (t ProviderType) Initials() string {
	if i, ok := providerInitials[t]; ok {
		return i
	}
	return "??"
}

func (t ProviderType) ColorClass() string {
	if c, ok := providerColorClass[t]; ok {
		return c
	}
	return defaultColorClass
}

// LLMProvider is a user-configured model endpoint with an encrypted credential.
type LLMProvider struct {
	ID              uuid.UUID      `json:"id"`
	UserID          string         `json:"user_id"`
	ProviderType    ProviderType   `json:"provider_type"`
	ModelName       string         `json:"model_name"`
	BaseURL         *string        `json:"base_url,omitempty"`
	APIKeyEncrypted []byte         `json:"-"`
	Status          ProviderStatus `json:"status"`
	IsActive        bool           `json:"is_active"`
	LatencyMs       *int           `json:"latency_ms,omitempty"`
	ErrorMessage    *string        `json:"error_message,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewLLMProvider builds an inactive provider row; the key must already be encrypted.
func NewLLMProvider(userID string, providerType ProviderType, modelName string, baseURL *string, encryptedKey []byte) (*LLMProvider, error) {
	if !ValidProviderType(string(providerType)) {
		return nil, ErrInvalidProviderType
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, ErrInvalidModelName
	}
	if len(encryptedKey) == 0 {
		return nil, ErrMissingAPIKey
	}
	if requiresBaseURL(providerType) && (baseURL == nil || strings.TrimSpace(*baseURL) == "") {
		return nil, ErrMissingBaseURL
	}

	now := time.Now().UTC()
	return &LLMProvider{
		ID:              uuid.New(),
		UserID:          userID,
		ProviderType:    providerType,
		ModelName:       modelName,
		BaseURL:         baseURL,
		APIKeyEncrypted: encryptedKey,
		Status:          ProviderStatusInactive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func requiresBaseURL(t ProviderType) bool {
	return t == ProviderCustom || t == ProviderAzureOpenAI
}

// QualifiedModelName returns the gateway-routable model identifier.
func (p *LLMProvider) QualifiedModelName() string {
	prefix, ok := providerPrefix[p.ProviderType]
	if !ok {
		return p.ModelName
	}
	return fmt.Sprintf("%s/%s", prefix, p.ModelName)
}

// ============================================================================
// Provider Events
// ============================================================================

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
	EventTested  EventType = "tested"
)

type EventStatus string

const (
	EventSuccess EventStatus = "success"
	EventFailure EventStatus = "failure"
)

// ProviderEvent records a lifecycle action against a provider for auditing.
type ProviderEvent struct {
	ID          uuid.UUID   `json:"id"`
	ProviderID  uuid.UUID   `json:"provider_id"`
	UserID      string      `json:"user_id"`
	EventType   EventType   `json:"event_type"`
	EventStatus EventStatus `json:"event_status"`
	Detail      *string     `json:"detail,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func NewProviderEvent(providerID uuid.UUID, userID string, eventType EventType, eventStatus EventStatus, detail *string) *ProviderEvent {
	return &ProviderEvent{
		ID:          uuid.New(),
		ProviderID:  providerID,
		UserID:      userID,
		EventType:   eventType,
		EventStatus: eventStatus,
		Detail:      detail,
		CreatedAt:   time.Now().UTC(),
	}
}

// ============================================================================
// Connection Testing
// ============================================================================

// ProviderSpec carries the decrypted call parameters for one model endpoint.
type ProviderSpec struct {
	ProviderType ProviderType
	ModelName    string
	BaseURL      string
	APIKey       string
}

// ConnectionTestResult is the outcome of probing a provider endpoint.
type ConnectionTestResult struct {
	Status       ProviderStatus `json:"status"`
	LatencyMs    *int           `json:"latency_ms,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	Cached       bool           `json:"cached"`
	CachedAt     *time.Time     `json:"cached_at,omitempty"`
}

// ConnectionFailureMessage is the generic error surfaced to API clients; raw
// upstream errors stay in logs only.
func ConnectionFailureMessage(t ProviderType, model string) string {
	if model == "" {
		model = "unknown model"
	}
	return fmt.Sprintf("%s (%s) connection failed", t, model)
}
