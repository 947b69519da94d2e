package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/metrics"
)

type LLMProviderService struct {
	providers ports.LLMProviderRepository
	events    ports.ProviderEventRepository
	cache     ports.CacheStore
	llm       ports.LLMClient
	cipher    ports.KeyCipher
	cacheTTL  time.Duration
}

func NewLLMProviderService(providers ports.LLMProviderRepository, events ports.ProviderEventRepository, cache ports.CacheStore, llm ports.LLMClient, cipher ports.KeyCipher, cacheTTL time.Duration) *LLMProviderService {
	return &LLMProviderService{
		providers: providers,
		events:    events,
		cache:     cache,
		llm:       llm,
		cipher:    cipher,
		cacheTTL:  cacheTTL,
	}
}

// SupportedProvider is one catalog entry the frontend renders a picker from.
type SupportedProvider struct {
	Type        domain.ProviderType `json:"type"`
	DisplayName string              `json:"display_name"`
	Initials    string              `json:"initials"`
	ColorClass  string              `json:"color_class"`
	NeedsURL    bool                `json:"needs_base_url"`
}

func (s *LLMProviderService) Supported() []SupportedProvider {
	out := make([]SupportedProvider, 0, len(domain.SupportedProviderTypes))
	for _, t := range domain.SupportedProviderTypes {
		out = append(out, SupportedProvider{
			Type:        t,
			DisplayName: t.DisplayName(),
			Initials:    t.Initials(),
			ColorClass:  t.ColorClass(),
			NeedsURL:    t == domain.ProviderCustom || t == domain.ProviderAzureOpenAI,
		})
	}
	return out
}

func (s *LLMProviderService) List(ctx context.Context, userID string) ([]*domain.LLMProvider, error) {
	return s.providers.ListByUser(ctx, userID)
}

func (s *LLMProviderService) Get(ctx context.Context, userID string, id uuid.UUID) (*domain.LLMProvider, error) {
	return s.providers.GetByID(ctx, userID, id)
}

type CreateProviderRequest struct {
	ProviderType string
	ModelName    string
	BaseURL      *string
	APIKey       string
}

func (s *LLMProviderService) Create(ctx context.Context, userID string, req CreateProviderRequest) (*domain.LLMProvider, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	encrypted, err := s.cipher.Encrypt(req.APIKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt api key: %w", err)
	}

	provider, err := domain.NewLLMProvider(userID, domain.ProviderType(req.ProviderType), req.ModelName, req.BaseURL, encrypted)
	if err != nil {
		return nil, err
	}

	if err := s.providers.Create(ctx, provider); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, provider, domain.EventCreated, domain.EventSuccess, nil)
	return provider, nil
}

type UpdateProviderRequest struct {
	ModelName *string
	BaseURL   *string
	APIKey    *string
}

// Update applies a partial edit. A new API key is re-encrypted; changing the
// endpoint or model resets connectivity state until the next test.
func (s *LLMProviderService) Update(ctx context.Context, userID string, id uuid.UUID, req UpdateProviderRequest) (*domain.LLMProvider, error) {
	provider, err := s.providers.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.ModelName != nil {
		if strings.TrimSpace(*req.ModelName) == "" {
			return nil, domain.ErrInvalidModelName
		}
		provider.ModelName = *req.ModelName
	}
	if req.BaseURL != nil {
		provider.BaseURL = req.BaseURL
	}
	if req.APIKey != nil {
		if strings.TrimSpace(*req.APIKey) == "" {
			return nil, domain.ErrMissingAPIKey
		}
		encrypted, err := s.cipher.Encrypt(*req.APIKey)
		if err != nil {
			return nil, fmt.Errorf("encrypt api key: %w", err)
		}
		provider.APIKeyEncrypted = encrypted
	}

	provider.Status = domain.ProviderStatusInactive
	provider.LatencyMs = nil
	provider.ErrorMessage = nil

	if err := s.providers.Update(ctx, provider); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, testCacheKey(id))
	s.recordEvent(ctx, provider, domain.EventUpdated, domain.EventSuccess, nil)
	return provider, nil
}

func (s *LLMProviderService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	provider, err := s.providers.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.providers.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, testCacheKey(id))
	s.recordEvent(ctx, provider, domain.EventDeleted, domain.EventSuccess, nil)
	return nil
}

func (s *LLMProviderService) SetActive(ctx context.Context, userID string, id uuid.UUID) error {
	return s.providers.SetActive(ctx, userID, id)
}

func (s *LLMProviderService) Events(ctx context.Context, userID string, id uuid.UUID) ([]*domain.ProviderEvent, error) {
	return s.events.ListByProvider(ctx, userID, id)
}

// TestOverrides lets the frontend probe unsaved edits. Any override bypasses
// the result cache in both directions.
type TestOverrides struct {
	APIKey    *string
	BaseURL   *string
	ModelName *string
}

func (o *TestOverrides) empty() bool {
	return o == nil || (o.APIKey == nil && o.BaseURL == nil && o.ModelName == nil)
}

// cachedTest is the serialized form of a connection test result in Redis.
type cachedTest struct {
	Status       domain.ProviderStatus `json:"status"`
	LatencyMs    *int                  `json:"latency_ms,omitempty"`
	ErrorMessage *string               `json:"error_message,omitempty"`
	TestedAt     time.Time             `json:"tested_at"`
}

func testCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("cache:provider_test:%s", id)
}

// TestConnection probes the provider endpoint and records the outcome on the
// provider row. Clean (override-free) results are cached.
func (s *LLMProviderService) TestConnection(ctx context.Context, userID string, id uuid.UUID, overrides *TestOverrides) (*domain.ConnectionTestResult, error) {
	provider, err := s.providers.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	clean := overrides.empty()
	if clean {
		if raw, ok := s.cache.Get(ctx, testCacheKey(id)); ok {
			var cached cachedTest
			if err := json.Unmarshal(raw, &cached); err == nil {
				at := cached.TestedAt
				return &domain.ConnectionTestResult{
					Status:       cached.Status,
					LatencyMs:    cached.LatencyMs,
					ErrorMessage: cached.ErrorMessage,
					Cached:       true,
					CachedAt:     &at,
				}, nil
			}
		}
	}

	spec, err := s.specFor(provider, overrides)
	if err != nil {
		return nil, err
	}

	latency, pingErr := s.llm.Ping(ctx, spec)

	result := &domain.ConnectionTestResult{LatencyMs: &latency}
	if pingErr != nil {
		log.WithError(pingErr).WithFields(log.Fields{
			"provider_id":   provider.ID,
			"provider_type": provider.ProviderType,
		}).Warn("provider connection test failed")

		msg := domain.ConnectionFailureMessage(provider.ProviderType, spec.ModelName)
		result.Status = domain.ProviderStatusError
		result.ErrorMessage = &msg
		metrics.ProviderTests.WithLabelValues("failure").Inc()
	} else {
		result.Status = domain.ProviderStatusConnected
		metrics.ProviderTests.WithLabelValues("success").Inc()
	}

	// Overrides test hypothetical settings; only clean probes update the row.
	if clean {
		provider.Status = result.Status
		provider.LatencyMs = result.LatencyMs
		provider.ErrorMessage = result.ErrorMessage
		if err := s.providers.Update(ctx, provider); err != nil {
			log.WithError(err).WithField("provider_id", provider.ID).Warn("persist test result failed")
		}

		payload, err := json.Marshal(cachedTest{
			Status:       result.Status,
			LatencyMs:    result.LatencyMs,
			ErrorMessage: result.ErrorMessage,
			TestedAt:     time.Now().UTC(),
		})
		if err == nil {
			s.cache.Set(ctx, testCacheKey(id), payload, s.cacheTTL)
		}
	}

	eventStatus := domain.EventSuccess
	if pingErr != nil {
		eventStatus = domain.EventFailure
	}
	s.recordEvent(ctx, provider, domain.EventTested, eventStatus, result.ErrorMessage)

	return result, nil
}

// ActiveSpecForUser resolves the decrypted call parameters of the provider the
// pipeline should use for this user.
func (s *LLMProviderService) ActiveSpecForUser(ctx context.Context, userID string) (domain.ProviderSpec, error) {
	provider, err := s.providers.GetPreferredForUser(ctx, userID)
	if err != nil {
		return domain.ProviderSpec{}, err
	}
	return s.specFor(provider, nil)
}

func (s *LLMProviderService) specFor(provider *domain.LLMProvider, overrides *TestOverrides) (domain.ProviderSpec, error) {
	spec := domain.ProviderSpec{
		ProviderType: provider.ProviderType,
		ModelName:    provider.ModelName,
	}
	if provider.BaseURL != nil {
		spec.BaseURL = *provider.BaseURL
	}

	if overrides == nil || overrides.APIKey == nil {
		key, err := s.cipher.Decrypt(provider.APIKeyEncrypted)
		if err != nil {
			return domain.ProviderSpec{}, fmt.Errorf("%w: %v", domain.ErrProviderKeyCorrupted, err)
		}
		spec.APIKey = key
	}

	if overrides != nil {
		if overrides.APIKey != nil {
			spec.APIKey = *overrides.APIKey
		}
		if overrides.BaseURL != nil {
			spec.BaseURL = *overrides.BaseURL
		}
		if overrides.ModelName != nil {
			spec.ModelName = *overrides.ModelName
		}
	}
	return spec, nil
}

func (s *LLMProviderService) recordEvent(ctx context.Context, provider *domain.LLMProvider, eventType domain.EventType, status domain.EventStatus, detail *string) {
	event := domain.NewProviderEvent(provider.ID, provider.UserID, eventType, status, detail)
	if err := s.events.Insert(ctx, event); err != nil {
		log.WithError(err).WithField("provider_id", provider.ID).Warn("record provider event failed")
	}
}
