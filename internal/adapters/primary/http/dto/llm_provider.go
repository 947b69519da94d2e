package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
)

const timeFormat = time.RFC3339

type CreateLLMProviderRequest struct {
	ProviderType string  `json:"provider_type" binding:"required,providertype"`
	ModelName    string  `json:"model_name" binding:"required,max=255"`
	BaseURL      *string `json:"base_url" binding:"omitempty,url"`
	APIKey       string  `json:"api_key" binding:"required"`
}

type UpdateLLMProviderRequest struct {
	ModelName *string `json:"model_name" binding:"omitempty,max=255"`
	BaseURL   *string `json:"base_url" binding:"omitempty,url"`
	APIKey    *string `json:"api_key"`
}

type TestConnectionRequest struct {
	APIKey    *string `json:"api_key"`
	BaseURL   *string `json:"base_url" binding:"omitempty,url"`
	ModelName *string `json:"model_name" binding:"omitempty,max=255"`
}

func (r *TestConnectionRequest) Overrides() *services.TestOverrides {
	if r == nil {
		return nil
	}
	return &services.TestOverrides{
		APIKey:    r.APIKey,
		BaseURL:   r.BaseURL,
		ModelName: r.ModelName,
	}
}

type LLMProviderResponse struct {
	ID           uuid.UUID `json:"id"`
	ProviderType string    `json:"provider_type"`
	DisplayName  string    `json:"display_name"`
	ModelName    string    `json:"model_name"`
	BaseURL      *string   `json:"base_url,omitempty"`
	Status       string    `json:"status"`
	IsActive     bool      `json:"is_active"`
	LatencyMs    *int      `json:"latency_ms,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

func ToLLMProviderResponse(p *domain.LLMProvider) LLMProviderResponse {
	return LLMProviderResponse{
		ID:           p.ID,
		ProviderType: string(p.ProviderType),
		DisplayName:  p.ProviderType.DisplayName(),
		ModelName:    p.ModelName,
		BaseURL:      p.BaseURL,
		Status:       string(p.Status),
		IsActive:     p.IsActive,
		LatencyMs:    p.LatencyMs,
		ErrorMessage: p.ErrorMessage,
		CreatedAt:    p.CreatedAt.Format(timeFormat),
		UpdatedAt:    p.UpdatedAt.Format(timeFormat),
	}
}

type ListLLMProvidersResponse struct {
	Items []LLMProviderResponse `json:"items"`
}

type ConnectionTestResponse struct {
	Status       string  `json:"status"`
	LatencyMs    *int    `json:"latency_ms,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
	Cached       bool    `json:"cached"`
	CachedAt     *string `json:"cached_at,omitempty"`
}

func ToConnectionTestResponse(r *domain.ConnectionTestResult) ConnectionTestResponse {
	resp := ConnectionTestResponse{
		Status:       string(r.Status),
		LatencyMs:    r.LatencyMs,
		ErrorMessage: r.ErrorMessage,
		Cached:       r.Cached,
	}
	if r.CachedAt != nil {
		s := r.CachedAt.Format(timeFormat)
		resp.CachedAt = &s
	}
	return resp
}

type ProviderEventResponse struct {
	ID          uuid.UUID `json:"id"`
	EventType   string    `json:"event_type"`
	EventStatus string    `json:"event_status"`
	Detail      *string   `json:"detail,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

func ToProviderEventResponse(e *domain.ProviderEvent) ProviderEventResponse {
	return ProviderEventResponse{
		ID:          e.ID,
		EventType:   string(e.EventType),
		EventStatus: string(e.EventStatus),
		Detail:      e.Detail,
		CreatedAt:   e.CreatedAt.Format(timeFormat),
	}
}
