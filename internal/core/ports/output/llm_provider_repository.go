package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// LLMProviderRepository defines provider persistence operations scoped to the
// owning user.
type LLMProviderRepository interface {
	Create(ctx context.Context, provider *domain.LLMProvider) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*domain.LLMProvider, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.LLMProvider, error)
	Update(ctx context.Context, provider *domain.LLMProvider) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error

	// SetActive marks one provider active and clears the flag on the user's others.
	SetActive(ctx context.Context, userID string, id uuid.UUID) error

	// GetPreferredForUser resolves the provider used for AI calls: the active
	// connected provider first, any connected provider as fallback.
	GetPreferredForUser(ctx context.Context, userID string) (*domain.LLMProvider, error)
}

// ProviderEventRepository records provider lifecycle events.
type ProviderEventRepository interface {
	Insert(ctx context.Context, event *domain.ProviderEvent) error
	ListByProvider(ctx context.Context, userID string, providerID uuid.UUID) ([]*domain.ProviderEvent, error)
}
