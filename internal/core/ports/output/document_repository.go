package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// DocumentFilter narrows document listings. Limit is clamped to 1..100 by the
// repository; zero means the default page size.
type DocumentFilter struct {
	Status *domain.DocumentStatus
	Limit  int
	Offset int
}

// DocumentRepository defines document persistence operations. All reads are
// scoped to the owning user.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, userID string, filter DocumentFilter) ([]*domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, errorMessage *string) error
	SetTaskID(ctx context.Context, id uuid.UUID, taskID string) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
