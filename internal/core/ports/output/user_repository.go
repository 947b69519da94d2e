package output

import (
	"context"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// UserRepository defines profile persistence for identities synced from the
// external auth provider.
type UserRepository interface {
	// UpsertByGoogleSub inserts the profile or refreshes it in place.
	UpsertByGoogleSub(ctx context.Context, user *domain.User) error
	GetByGoogleSub(ctx context.Context, googleSub string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
