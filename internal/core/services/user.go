package services

import (
	"context"
	"errors"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

// UserService keeps a local profile row for each authenticated identity.
// Authentication itself happens upstream; the row backs profile reads and
// relational integrity for per-user data.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile returns the stored profile, lazily creating it from the token
// identity on first sight.
func (s *UserService) Profile(ctx context.Context, sub, email string) (*domain.User, error) {
	user, err := s.users.GetByGoogleSub(ctx, sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user = &domain.User{GoogleSub: sub, Email: email}
	if err := s.users.UpsertByGoogleSub(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SyncProfile refreshes the stored profile with the latest identity claims.
func (s *UserService) SyncProfile(ctx context.Context, user *domain.User) error {
	if user.GoogleSub == "" {
		return domain.ErrUserNotFound
	}
	return s.users.UpsertByGoogleSub(ctx, user)
}
