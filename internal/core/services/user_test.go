package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/testutil"
)

func TestUserService_Profile_ReturnsExistingRow(t *testing.T) {
	users := new(testutil.MockUserRepo)
	svc := NewUserService(users)

	name := "Ada Lovelace"
	stored := &domain.User{ID: 7, GoogleSub: "google|sub-1", Email: "ada@example.com", Name: &name}
	users.On("GetByGoogleSub", mock.Anything, "google|sub-1").Return(stored, nil)

	user, err := svc.Profile(context.Background(), "google|sub-1", "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	users.AssertNotCalled(t, "UpsertByGoogleSub", mock.Anything, mock.Anything)
}

func TestUserService_Profile_CreatesRowOnFirstSight(t *testing.T) {
	users := new(testutil.MockUserRepo)
	svc := NewUserService(users)

	users.On("GetByGoogleSub", mock.Anything, "google|sub-new").Return(nil, domain.ErrUserNotFound)
	users.On("UpsertByGoogleSub", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.GoogleSub == "google|sub-new" && u.Email == "new@example.com"
	})).Return(nil)

	user, err := svc.Profile(context.Background(), "google|sub-new", "new@example.com")

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	users.AssertExpectations(t)
}

func TestUserService_Profile_RepositoryFailure(t *testing.T) {
	users := new(testutil.MockUserRepo)
	svc := NewUserService(users)

	users.On("GetByGoogleSub", mock.Anything, "google|sub-1").Return(nil, errors.New("db down"))

	_, err := svc.Profile(context.Background(), "google|sub-1", "ada@example.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	users.AssertNotCalled(t, "UpsertByGoogleSub", mock.Anything, mock.Anything)
}

func TestUserService_SyncProfile_RequiresSubject(t *testing.T) {
	users := new(testutil.MockUserRepo)
	svc := NewUserService(users)

	err := svc.SyncProfile(context.Background(), &domain.User{Email: "ada@example.com"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	users.AssertNotCalled(t, "UpsertByGoogleSub", mock.Anything, mock.Anything)
}
