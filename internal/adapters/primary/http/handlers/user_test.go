package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

func TestGetUserProfile(t *testing.T) {
	f := setupRouter()

	name := "Ada Lovelace"
	f.users.On("GetByGoogleSub", mock.Anything, testUserID).Return(&domain.User{
		ID:            42,
		GoogleSub:     testUserID,
		Email:         testUserEmail,
		Name:          &name,
		EmailVerified: true,
		CreatedAt:     time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}, nil)

	req, _ := http.NewRequest("GET", "/api/user/profile", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, testUserEmail, body["email"])
	assert.Equal(t, "Ada Lovelace", body["name"])
	assert.Equal(t, true, body["email_verified"])
	assert.NotContains(t, w.Body.String(), "google_sub")
}

func TestGetUserProfile_FirstRequestCreatesRow(t *testing.T) {
	f := setupRouter()

	f.users.On("GetByGoogleSub", mock.Anything, testUserID).Return(nil, domain.ErrUserNotFound)
	f.users.On("UpsertByGoogleSub", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.GoogleSub == testUserID && u.Email == testUserEmail
	})).Return(nil)

	req, _ := http.NewRequest("GET", "/api/user/profile", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.users.AssertExpectations(t)
}

func TestGetUserProfile_RepositoryDown(t *testing.T) {
	f := setupRouter()

	f.users.On("GetByGoogleSub", mock.Anything, testUserID).Return(nil, assert.AnError)

	req, _ := http.NewRequest("GET", "/api/user/profile", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), CodeInternal)
}
