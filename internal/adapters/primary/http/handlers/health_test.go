package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func healthRouter(pingErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(nil, nil, nil, nil, func(context.Context) error { return pingErr }, "ResumeMindAI", "test")
	r := gin.New()
	r.GET("/api/health", h.Health)
	return r
}

func TestHealth(t *testing.T) {
	r := healthRouter(nil)

	req, _ := http.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "ResumeMindAI")
}

func TestHealth_DatabaseDown(t *testing.T) {
	r := healthRouter(errors.New("connection refused"))

	req, _ := http.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}
