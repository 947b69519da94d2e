package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// Machine-readable error codes carried in every error body.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooLarge        = "PAYLOAD_TOO_LARGE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError writes the error envelope `{"error": {"code", "message"}}`.
func RespondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: message}})
}

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrGraphNodeNotFound):
		RespondError(c, http.StatusNotFound, CodeNotFound, err.Error())

	// Conflict errors
	case errors.Is(err, domain.ErrDuplicateProvider),
		errors.Is(err, domain.ErrDuplicateRequest):
		RespondError(c, http.StatusConflict, CodeConflict, err.Error())

	// Payload limits
	case errors.Is(err, domain.ErrFileTooLarge):
		RespondError(c, http.StatusRequestEntityTooLarge, CodeTooLarge, err.Error())

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidFileType),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrInvalidFilename),
		errors.Is(err, domain.ErrInvalidStatusFilter),
		errors.Is(err, domain.ErrInvalidProviderType),
		errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrMissingAPIKey),
		errors.Is(err, domain.ErrMissingBaseURL),
		errors.Is(err, domain.ErrInvalidNodeType),
		errors.Is(err, domain.ErrInvalidMaxNodes),
		errors.Is(err, domain.ErrInvalidMaxDepth),
		errors.Is(err, domain.ErrNoActiveProvider):
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())

	// Auth errors
	case errors.Is(err, domain.ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, CodeUnauthenticated, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		RespondError(c, http.StatusForbidden, CodeForbidden, err.Error())

	// Rate limiting
	case errors.Is(err, domain.ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, CodeRateLimited, err.Error())

	default:
		RespondError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}
