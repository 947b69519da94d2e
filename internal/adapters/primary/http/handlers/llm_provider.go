package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/dto"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
)

func (h *Handler) ListSupportedProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.providerSvc.Supported()})
}

func (h *Handler) ListProviders(c *gin.Context) {
	userID := currentUserID(c)

	providers, err := h.providerSvc.List(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("list providers failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.LLMProviderResponse, 0, len(providers))
	for _, p := range providers {
		items = append(items, dto.ToLLMProviderResponse(p))
	}
	c.JSON(http.StatusOK, dto.ListLLMProvidersResponse{Items: items})
}

func (h *Handler) CreateProvider(c *gin.Context) {
	userID := currentUserID(c)

	var req dto.CreateLLMProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	provider, err := h.providerSvc.Create(c.Request.Context(), userID, services.CreateProviderRequest{
		ProviderType: req.ProviderType,
		ModelName:    req.ModelName,
		BaseURL:      req.BaseURL,
		APIKey:       req.APIKey,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLLMProviderResponse(provider))
}

func (h *Handler) UpdateProvider(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid provider id")
		return
	}

	var req dto.UpdateLLMProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	provider, err := h.providerSvc.Update(c.Request.Context(), userID, id, services.UpdateProviderRequest{
		ModelName: req.ModelName,
		BaseURL:   req.BaseURL,
		APIKey:    req.APIKey,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLLMProviderResponse(provider))
}

func (h *Handler) DeleteProvider(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid provider id")
		return
	}

	if err := h.providerSvc.Delete(c.Request.Context(), userID, id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListProviderEvents(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid provider id")
		return
	}

	events, err := h.providerSvc.Events(c.Request.Context(), userID, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ProviderEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, dto.ToProviderEventResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) TestProviderConnection(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid provider id")
		return
	}

	// The body is optional; an empty one tests the stored settings.
	var req dto.TestConnectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
	}

	result, err := h.providerSvc.TestConnection(c.Request.Context(), userID, id, req.Overrides())
	if err != nil {
		log.WithError(err).WithField("provider_id", id).Error("test connection failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionTestResponse(result))
}

func (h *Handler) ActivateProvider(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid provider id")
		return
	}

	if err := h.providerSvc.SetActive(c.Request.Context(), userID, id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "activated"})
}
