package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/dto"
)

func (h *Handler) GetUserProfile(c *gin.Context) {
	sub := currentUserID(c)
	email := c.GetString("user_email")

	user, err := h.userSvc.Profile(c.Request.Context(), sub, email)
	if err != nil {
		log.WithError(err).WithField("user_id", sub).Error("profile lookup failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserProfileResponse(user))
}
