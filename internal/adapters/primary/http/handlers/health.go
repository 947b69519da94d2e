package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Health is the internal health endpoint: it verifies database connectivity
// alongside process liveness. Gated by X-Api-Key when one is configured.
func (h *Handler) Health(c *gin.Context) {
	if err := h.pingDB(c.Request.Context()); err != nil {
		log.WithError(err).Error("health check database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": h.appName,
			"version": h.version,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.appName,
		"version": h.version,
	})
}
