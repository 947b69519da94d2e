package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
)

// Pinger reports backend connectivity for the health endpoint.
type Pinger func(ctx context.Context) error

type Handler struct {
	docSvc      *services.DocumentService
	providerSvc *services.LLMProviderService
	graphSvc    *services.GraphService
	userSvc     *services.UserService

	pingDB  Pinger
	appName string
	version string
}

func New(docSvc *services.DocumentService, providerSvc *services.LLMProviderService, graphSvc *services.GraphService, userSvc *services.UserService, pingDB Pinger, appName, version string) *Handler {
	return &Handler{
		docSvc:      docSvc,
		providerSvc: providerSvc,
		graphSvc:    graphSvc,
		userSvc:     userSvc,
		pingDB:      pingDB,
		appName:     appName,
		version:     version,
	}
}

// RegisterRoutes mounts the authenticated API surface. The caller decides
// which middleware the group carries.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Documents
	r.POST("/documents/upload", h.UploadDocument)
	r.GET("/documents", h.ListDocuments)
	r.GET("/documents/:id", h.GetDocument)
	r.GET("/documents/:id/status", h.GetDocumentStatus)
	r.GET("/documents/:id/download", h.GetDocumentDownloadURL)
	r.GET("/documents/:id/graph", h.GetDocumentGraph)
	r.DELETE("/documents/:id", h.DeleteDocument)

	// LLM Providers
	r.GET("/llm-providers/supported", h.ListSupportedProviders)
	r.GET("/llm-providers", h.ListProviders)
	r.POST("/llm-providers", h.CreateProvider)
	r.PATCH("/llm-providers/:id", h.UpdateProvider)
	r.DELETE("/llm-providers/:id", h.DeleteProvider)
	r.GET("/llm-providers/:id/events", h.ListProviderEvents)
	r.POST("/llm-providers/:id/test-connection", h.TestProviderConnection)
	r.POST("/llm-providers/:id/activate", h.ActivateProvider)

	// User
	r.GET("/user/profile", h.GetUserProfile)
	r.GET("/user/graph", h.GetUserGraph)
}
