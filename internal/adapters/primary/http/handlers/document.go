package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/dto"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

// currentUserID reads the identity the auth middleware stored on the context.
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

func (h *Handler) UploadDocument(c *gin.Context) {
	userID := currentUserID(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	// Read one byte past the cap so oversized uploads are told apart from
	// exactly-at-the-limit ones without buffering the whole body first.
	content, err := io.ReadAll(io.LimitReader(file, domain.MaxFileSizeBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "failed to read uploaded file")
		return
	}

	result, err := h.docSvc.Upload(c.Request.Context(), userID, header.Filename, content)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("document upload failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToUploadDocumentResponse(result))
}

func (h *Handler) ListDocuments(c *gin.Context) {
	userID := currentUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.DocumentFilter{Limit: limit, Offset: offset}
	if status := c.Query("status"); status != "" {
		if !domain.ValidDocumentStatus(status) {
			mapDomainError(c, domain.ErrInvalidStatusFilter)
			return
		}
		s := domain.DocumentStatus(status)
		filter.Status = &s
	}

	docs, err := h.docSvc.List(c.Request.Context(), userID, filter)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("list documents failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, dto.ToDocumentResponse(d))
	}

	c.JSON(http.StatusOK, dto.ListDocumentsResponse{
		Items:  items,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (h *Handler) GetDocument(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid document id")
		return
	}

	doc, err := h.docSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

func (h *Handler) GetDocumentStatus(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid document id")
		return
	}

	status, err := h.docSvc.GetStatus(c.Request.Context(), userID, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentStatusResponse(status))
}

func (h *Handler) GetDocumentDownloadURL(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid document id")
		return
	}

	url, err := h.docSvc.PresignDownload(c.Request.Context(), userID, id)
	if err != nil {
		log.WithError(err).WithField("document_id", id).Error("presign download failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DownloadURLResponse{URL: url})
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid document id")
		return
	}

	if err := h.docSvc.Delete(c.Request.Context(), userID, id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
