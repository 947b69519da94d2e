package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

func (h *Handler) GetDocumentGraph(c *gin.Context) {
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, "invalid document id")
		return
	}

	// The graph query is only answered for documents the user owns.
	if _, err := h.docSvc.Get(c.Request.Context(), userID, id); err != nil {
		mapDomainError(c, err)
		return
	}

	docID := id.String()
	q, err := graphQueryFromRequest(c, userID, &docID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	h.serveGraph(c, q)
}

func (h *Handler) GetUserGraph(c *gin.Context) {
	userID := currentUserID(c)

	q, err := graphQueryFromRequest(c, userID, nil)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	h.serveGraph(c, q)
}

func (h *Handler) serveGraph(c *gin.Context, q *domain.GraphQuery) {
	data, err := h.graphSvc.GetGraphData(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).WithField("user_id", q.UserID).Error("graph query failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func graphQueryFromRequest(c *gin.Context, userID string, documentID *string) (*domain.GraphQuery, error) {
	maxNodes, err := strconv.Atoi(c.DefaultQuery("max_nodes", strconv.Itoa(domain.MaxGraphNodes)))
	if err != nil {
		return nil, domain.ErrInvalidMaxNodes
	}

	var maxDepth *int
	if raw := c.Query("max_depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.ErrInvalidMaxDepth
		}
		maxDepth = &d
	}

	var types []string
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	return domain.NewGraphQuery(userID, documentID, types, maxNodes, maxDepth)
}
