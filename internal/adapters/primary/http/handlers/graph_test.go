package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

func TestGetUserGraph(t *testing.T) {
	f := setupRouter()

	raw := &ports.RawGraph{
		Nodes: []domain.GraphNode{
			{ID: "d1", Label: "resume.pdf", Type: domain.NodeDocument},
			{ID: "s1", Label: "Go", Type: domain.NodeSkill},
		},
		Links: []domain.GraphLink{{Source: "d1", Target: "s1", Type: domain.RelHasSkill}},
	}
	f.graph.On("FetchSubgraph", mock.Anything, mock.MatchedBy(func(q *domain.GraphQuery) bool {
		return q.UserID == testUserID && q.DocumentID == nil && q.MaxNodes == domain.MaxGraphNodes
	})).Return(raw, nil)

	req, _ := http.NewRequest("GET", "/api/user/graph", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var data domain.GraphData
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Len(t, data.Nodes, 2)
	assert.Len(t, data.Links, 1)
}

func TestGetUserGraph_FiltersAndLimits(t *testing.T) {
	f := setupRouter()

	f.graph.On("FetchSubgraph", mock.Anything, mock.MatchedBy(func(q *domain.GraphQuery) bool {
		return q.MaxNodes == 25 && len(q.NodeTypes) == 2 && *q.MaxDepth == 2
	})).Return(&ports.RawGraph{}, nil)

	req, _ := http.NewRequest("GET", "/api/user/graph?max_nodes=25&max_depth=2&types=Skill,Company", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.graph.AssertExpectations(t)
}

func TestGetUserGraph_BadNodeType(t *testing.T) {
	f := setupRouter()

	req, _ := http.NewRequest("GET", "/api/user/graph?types=Spaceship", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserGraph_MaxNodesOutOfRange(t *testing.T) {
	f := setupRouter()

	req, _ := http.NewRequest("GET", "/api/user/graph?max_nodes=5000", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserGraph_StoreDown(t *testing.T) {
	f := setupRouter()

	f.graph.On("FetchSubgraph", mock.Anything, mock.Anything).Return(nil, domain.ErrGraphUnavailable)

	req, _ := http.NewRequest("GET", "/api/user/graph", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL")
}

func TestGetDocumentGraph(t *testing.T) {
	f := setupRouter()

	id := uuid.New()
	doc := &domain.Document{ID: id, UserID: testUserID, Status: domain.DocumentStatusCompleted}
	f.docs.On("GetByID", mock.Anything, testUserID, id).Return(doc, nil)
	f.graph.On("FetchSubgraph", mock.Anything, mock.MatchedBy(func(q *domain.GraphQuery) bool {
		return q.DocumentID != nil && *q.DocumentID == id.String()
	})).Return(&ports.RawGraph{}, nil)

	req, _ := http.NewRequest("GET", "/api/documents/"+id.String()+"/graph", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetDocumentGraph_NotOwned(t *testing.T) {
	f := setupRouter()

	id := uuid.New()
	f.docs.On("GetByID", mock.Anything, testUserID, id).Return(nil, domain.ErrDocumentNotFound)

	req, _ := http.NewRequest("GET", "/api/documents/"+id.String()+"/graph", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.graph.AssertNotCalled(t, "FetchSubgraph", mock.Anything, mock.Anything)
}
