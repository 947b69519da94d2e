package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/tasks"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/testutil"
)

type fixedSpec struct{ err error }

func (f *fixedSpec) ActiveSpecForUser(context.Context, string) (domain.ProviderSpec, error) {
	return domain.ProviderSpec{}, f.err
}

func newHandler() (*Handler, *testutil.MockDocumentRepo, *testutil.MockObjectStore, *testutil.MockLLMClient, *testutil.MockGraphStore) {
	docs := new(testutil.MockDocumentRepo)
	store := new(testutil.MockObjectStore)
	llm := new(testutil.MockLLMClient)
	graph := new(testutil.MockGraphStore)
	specs := &fixedSpec{}

	classifier := services.NewClassifierService(specs, llm)
	extraction := services.NewExtractionService(llm, graph)
	parseSvc := services.NewParseService(docs, store, classifier, extraction, graph, specs)
	return NewHandler(parseSvc), docs, store, llm, graph
}

func parseTask(t *testing.T, documentID, userID string) *asynq.Task {
	t.Helper()
	task, err := tasks.NewDocumentParseTask(documentID, userID)
	assert.NoError(t, err)
	return task
}

func TestHandleDocumentParse(t *testing.T) {
	h, docs, store, llm, graph := newHandler()

	doc := &domain.Document{
		ID:               uuid.New(),
		UserID:           "user-1",
		OriginalFilename: "resume.txt",
		FileType:         domain.FileTypeTXT,
		S3Key:            "key",
		Status:           domain.DocumentStatusPending,
	}
	docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	store.On("Download", mock.Anything, "key").Return([]byte("John Doe, Engineer"), nil)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "resume", "confidence": 0.9, "reasoning": "cv"}`, nil).Once()
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"entities": [], "relations": []}`, nil).Once()
	graph.On("UpsertDocumentNode", mock.Anything, mock.Anything, mock.AnythingOfType("output.DocumentNode")).Return("node-1", nil)
	docs.On("Update", mock.Anything, doc).Return(nil)

	err := h.HandleDocumentParse(context.Background(), parseTask(t, doc.ID.String(), "user-1"))
	assert.NoError(t, err)
}

func TestHandleDocumentParse_BadPayload(t *testing.T) {
	h, _, _, _, _ := newHandler()

	err := h.HandleDocumentParse(context.Background(), asynq.NewTask(tasks.TypeDocumentParse, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentParse_BadDocumentID(t *testing.T) {
	h, _, _, _, _ := newHandler()

	err := h.HandleDocumentParse(context.Background(), parseTask(t, "not-a-uuid", "user-1"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentParse_DocumentGoneSkipsRetry(t *testing.T) {
	h, docs, _, _, _ := newHandler()

	id := uuid.New()
	docs.On("UpdateStatus", mock.Anything, id, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	docs.On("GetByID", mock.Anything, "user-1", id).Return(nil, domain.ErrDocumentNotFound)

	err := h.HandleDocumentParse(context.Background(), parseTask(t, id.String(), "user-1"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentParse_UnsupportedTypeSkipsRetry(t *testing.T) {
	h, docs, store, llm, _ := newHandler()

	doc := &domain.Document{
		ID:       uuid.New(),
		UserID:   "user-1",
		FileType: domain.FileTypeTXT,
		S3Key:    "key",
	}
	docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	store.On("Download", mock.Anything, "key").Return([]byte("invoice"), nil)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "other", "confidence": 0.8, "reasoning": "billing"}`, nil)
	docs.On("Update", mock.Anything, doc).Return(nil)

	err := h.HandleDocumentParse(context.Background(), parseTask(t, doc.ID.String(), "user-1"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentParse_InfraFailureRetries(t *testing.T) {
	h, docs, store, _, _ := newHandler()

	doc := &domain.Document{
		ID:       uuid.New(),
		UserID:   "user-1",
		FileType: domain.FileTypeTXT,
		S3Key:    "key",
	}
	docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	store.On("Download", mock.Anything, "key").Return(nil, context.DeadlineExceeded)
	docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusFailed, mock.AnythingOfType("*string")).Return(nil)

	err := h.HandleDocumentParse(context.Background(), parseTask(t, doc.ID.String(), "user-1"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
