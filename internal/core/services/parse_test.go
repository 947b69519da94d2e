package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/testutil"
)

type parseFixture struct {
	svc   *ParseService
	docs  *testutil.MockDocumentRepo
	store *testutil.MockObjectStore
	graph *testutil.MockGraphStore
	llm   *testutil.MockLLMClient
	specs *stubSpecResolver
}

func newParseFixture() *parseFixture {
	docs := new(testutil.MockDocumentRepo)
	store := new(testutil.MockObjectStore)
	graph := new(testutil.MockGraphStore)
	llm := new(testutil.MockLLMClient)
	specs := &stubSpecResolver{spec: domain.ProviderSpec{ModelName: "gpt-4o-mini"}}

	classifier := NewClassifierService(specs, llm)
	extraction := NewExtractionService(llm, graph)
	svc := NewParseService(docs, store, classifier, extraction, graph, specs)
	return &parseFixture{svc: svc, docs: docs, store: store, graph: graph, llm: llm, specs: specs}
}

func pendingTxtDocument(userID string) *domain.Document {
	return &domain.Document{
		ID:               uuid.New(),
		UserID:           userID,
		OriginalFilename: "resume.txt",
		FileType:         domain.FileTypeTXT,
		S3Key:            "users/user-1/documents/x/resume.txt",
		Status:           domain.DocumentStatusPending,
		DocumentType:     domain.DocumentTypeUnknown,
	}
}

func TestParseService_Process(t *testing.T) {
	f := newParseFixture()
	doc := pendingTxtDocument("user-1")

	f.docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	f.docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	f.store.On("Download", mock.Anything, doc.S3Key).Return([]byte("John Doe\nSoftware Engineer"), nil)

	// First completion classifies, second extracts.
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "resume", "confidence": 0.95, "reasoning": "work history"}`, nil).Once()
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"entities": [{"type": "Skill", "name": "Go"}], "relations": []}`, nil).Once()

	f.graph.On("MergeExtraction", mock.Anything, domain.GraphName("user-1"), doc.ID.String(), mock.Anything, mock.Anything).Return(nil)
	f.graph.On("UpsertDocumentNode", mock.Anything, domain.GraphName("user-1"), mock.AnythingOfType("output.DocumentNode")).Return("node-1", nil)
	f.docs.On("Update", mock.Anything, doc).Return(nil)

	err := f.svc.Process(context.Background(), doc.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusCompleted, doc.Status)
	assert.Equal(t, domain.DocumentTypeResume, doc.DocumentType)
	assert.NotNil(t, doc.MarkdownContent)
	assert.NotNil(t, doc.ProcessedAt)
	assert.Equal(t, "node-1", *doc.GraphNodeID)
	f.docs.AssertExpectations(t)
}

func TestParseService_Process_UnsupportedTypeIsTerminal(t *testing.T) {
	f := newParseFixture()
	doc := pendingTxtDocument("user-1")

	f.docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	f.docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	f.store.On("Download", mock.Anything, doc.S3Key).Return([]byte("invoice #4711 total due"), nil)
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "other", "confidence": 0.88, "reasoning": "billing document"}`, nil)
	f.docs.On("Update", mock.Anything, doc).Return(nil)

	err := f.svc.Process(context.Background(), doc.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDocument)
	assert.Equal(t, domain.DocumentStatusInvalid, doc.Status)
	assert.NotNil(t, doc.ErrorMessage)
}

func TestParseService_Process_DownloadFailureMarksFailed(t *testing.T) {
	f := newParseFixture()
	doc := pendingTxtDocument("user-1")

	f.docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	f.docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	f.store.On("Download", mock.Anything, doc.S3Key).Return(nil, errors.New("object missing"))
	f.docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusFailed, mock.AnythingOfType("*string")).Return(nil)

	err := f.svc.Process(context.Background(), doc.ID, "user-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedDocument)
	f.docs.AssertExpectations(t)
}

func TestParseService_Process_DocumentGone(t *testing.T) {
	f := newParseFixture()
	id := uuid.New()

	f.docs.On("UpdateStatus", mock.Anything, id, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	f.docs.On("GetByID", mock.Anything, "user-1", id).Return(nil, domain.ErrDocumentNotFound)

	err := f.svc.Process(context.Background(), id, "user-1")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestParseService_Process_ExtractionFailureStillCompletes(t *testing.T) {
	f := newParseFixture()
	doc := pendingTxtDocument("user-1")

	f.docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	f.docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	f.store.On("Download", mock.Anything, doc.S3Key).Return([]byte("John Doe"), nil)
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "resume", "confidence": 0.9, "reasoning": "cv"}`, nil).Once()
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model overloaded")).Once()
	f.graph.On("UpsertDocumentNode", mock.Anything, mock.Anything, mock.AnythingOfType("output.DocumentNode")).Return("node-1", nil)
	f.docs.On("Update", mock.Anything, doc).Return(nil)

	err := f.svc.Process(context.Background(), doc.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusCompleted, doc.Status)
}

func TestParseService_Process_NoProviderMarksInvalid(t *testing.T) {
	f := newParseFixture()
	f.specs.err = domain.ErrNoActiveProvider
	doc := pendingTxtDocument("user-1")

	f.docs.On("UpdateStatus", mock.Anything, doc.ID, domain.DocumentStatusValidating, (*string)(nil)).Return(nil)
	f.docs.On("GetByID", mock.Anything, "user-1", doc.ID).Return(doc, nil)
	f.store.On("Download", mock.Anything, doc.S3Key).Return([]byte("John Doe"), nil)
	f.docs.On("Update", mock.Anything, doc).Return(nil)

	err := f.svc.Process(context.Background(), doc.ID, "user-1")
	// Without a provider the classifier degrades to unknown, which is
	// not a parseable type, so the document lands invalid.
	assert.ErrorIs(t, err, domain.ErrUnsupportedDocument)
	assert.Equal(t, domain.DocumentStatusInvalid, doc.Status)
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}
