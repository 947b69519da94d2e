package services

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

const presignExpiry = time.Hour

type DocumentService struct {
	docs   ports.DocumentRepository
	store  ports.ObjectStore
	queue  ports.TaskQueue
	graph  ports.GraphStore
	bucket string
}

func NewDocumentService(docs ports.DocumentRepository, store ports.ObjectStore, queue ports.TaskQueue, graph ports.GraphStore, bucket string) *DocumentService {
	return &DocumentService{
		docs:   docs,
		store:  store,
		queue:  queue,
		graph:  graph,
		bucket: bucket,
	}
}

// UploadResult is what the API returns immediately; processing continues in
// the worker.
type UploadResult struct {
	DocumentID uuid.UUID
	TaskID     string
	Status     domain.DocumentStatus
}

// Upload validates the file, persists the row and raw bytes, and schedules
// the parse task. A storage failure marks the row failed and is returned; a
// broken queue leaves the row pending for later requeueing.
func (s *DocumentService) Upload(ctx context.Context, userID, filename string, content []byte) (*UploadResult, error) {
	doc, err := domain.NewDocument(userID, filename, int64(len(content)), s.bucket)
	if err != nil {
		return nil, err
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.docs.UpdateStatus(ctx, doc.ID, domain.DocumentStatusUploading, nil); err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Warn("mark document uploading failed")
	}

	contentType := domain.ContentTypeFor(doc.FileType)
	if err := s.store.Upload(ctx, doc.S3Key, contentType, bytes.NewReader(content), doc.FileSizeBytes); err != nil {
		msg := domain.TruncateError(err.Error())
		if uerr := s.docs.UpdateStatus(ctx, doc.ID, domain.DocumentStatusFailed, &msg); uerr != nil {
			log.WithError(uerr).WithField("document_id", doc.ID).Error("mark document failed after upload error")
		}
		return nil, err
	}

	if err := s.docs.UpdateStatus(ctx, doc.ID, domain.DocumentStatusPending, nil); err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Warn("mark document pending failed")
	}

	taskID, err := s.queue.EnqueueDocumentParse(ctx, doc.ID, userID)
	if err != nil {
		// The row stays pending; retrying the upload endpoint re-enqueues.
		log.WithError(err).WithField("document_id", doc.ID).Error("enqueue parse task failed")
		return &UploadResult{DocumentID: doc.ID, Status: domain.DocumentStatusPending}, nil
	}

	if err := s.docs.SetTaskID(ctx, doc.ID, taskID); err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Warn("persist task id failed")
	}

	return &UploadResult{DocumentID: doc.ID, TaskID: taskID, Status: domain.DocumentStatusPending}, nil
}

func (s *DocumentService) Get(ctx context.Context, userID string, id uuid.UUID) (*domain.Document, error) {
	return s.docs.GetByID(ctx, userID, id)
}

func (s *DocumentService) List(ctx context.Context, userID string, filter ports.DocumentFilter) ([]*domain.Document, error) {
	return s.docs.List(ctx, userID, filter)
}

// StatusResult pairs the stored status with its progress hint for polling.
type StatusResult struct {
	DocumentID      uuid.UUID
	Status          domain.DocumentStatus
	DocumentType    domain.DocumentType
	ProgressMessage string
	ErrorMessage    *string
}

func (s *DocumentService) GetStatus(ctx context.Context, userID string, id uuid.UUID) (*StatusResult, error) {
	doc, err := s.docs.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		DocumentID:      doc.ID,
		Status:          doc.Status,
		DocumentType:    doc.DocumentType,
		ProgressMessage: doc.ProgressMessage(),
		ErrorMessage:    doc.ErrorMessage,
	}, nil
}

// Delete removes the stored object and graph node best-effort; the database
// row decides whether the document existed.
func (s *DocumentService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.S3Key); err != nil {
		log.WithError(err).WithField("document_id", id).Warn("delete stored object failed")
	}

	if err := s.docs.Delete(ctx, userID, id); err != nil {
		return err
	}

	if doc.GraphNodeID != nil {
		if err := s.graph.DeleteDocumentNode(ctx, domain.GraphName(userID), id.String()); err != nil {
			log.WithError(err).WithField("document_id", id).Warn("delete graph node failed")
		}
	}
	return nil
}

// PresignDownload returns a time-limited URL for the raw uploaded file.
func (s *DocumentService) PresignDownload(ctx context.Context, userID string, id uuid.UUID) (string, error) {
	doc, err := s.docs.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.S3Key, presignExpiry)
}
