package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/markdown"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/metrics"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/ontology"
)

// classifierSampleLen is how much converted text the classifier sees; full
// content only goes to extraction.
const classifierSampleLen = 5000

// ParseService drives the worker-side document pipeline: validate, classify,
// convert to markdown, extract graph entities, and record the terminal state.
type ParseService struct {
	docs       ports.DocumentRepository
	store      ports.ObjectStore
	classifier *ClassifierService
	extraction *ExtractionService
	graph      ports.GraphStore
	specs      SpecResolver
}

func NewParseService(docs ports.DocumentRepository, store ports.ObjectStore, classifier *ClassifierService, extraction *ExtractionService, graph ports.GraphStore, specs SpecResolver) *ParseService {
	return &ParseService{
		docs:       docs,
		store:      store,
		classifier: classifier,
		extraction: extraction,
		graph:      graph,
		specs:      specs,
	}
}

// Process runs the pipeline for one document. A returned error asks the queue
// to retry; the unsupported-document case is terminal and wraps
// domain.ErrUnsupportedDocument so the task handler can skip retries.
func (s *ParseService) Process(ctx context.Context, documentID uuid.UUID, userID string) error {
	start := time.Now()

	if err := s.docs.UpdateStatus(ctx, documentID, domain.DocumentStatusValidating, nil); err != nil {
		return fmt.Errorf("mark document validating: %w", err)
	}

	doc, err := s.docs.GetByID(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	content, err := s.store.Download(ctx, doc.S3Key)
	if err != nil {
		return s.fail(ctx, doc, start, fmt.Errorf("download document: %w", err))
	}

	text, err := markdown.Convert(content, doc.FileType)
	if err != nil {
		return s.fail(ctx, doc, start, fmt.Errorf("convert document: %w", err))
	}

	sample := truncateUTF8(text, classifierSampleLen)
	verdict := s.classifier.Classify(ctx, userID, sample)

	if !domain.SupportedForParsing(verdict.DocumentType) {
		msg := domain.UnsupportedTypeMessage(verdict.DocumentType)
		doc.Status = domain.DocumentStatusInvalid
		doc.DocumentType = verdict.DocumentType
		doc.ClassificationConfidence = &verdict.Confidence
		doc.ErrorMessage = &msg
		if err := s.docs.Update(ctx, doc); err != nil {
			return fmt.Errorf("mark document invalid: %w", err)
		}
		metrics.ParseTasks.WithLabelValues(string(domain.DocumentStatusInvalid)).Inc()
		metrics.ParseDuration.Observe(time.Since(start).Seconds())
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedDocument, verdict.DocumentType)
	}

	doc.Status = domain.DocumentStatusParsing
	doc.DocumentType = verdict.DocumentType
	doc.ClassificationConfidence = &verdict.Confidence
	doc.ErrorMessage = nil
	if err := s.docs.Update(ctx, doc); err != nil {
		return fmt.Errorf("mark document parsing: %w", err)
	}

	s.extract(ctx, doc, text)

	now := time.Now().UTC()
	version := ontology.Version
	doc.Status = domain.DocumentStatusCompleted
	doc.MarkdownContent = &text
	doc.OntologyVersion = &version
	doc.ProcessedAt = &now
	if err := s.docs.Update(ctx, doc); err != nil {
		return fmt.Errorf("mark document completed: %w", err)
	}

	metrics.ParseTasks.WithLabelValues(string(domain.DocumentStatusCompleted)).Inc()
	metrics.ParseDuration.Observe(time.Since(start).Seconds())
	return nil
}

// extract merges the document into the knowledge graph. Extraction is
// best-effort: the document completes even when the graph side fails.
func (s *ParseService) extract(ctx context.Context, doc *domain.Document, text string) {
	graph := domain.GraphName(doc.UserID)

	spec, err := s.specs.ActiveSpecForUser(ctx, doc.UserID)
	if err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Info("skipping graph extraction, no usable provider")
	} else if err := s.extraction.Extract(ctx, spec, doc, text); err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Error("graph extraction failed")
		metrics.GraphErrors.WithLabelValues("extraction").Inc()
	}

	nodeID, err := s.graph.UpsertDocumentNode(ctx, graph, ports.DocumentNode{
		DocumentID:      doc.ID.String(),
		UserID:          doc.UserID,
		Filename:        doc.OriginalFilename,
		DocumentType:    doc.DocumentType,
		ProcessedAt:     time.Now().UTC().Format(time.RFC3339),
		OntologyVersion: ontology.Version,
	})
	if err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Error("upsert document graph node failed")
		return
	}
	doc.GraphNodeID = &nodeID
}

// fail records a retryable failure on the row and propagates the error so the
// queue schedules another attempt.
func (s *ParseService) fail(ctx context.Context, doc *domain.Document, start time.Time, cause error) error {
	msg := domain.TruncateError(cause.Error())
	if err := s.docs.UpdateStatus(ctx, doc.ID, domain.DocumentStatusFailed, &msg); err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Error("mark document failed")
	}
	metrics.ParseTasks.WithLabelValues(string(domain.DocumentStatusFailed)).Inc()
	metrics.ParseDuration.Observe(time.Since(start).Seconds())
	return cause
}
