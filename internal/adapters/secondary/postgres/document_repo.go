package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type documentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(pool *pgxpool.Pool) ports.DocumentRepository {
	return &documentRepo{pool: pool}
}

const documentColumns = `
	id, user_id, original_filename, file_type, file_size_bytes, s3_key, s3_bucket,
	document_type, classification_confidence, markdown_content, status,
	error_message, task_id, graph_node_id, ontology_version,
	created_at, updated_at, processed_at
`

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, user_id, original_filename, file_type, file_size_bytes, s3_key, s3_bucket,
			document_type, classification_confidence, markdown_content, status,
			error_message, task_id, graph_node_id, ontology_version, created_at, updated_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.OriginalFilename,
		doc.FileType,
		doc.FileSizeBytes,
		doc.S3Key,
		doc.S3Bucket,
		doc.DocumentType,
		doc.ClassificationConfidence,
		doc.MarkdownContent,
		doc.Status,
		doc.ErrorMessage,
		doc.TaskID,
		doc.GraphNodeID,
		doc.OntologyVersion,
		doc.CreatedAt,
		doc.UpdatedAt,
		doc.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	doc, err := r.scanDocument(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) List(ctx context.Context, userID string, filter ports.DocumentFilter) ([]*domain.Document, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		rows pgx.Rows
		err  error
	)
	if filter.Status != nil {
		query := `SELECT ` + documentColumns + `
			FROM documents
			WHERE user_id = $1 AND status = $2
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4`
		rows, err = r.pool.Query(ctx, query, userID, *filter.Status, limit, offset)
	} else {
		query := `SELECT ` + documentColumns + `
			FROM documents
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		rows, err = r.pool.Query(ctx, query, userID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := r.scanDocumentFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	query := `
		UPDATE documents
		SET document_type = $1, classification_confidence = $2, markdown_content = $3,
			status = $4, error_message = $5, task_id = $6, graph_node_id = $7,
			ontology_version = $8, processed_at = $9, updated_at = NOW()
		WHERE id = $10
	`
	result, err := r.pool.Exec(ctx, query,
		doc.DocumentType,
		doc.ClassificationConfidence,
		doc.MarkdownContent,
		doc.Status,
		doc.ErrorMessage,
		doc.TaskID,
		doc.GraphNodeID,
		doc.OntologyVersion,
		doc.ProcessedAt,
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, errorMessage *string) error {
	query := `
		UPDATE documents
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.pool.Exec(ctx, query, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) SetTaskID(ctx context.Context, id uuid.UUID, taskID string) error {
	query := `UPDATE documents SET task_id = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.pool.Exec(ctx, query, taskID, id)
	if err != nil {
		return fmt.Errorf("set document task id: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// ============================================================================
// Scan Helpers
// ============================================================================

func (r *documentRepo) scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.OriginalFilename,
		&doc.FileType,
		&doc.FileSizeBytes,
		&doc.S3Key,
		&doc.S3Bucket,
		&doc.DocumentType,
		&doc.ClassificationConfidence,
		&doc.MarkdownContent,
		&doc.Status,
		&doc.ErrorMessage,
		&doc.TaskID,
		&doc.GraphNodeID,
		&doc.OntologyVersion,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&doc.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) scanDocumentFromRows(rows pgx.Rows) (*domain.Document, error) {
	return r.scanDocument(rows)
}
