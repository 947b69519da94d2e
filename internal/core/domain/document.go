package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Document
// ============================================================================

type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusUploading  DocumentStatus = "uploading"
	DocumentStatusValidating DocumentStatus = "validating"
	DocumentStatusInvalid    DocumentStatus = "invalid"
	DocumentStatusParsing    DocumentStatus = "parsing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// ValidDocumentStatus reports whether s is a known status value.
func ValidDocumentStatus(s string) bool {
	switch DocumentStatus(s) {
	case DocumentStatusPending, DocumentStatusUploading, DocumentStatusValidating,
		DocumentStatusInvalid, DocumentStatusParsing, DocumentStatusCompleted,
		DocumentStatusFailed:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentTypeResume         DocumentType = "resume"
	DocumentTypeJobDescription DocumentType = "job_description"
	DocumentTypeCoverLetter    DocumentType = "cover_letter"
	DocumentTypeOther          DocumentType = "other"
	DocumentTypeUnknown        DocumentType = "unknown"
)

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
	FileTypeMD   FileType = "md"
)

const (
	MaxFileSizeBytes  = 10 * 1024 * 1024
	MaxErrorMessage   = 1000
	MaxFilenameLength = 500
)

// ContentTypeFor returns the MIME type stored alongside the uploaded object.
func ContentTypeFor(ft FileType) string {
	switch ft {
	case FileTypePDF:
		return "application/pdf"
	case FileTypeDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FileTypeTXT:
		return "text/plain"
	case FileTypeMD:
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}

// Document is an uploaded file plus everything the parse pipeline derived from it.
type Document struct {
	ID                       uuid.UUID      `json:"id"`
	UserID                   string         `json:"user_id"`
	OriginalFilename         string         `json:"original_filename"`
	FileType                 FileType       `json:"file_type"`
	FileSizeBytes            int64          `json:"file_size_bytes"`
	S3Key                    string         `json:"s3_key"`
	S3Bucket                 string         `json:"s3_bucket"`
	DocumentType             DocumentType   `json:"document_type"`
	ClassificationConfidence *float64       `json:"classification_confidence,omitempty"`
	MarkdownContent          *string        `json:"markdown_content,omitempty"`
	Status                   DocumentStatus `json:"status"`
	ErrorMessage             *string        `json:"error_message,omitempty"`
	TaskID                   *string        `json:"task_id,omitempty"`
	GraphNodeID              *string        `json:"graph_node_id,omitempty"`
	OntologyVersion          *string        `json:"ontology_version,omitempty"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
	ProcessedAt              *time.Time     `json:"processed_at,omitempty"`
}

// NewDocument validates the upload metadata and builds a pending document row.
func NewDocument(userID, filename string, sizeBytes int64, bucket string) (*Document, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrInvalidFilename
	}
	if len(filename) > MaxFilenameLength {
		return nil, ErrInvalidFilename
	}
	ft, err := FileTypeFromFilename(filename)
	if err != nil {
		return nil, err
	}
	if sizeBytes == 0 {
		return nil, ErrEmptyFile
	}
	if sizeBytes > MaxFileSizeBytes {
		return nil, ErrFileTooLarge
	}

	now := time.Now().UTC()
	id := uuid.New()
	return &Document{
		ID:               id,
		UserID:           userID,
		OriginalFilename: filename,
		FileType:         ft,
		FileSizeBytes:    sizeBytes,
		S3Key:            ObjectKey(userID, id, filename),
		S3Bucket:         bucket,
		DocumentType:     DocumentTypeUnknown,
		Status:           DocumentStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// FileTypeFromFilename derives the file type from the filename extension.
func FileTypeFromFilename(filename string) (FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch FileType(ext) {
	case FileTypePDF, FileTypeDOCX, FileTypeTXT, FileTypeMD:
		return FileType(ext), nil
	}
	return "", ErrInvalidFileType
}

// ObjectKey is the canonical storage location of a document's raw bytes.
func ObjectKey(userID string, documentID uuid.UUID, filename string) string {
	return fmt.Sprintf("users/%s/documents/%s/%s", userID, documentID, filename)
}

// ProgressMessage is the human-readable processing hint for status polling.
func (d *Document) ProgressMessage() string {
	switch d.Status {
	case DocumentStatusPending:
		return "Waiting to start processing"
	case DocumentStatusUploading:
		return "Uploading file to storage"
	case DocumentStatusValidating:
		return "Validating document type with AI"
	case DocumentStatusParsing:
		return "Converting document to markdown"
	case DocumentStatusCompleted:
		return "Processing complete"
	case DocumentStatusInvalid:
		return "Document validation failed"
	case DocumentStatusFailed:
		return "Processing failed"
	default:
		return "Processing"
	}
}

// TruncateError clamps pipeline error text before it is stored on the row.
func TruncateError(msg string) string {
	if len(msg) > MaxErrorMessage {
		return msg[:MaxErrorMessage]
	}
	return msg
}
