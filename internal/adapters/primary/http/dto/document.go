package dto

import (
	"github.com/google/uuid"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
)

type UploadDocumentResponse struct {
	DocumentID uuid.UUID `json:"document_id"`
	TaskID     string    `json:"task_id,omitempty"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
}

func ToUploadDocumentResponse(r *services.UploadResult) UploadDocumentResponse {
	return UploadDocumentResponse{
		DocumentID: r.DocumentID,
		TaskID:     r.TaskID,
		Status:     string(r.Status),
		Message:    "Document upload initiated",
	}
}

type DocumentResponse struct {
	ID                       uuid.UUID `json:"id"`
	OriginalFilename         string    `json:"original_filename"`
	FileType                 string    `json:"file_type"`
	FileSizeBytes            int64     `json:"file_size_bytes"`
	DocumentType             string    `json:"document_type"`
	ClassificationConfidence *float64  `json:"classification_confidence,omitempty"`
	Status                   string    `json:"status"`
	ErrorMessage             *string   `json:"error_message,omitempty"`
	TaskID                   *string   `json:"task_id,omitempty"`
	GraphNodeID              *string   `json:"graph_node_id,omitempty"`
	OntologyVersion          *string   `json:"ontology_version,omitempty"`
	CreatedAt                string    `json:"created_at"`
	UpdatedAt                string    `json:"updated_at"`
	ProcessedAt              *string   `json:"processed_at,omitempty"`
}

func ToDocumentResponse(d *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:                       d.ID,
		OriginalFilename:         d.OriginalFilename,
		FileType:                 string(d.FileType),
		FileSizeBytes:            d.FileSizeBytes,
		DocumentType:             string(d.DocumentType),
		ClassificationConfidence: d.ClassificationConfidence,
		Status:                   string(d.Status),
		ErrorMessage:             d.ErrorMessage,
		TaskID:                   d.TaskID,
		GraphNodeID:              d.GraphNodeID,
		OntologyVersion:          d.OntologyVersion,
		CreatedAt:                d.CreatedAt.Format(timeFormat),
		UpdatedAt:                d.UpdatedAt.Format(timeFormat),
	}
	if d.ProcessedAt != nil {
		s := d.ProcessedAt.Format(timeFormat)
		resp.ProcessedAt = &s
	}
	return resp
}

type ListDocumentsResponse struct {
	Items  []DocumentResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type DocumentStatusResponse struct {
	DocumentID      uuid.UUID `json:"document_id"`
	Status          string    `json:"status"`
	DocumentType    string    `json:"document_type"`
	ProgressMessage string    `json:"progress_message"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
}

func ToDocumentStatusResponse(r *services.StatusResult) DocumentStatusResponse {
	return DocumentStatusResponse{
		DocumentID:      r.DocumentID,
		Status:          string(r.Status),
		DocumentType:    string(r.DocumentType),
		ProgressMessage: r.ProgressMessage,
		ErrorMessage:    r.ErrorMessage,
	}
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}
