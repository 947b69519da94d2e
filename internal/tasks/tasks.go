// Package tasks defines the queue contract shared by the API enqueuer and the
// worker handlers.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDocuments is the queue all document pipeline tasks run on.
	QueueDocuments = "documents"

	// TypeDocumentParse drives the classify-parse-extract pipeline for one document.
	TypeDocumentParse = "document:parse"
)

type DocumentParsePayload struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
}

func NewDocumentParseTask(documentID, userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(DocumentParsePayload{DocumentID: documentID, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("marshal document parse payload: %w", err)
	}
	return asynq.NewTask(TypeDocumentParse, payload), nil
}

func ParseDocumentParsePayload(t *asynq.Task) (DocumentParsePayload, error) {
	var p DocumentParsePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("unmarshal document parse payload: %w", err)
	}
	if p.DocumentID == "" || p.UserID == "" {
		return p, fmt.Errorf("document parse payload missing ids")
	}
	return p, nil
}
