// Package task adapts the core parsing service to asynq task handlers.
package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/tasks"
)

type Handler struct {
	parseSvc *services.ParseService
}

func NewHandler(parseSvc *services.ParseService) *Handler {
	return &Handler{parseSvc: parseSvc}
}

// Register attaches all task handlers to the given mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeDocumentParse, h.HandleDocumentParse)
}

// HandleDocumentParse runs the full parse pipeline for one document.
// Permanent failures (unknown document, unsupported type) are marked
// SkipRetry so asynq does not requeue work that can never succeed.
func (h *Handler) HandleDocumentParse(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseDocumentParsePayload(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	documentID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document id %q: %v: %w", payload.DocumentID, err, asynq.SkipRetry)
	}

	log.WithFields(log.Fields{
		"document_id": documentID,
		"user_id":     payload.UserID,
	}).Info("processing document parse task")

	err = h.parseSvc.Process(ctx, documentID, payload.UserID)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrDocumentNotFound) || errors.Is(err, domain.ErrUnsupportedDocument) {
		log.WithFields(log.Fields{
			"document_id": documentID,
			"error":       err.Error(),
		}).Warn("document parse failed permanently")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	return err
}
