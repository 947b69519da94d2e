// Package taskqueue implements the task queue port on asynq.
package taskqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/config"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/tasks"
)

const (
	parseMaxRetry = 3
	parseTimeout  = 10 * time.Minute
)

type taskQueue struct {
	client *asynq.Client
}

// RedisOpt converts our Redis settings into asynq's connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewTaskQueue(client *asynq.Client) ports.TaskQueue {
	return &taskQueue{client: client}
}

func (q *taskQueue) EnqueueDocumentParse(ctx context.Context, documentID uuid.UUID, userID string) (string, error) {
	task, err := tasks.NewDocumentParseTask(documentID.String(), userID)
	if err != nil {
		return "", err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(tasks.QueueDocuments),
		asynq.MaxRetry(parseMaxRetry),
		asynq.Timeout(parseTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue document parse: %w", err)
	}
	return info.ID, nil
}
