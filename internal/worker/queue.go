// Package worker hosts the background process: the asynq consumer that
// runs document parse tasks, a periodic API health probe, and a small
// health endpoint for container orchestration. Each piece is a dskit
// service so the whole process starts and stops as one unit.
package worker

import (
	"context"

	"github.com/grafana/dskit/services"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/tasks"
)

// QueueService runs the asynq server consuming the documents queue.
type QueueService struct {
	*services.BasicService

	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewQueueService(redisOpt asynq.RedisClientOpt, concurrency int, mux *asynq.ServeMux) *QueueService {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			tasks.QueueDocuments: 1,
		},
		Logger: asynqLogger{},
	})

	s := &QueueService{srv: srv, mux: mux}
	s.BasicService = services.NewBasicService(nil, s.run, nil).WithName("task-queue")
	return s
}

func (s *QueueService) run(ctx context.Context) error {
	if err := s.srv.Start(s.mux); err != nil {
		return err
	}
	log.Info("task queue consumer started")

	<-ctx.Done()
	s.srv.Shutdown()
	log.Info("task queue consumer stopped")
	return nil
}

// asynqLogger routes asynq's internal logging through logrus.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { log.Debug(args...) }
func (asynqLogger) Info(args ...interface{})  { log.Info(args...) }
func (asynqLogger) Warn(args ...interface{})  { log.Warn(args...) }
func (asynqLogger) Error(args ...interface{}) { log.Error(args...) }
func (asynqLogger) Fatal(args ...interface{}) { log.Fatal(args...) }
