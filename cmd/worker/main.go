package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grafana/dskit/services"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/task"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/falkordb"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/llmgateway"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/postgres"
	redisadapter "github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/redis"
	s3adapter "github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/s3"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/taskqueue"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/config"
	svc "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/secrets"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validate config: %v", err)
	}

	initLogger(cfg)

	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// Secondary adapters
	docRepo := postgres.NewDocumentRepository(pool)
	providerRepo := postgres.NewLLMProviderRepository(pool)
	eventRepo := postgres.NewProviderEventRepository(pool)

	redisClient := redisadapter.NewClient(cfg.Redis)
	defer redisClient.Close()
	cacheStore := redisadapter.NewCacheStore(redisClient)

	falkorClient := falkordb.NewClient(cfg.FalkorDB)
	defer falkorClient.Close()
	graphStore := falkordb.NewGraphStore(falkorClient)

	objectStore, err := s3adapter.NewObjectStore(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalf("init object store: %v", err)
	}

	llmClient := llmgateway.NewClient()

	cipher, err := secrets.New(cfg.App.Secret)
	if err != nil {
		log.Fatalf("init key cipher: %v", err)
	}

	// Core services
	providerSvc := svc.NewLLMProviderService(providerRepo, eventRepo, cacheStore, llmClient, cipher, cfg.Redis.CacheTTL)
	classifier := svc.NewClassifierService(providerSvc, llmClient)
	extraction := svc.NewExtractionService(llmClient, graphStore)
	parseSvc := svc.NewParseService(docRepo, objectStore, classifier, extraction, graphStore, providerSvc)

	// Task routing
	mux := asynq.NewServeMux()
	task.NewHandler(parseSvc).Register(mux)

	// Worker services
	queueSvc := worker.NewQueueService(taskqueue.RedisOpt(cfg.Redis), cfg.Worker.Concurrency, mux)
	healthCheck := worker.NewHealthCheckService(cfg.Worker.HealthCheckSpec, cfg.Server.BaseURL, cfg.Server.InternalAPIKey)
	healthSrv := worker.NewHealthServer(cfg.Worker.HealthPort)

	manager, err := services.NewManager(queueSvc, healthCheck, healthSrv)
	if err != nil {
		log.Fatalf("create service manager: %v", err)
	}

	ctx := context.Background()
	if err := manager.StartAsync(ctx); err != nil {
		log.Fatalf("start worker services: %v", err)
	}
	if err := manager.AwaitHealthy(ctx); err != nil {
		log.Fatalf("worker services failed to become healthy: %v", err)
	}
	log.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	stopped := make(chan struct{})
	go func() {
		// A service failing takes the whole process down.
		_ = manager.AwaitStopped(ctx)
		close(stopped)
	}()

	select {
	case <-quit:
		log.Info("shutting down worker...")
		manager.StopAsync()
		<-stopped
	case <-stopped:
	}

	for _, failed := range manager.ServicesByState()[services.Failed] {
		log.Errorf("service %v failed: %v", failed, failed.FailureCase())
	}

	log.Info("worker stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
