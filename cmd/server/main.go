package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/dto"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/handlers"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/primary/http/middleware"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/falkordb"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/llmgateway"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/postgres"
	redisadapter "github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/redis"
	s3adapter "github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/s3"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/adapters/secondary/taskqueue"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/config"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/services"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/secrets"
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

	// Create database pool
	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	docRepo := postgres.NewDocumentRepository(pool)
	providerRepo := postgres.NewLLMProviderRepository(pool)
	eventRepo := postgres.NewProviderEventRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	redisClient := redisadapter.NewClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisadapter.Ping(context.Background(), redisClient); err != nil {
		log.Warnf("redis unreachable at startup (cache and idempotency degrade open): %v", err)
	}
	cacheStore := redisadapter.NewCacheStore(redisClient)
	idemStore := redisadapter.NewIdempotencyStore(redisClient)

	falkorClient := falkordb.NewClient(cfg.FalkorDB)
	defer falkorClient.Close()
	graphStore := falkordb.NewGraphStore(falkorClient)

	objectStore, err := s3adapter.NewObjectStore(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalf("init object store: %v", err)
	}

	asynqClient := asynq.NewClient(taskqueue.RedisOpt(cfg.Redis))
	defer asynqClient.Close()
	queue := taskqueue.NewTaskQueue(asynqClient)

	llmClient := llmgateway.NewClient()

	cipher, err := secrets.New(cfg.App.Secret)
	if err != nil {
		log.Fatalf("init key cipher: %v", err)
	}

	// Core Services (Application Layer)
	docSvc := services.NewDocumentService(docRepo, objectStore, queue, graphStore, cfg.S3.Bucket)
	providerSvc := services.NewLLMProviderService(providerRepo, eventRepo, cacheStore, llmClient, cipher, cfg.Redis.CacheTTL)
	graphSvc := services.NewGraphService(graphStore)
	userSvc := services.NewUserService(userRepo)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(docSvc, providerSvc, graphSvc, userSvc, pool.Ping, cfg.App.Name, cfg.App.Version)

	if err := dto.RegisterValidators(); err != nil {
		log.Fatalf("register validators: %v", err)
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup router
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
		middleware.Metrics(),
	)

	api := router.Group("/api")
	api.GET("/health", middleware.APIKey(cfg.Server.InternalAPIKey), h.Health)

	authed := api.Group("")
	authed.Use(
		middleware.Auth(cfg.Auth.SupabaseJWTSecret),
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		middleware.Idempotency(idemStore, cfg.Idempotency.TTL, cfg.Idempotency.LockTTL),
	)
	h.RegisterRoutes(authed)

	// Liveness probe, no auth
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID", "X-Api-Key")
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	return corsCfg
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
