package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grafana/dskit/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// HealthServer exposes liveness and metrics endpoints for the worker
// process so orchestrators can probe it like any other container.
type HealthServer struct {
	*services.BasicService

	srv *http.Server
}

func NewHealthServer(port int) *HealthServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "resumemind-worker",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s := &HealthServer{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	s.BasicService = services.NewBasicService(nil, s.run, nil).WithName("health-server")
	return s
}

func (s *HealthServer) run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("worker health server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
