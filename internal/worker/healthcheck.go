package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/grafana/dskit/services"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	healthCheckTimeout = 30 * time.Second
	healthCheckRetries = 3
)

// HealthCheckService probes the API's health endpoint on a cron
// schedule. It keeps serverless database tiers warm and surfaces API
// outages in the worker logs.
type HealthCheckService struct {
	*services.BasicService

	spec   string
	url    string
	apiKey string
	client *resty.Client
}

func NewHealthCheckService(spec, apiBaseURL, apiKey string) *HealthCheckService {
	client := resty.New()
	client.SetTimeout(healthCheckTimeout)
	client.SetRetryCount(healthCheckRetries)

	s := &HealthCheckService{
		spec:   spec,
		url:    apiBaseURL + "/api/health",
		apiKey: apiKey,
		client: client,
	}
	s.BasicService = services.NewBasicService(nil, s.run, nil).WithName("health-check")
	return s
}

func (s *HealthCheckService) run(ctx context.Context) error {
	// POSIX cron syntax: "* * * * *", no seconds field.
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	if _, err := c.AddFunc(s.spec, func() { s.probe(ctx) }); err != nil {
		return fmt.Errorf("schedule health check %q: %w", s.spec, err)
	}

	c.Start()
	log.WithField("spec", s.spec).Info("health check scheduler started")

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info("health check scheduler stopped")
	return nil
}

func (s *HealthCheckService) probe(ctx context.Context) {
	start := time.Now()

	req := s.client.R().SetContext(ctx)
	if s.apiKey != "" {
		req.SetHeader("X-Api-Key", s.apiKey)
	}

	resp, err := req.Get(s.url)
	if err != nil {
		log.WithFields(log.Fields{
			"url":   s.url,
			"error": err.Error(),
		}).Error("scheduled health check failed")
		return
	}

	fields := log.Fields{
		"url":         s.url,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if resp.IsError() {
		log.WithFields(fields).Error("scheduled health check returned error status")
		return
	}
	log.WithFields(fields).Info("scheduled health check ok")
}
