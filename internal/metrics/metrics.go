package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumemind_http_requests_total",
		Help: "Total number of HTTP requests, partitioned by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resumemind_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method", "route"})

	// Graph API metrics
	GraphRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumemind_graph_requests_total",
		Help: "Total number of knowledge-graph read requests.",
	})

	GraphRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resumemind_graph_request_duration_seconds",
		Help:    "Knowledge-graph query latency including downsampling.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	GraphNodesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resumemind_graph_nodes_returned",
		Help:    "Number of nodes returned per graph response.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	GraphDownsampled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumemind_graph_downsampled_total",
		Help: "Number of graph responses clamped to the node cap.",
	})

	GraphErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumemind_graph_errors_total",
		Help: "Graph read failures, partitioned by error code.",
	}, []string{"code"})

	// Parse pipeline metrics
	ParseTasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumemind_parse_tasks_total",
		Help: "Finished document parse tasks, partitioned by terminal status.",
	}, []string{"status"})

	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resumemind_parse_duration_seconds",
		Help:    "End-to-end duration of document parse tasks.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// Provider metrics
	ProviderTests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumemind_provider_tests_total",
		Help: "Provider connectivity tests, partitioned by result.",
	}, []string{"result"})

	// Idempotency metrics
	IdempotencyHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumemind_idempotency_hits_total",
		Help: "Mutating requests answered from the idempotency cache.",
	})
)
