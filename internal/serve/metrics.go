package serve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's Prometheus collectors. Each server owns
// its registry so tests can build many instances without tripping
// duplicate-registration panics.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	analysesTotal   *prometheus.CounterVec
	failuresTotal   *prometheus.CounterVec
	analysisSeconds prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagelens_http_requests_total",
			Help: "HTTP requests by path, method and status code.",
		}, []string{"path", "method", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pagelens_http_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		analysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagelens_analyses_total",
			Help: "Completed analyses by report status and quality label.",
		}, []string{"status", "quality"}),
		failuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagelens_analysis_failures_total",
			Help: "Failed analyses by error type.",
		}, []string{"error_type"}),
		analysisSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "pagelens_analysis_duration_seconds",
			Help: "End-to-end analysis latency, network fetch included.",
			// Fetches dominate; the default buckets top out too early.
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}
