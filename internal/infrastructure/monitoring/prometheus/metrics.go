// Package prometheus exposes the platform's operational metrics. All metrics
// live in a private registry so tests can build isolated instances.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
)

const namespace = "hbi"

// Histogram buckets. Analysis runs include several AI round trips, so the
// buckets stretch well past typical HTTP latencies.
var (
	httpDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	analysisDurationBuckets = []float64{1, 5, 10, 30, 60, 120, 300, 600}
	aiDurationBuckets       = []float64{.5, 1, 2, 5, 10, 30, 60, 120}
)

// Metrics holds every collector the platform records. It satisfies the
// orchestrator's metrics contract.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	analysisTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec

	aiRequestsTotal   *prometheus.CounterVec
	aiRequestDuration *prometheus.HistogramVec

	documentsUploaded prometheus.Counter
	sessionsErased    prometheus.Counter
}

// NewMetrics builds a Metrics instance backed by a fresh registry with the
// standard process and Go runtime collectors attached.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method and route.",
			Buckets:   httpDurationBuckets,
		}, []string{"method", "route"}),

		analysisTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Finished analysis runs by terminal status.",
		}, []string{"status"}),

		analysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_run_duration_seconds",
			Help:      "End-to-end analysis run duration by terminal status.",
			Buckets:   analysisDurationBuckets,
		}, []string{"status"}),

		aiRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "AI gateway calls by operation and outcome.",
		}, []string{"operation", "outcome"}),

		aiRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "AI gateway call duration by operation.",
			Buckets:   aiDurationBuckets,
		}, []string{"operation"}),

		documentsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_uploaded_total",
			Help:      "Documents accepted for analysis.",
		}),

		sessionsErased: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_erased_total",
			Help:      "Sessions removed by the erasure cascade.",
		}),
	}
}

// ObserveAnalysis records one finished analysis run.
func (m *Metrics) ObserveAnalysis(status analysis.Status, duration time.Duration) {
	m.analysisTotal.WithLabelValues(string(status)).Inc()
	m.analysisDuration.WithLabelValues(string(status)).Observe(duration.Seconds())
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAIRequest records one AI gateway call.
func (m *Metrics) ObserveAIRequest(operation, outcome string, duration time.Duration) {
	m.aiRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.aiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveDocumentUploaded records one accepted upload.
func (m *Metrics) ObserveDocumentUploaded() {
	m.documentsUploaded.Inc()
}

// ObserveSessionErased records one completed erasure cascade.
func (m *Metrics) ObserveSessionErased() {
	m.sessionsErased.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for test assertions.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
