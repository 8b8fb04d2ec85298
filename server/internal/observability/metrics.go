package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcomes.
const (
	OutcomeAvailable    = "available"
	OutcomeUnavailable  = "unavailable"
	OutcomeUndetermined = "undetermined"
	OutcomeError        = "error"
)

// Metrics holds the Prometheus metrics of the service.
type Metrics struct {
	registry *prometheus.Registry

	Queries            *prometheus.CounterVec
	QueryLatency       prometheus.Histogram
	TimeLookupFailures prometheus.Counter
	NarrationFailures  prometheus.Counter
	IngestedDocuments  prometheus.Counter
	UnresolvedRegions  prometheus.Counter
}

// NewMetrics registers the service metrics and the Go runtime collectors
// on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "officehours_queries_total",
			Help: "Total number of availability queries by outcome",
		}, []string{"outcome"}),

		QueryLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "officehours_query_duration_seconds",
			Help:    "Availability query latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),

		TimeLookupFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "officehours_time_lookup_failures_total",
			Help: "Total number of failed current-time lookups",
		}),

		NarrationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "officehours_narration_failures_total",
			Help: "Total number of failed LLM narrations",
		}),

		IngestedDocuments: factory.NewCounter(prometheus.CounterOpts{
			Name: "officehours_ingested_documents_total",
			Help: "Total number of knowledge documents ingested",
		}),

		UnresolvedRegions: factory.NewCounter(prometheus.CounterOpts{
			Name: "officehours_unresolved_region_queries_total",
			Help: "Total number of queries naming no configured region",
		}),
	}
}

// RecordQuery records a finished query.
func (m *Metrics) RecordQuery(outcome string, seconds float64) {
	m.Queries.WithLabelValues(outcome).Inc()
	m.QueryLatency.Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
