package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// MetricsRegistry holds the Prometheus collectors for the appraisal
// pipeline. It doubles as the orchestrator's Observer.
type MetricsRegistry struct {
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	RemoteAttempts *prometheus.CounterVec
	Fallbacks      prometheus.Counter
	BatchDuration  prometheus.Histogram
	BatchSize      prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetricsRegistry creates and registers all collectors on a private
// registry, keeping tests free of global registration conflicts.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nameworth_cache_hits_total",
			Help: "Valuation cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nameworth_cache_misses_total",
			Help: "Valuation cache misses",
		}),
		RemoteAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nameworth_remote_attempts_total",
			Help: "Remote estimator attempts by outcome",
		}, []string{"result"}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nameworth_fallbacks_total",
			Help: "Valuations served by the local fallback model",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nameworth_batch_duration_seconds",
			Help:    "Bulk appraisal duration",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nameworth_batch_size_domains",
			Help:    "Bulk appraisal batch sizes",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.CacheHits, m.CacheMisses, m.RemoteAttempts,
		m.Fallbacks, m.BatchDuration, m.BatchSize,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather exposes the raw metric families, used by tests.
func (m *MetricsRegistry) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// valuation.Observer implementation.

func (m *MetricsRegistry) CacheHit()  { m.CacheHits.Inc() }
func (m *MetricsRegistry) CacheMiss() { m.CacheMisses.Inc() }
func (m *MetricsRegistry) RemoteAttempt(result string) {
	m.RemoteAttempts.WithLabelValues(result).Inc()
}
func (m *MetricsRegistry) Fallback() { m.Fallbacks.Inc() }
