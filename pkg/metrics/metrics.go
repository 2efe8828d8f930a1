package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load outcome label values. A load either keeps live data or falls back to
// the demo dataset for one of three reasons.
const (
	OutcomeLive        = "live"
	OutcomeMockError   = "mock_error"
	OutcomeMockEmpty   = "mock_empty"
	OutcomeMockTimeout = "mock_timeout"
)

// Metrics holds all Prometheus metrics exposed by the service.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	StoreLoadsTotal     *prometheus.CounterVec
	StoreMutationsTotal *prometheus.CounterVec

	SnapshotJobsTotal *prometheus.CounterVec
}

// New creates and registers all metrics on the given registry. A nil
// registry gets a private one, which keeps tests isolated.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nourishnote_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nourishnote_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StoreLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nourishnote_store_loads_total",
				Help: "Store load attempts by outcome",
			},
			[]string{"store", "outcome"},
		),
		StoreMutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nourishnote_store_mutations_total",
				Help: "Write-through mutations by operation and outcome",
			},
			[]string{"store", "op", "outcome"},
		),
		SnapshotJobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nourishnote_snapshot_jobs_total",
				Help: "Scheduled snapshot archive runs by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StoreLoadsTotal,
		m.StoreMutationsTotal,
		m.SnapshotJobsTotal,
	)

	return m
}

// Handler exposes the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLoad records one store load outcome.
func (m *Metrics) ObserveLoad(store, outcome string) {
	m.StoreLoadsTotal.WithLabelValues(store, outcome).Inc()
}

// ObserveMutation records one write-through mutation result.
func (m *Metrics) ObserveMutation(store, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StoreMutationsTotal.WithLabelValues(store, op, outcome).Inc()
}

// ObserveSnapshotJob records one scheduled snapshot run result.
func (m *Metrics) ObserveSnapshotJob(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SnapshotJobsTotal.WithLabelValues(outcome).Inc()
}
