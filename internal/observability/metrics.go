package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parking"

// Outcome labels for upstream fetches.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

// Result labels for cache lookups.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the Prometheus collectors for the upstream adapter, the cache and the refresh worker.
type Metrics struct {
	UpstreamFetches       *prometheus.CounterVec // labels: outcome={success,error,empty}
	UpstreamFetchDuration prometheus.Histogram
	RecordsMapped         prometheus.Counter
	MalformedGeopoints    prometheus.Counter

	CacheLookups   *prometheus.CounterVec // labels: result={hit,miss,error}
	CacheRefreshes *prometheus.CounterVec // labels: outcome={success,error,empty}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// every test can build its own set without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetches_total",
			Help:      "Upstream parking feed fetches by outcome.",
		}, []string{"outcome"}),
		UpstreamFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Duration of a complete upstream fetch including decoding.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		RecordsMapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_mapped_total",
			Help:      "Upstream records mapped to parkings.",
		}),
		MalformedGeopoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_geopoints_total",
			Help:      "Records whose geopoint could not be parsed.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Parking list cache lookups by result.",
		}, []string{"result"}),
		CacheRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_refreshes_total",
			Help:      "Background cache refreshes by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.UpstreamFetches,
		m.UpstreamFetchDuration,
		m.RecordsMapped,
		m.MalformedGeopoints,
		m.CacheLookups,
		m.CacheRefreshes,
	}
}
