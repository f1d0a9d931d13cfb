package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Data quality
	MalformedRecords *prometheus.CounterVec

	// Store metrics
	StoreMutations *prometheus.CounterVec
	StoreSize      *prometheus.GaugeVec

	// Query metrics
	Searches       *prometheus.CounterVec
	ViewCacheHits  *prometheus.CounterVec
	ViewCacheMiss  *prometheus.CounterVec
	ViewLatency    *prometheus.HistogramVec
	CaptureSession *prometheus.CounterVec

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on reg. A nil
// registerer falls back to the default Prometheus registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		MalformedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_records_total",
			Help:      "Records excluded from derived views because they could not be parsed",
		}, []string{"entity", "reason"}),

		StoreMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Total number of store mutations",
		}, []string{"entity", "operation"}),
		StoreSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records",
			Help:      "Current number of records per store",
		}, []string{"entity"}),

		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of search queries",
		}, []string{"entity"}),
		ViewCacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "view_cache_hits_total",
			Help:      "Schedule views served from cache",
		}, []string{"view"}),
		ViewCacheMiss: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "view_cache_misses_total",
			Help:      "Schedule views computed from the store",
		}, []string{"view"}),
		ViewLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "view_duration_seconds",
			Help:      "Time spent aggregating schedule views",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"view"}),
		CaptureSession: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "radiography",
			Name:      "capture_transitions_total",
			Help:      "Radiography capture session state transitions",
		}, []string{"state"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
		}, []string{"method", "path", "status"}),
		RequestTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of HTTP errors",
		}, []string{"method", "path", "type"}),
	}
}

// NewNop returns metrics registered on a private registry, for tests and tools
// that never expose them.
func NewNop() *Metrics {
	return NewMetrics("clinic", prometheus.NewRegistry())
}

// ObserveStore returns a store observer recording mutations and size for entity.
func (m *Metrics) ObserveStore(entity string) func(op string, size int) {
	return func(op string, size int) {
		m.StoreMutations.WithLabelValues(entity, op).Inc()
		m.StoreSize.WithLabelValues(entity).Set(float64(size))
	}
}
