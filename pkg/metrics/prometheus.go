// Package metrics provides Prometheus metrics for the paceline analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the paceline service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset Metrics - What is currently loaded
	datasetRows     prometheus.Gauge
	datasetMeets    prometheus.Gauge
	datasetRaces    prometheus.Gauge
	datasetEvents   prometheus.Gauge
	datasetLoadedAt prometheus.Gauge

	// Load Metrics - Snapshot ingestion
	loadsTotal   prometheus.Counter
	loadFailures prometheus.Counter
	loadDuration prometheus.Histogram

	// Query Metrics - Per-view analytics usage
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "paceline",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Dataset Metrics - current snapshot shape
	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of result rows in the current snapshot",
	})

	m.datasetMeets = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_meets",
		Help:      "Number of distinct meets in the current snapshot",
	})

	m.datasetRaces = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_races",
		Help:      "Number of distinct races in the current snapshot",
	})

	m.datasetEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_events",
		Help:      "Number of distinct event names in the current snapshot",
	})

	m.datasetLoadedAt = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loaded_at_unix",
		Help:      "Unix timestamp of the last successful snapshot load",
	})

	// Load Metrics - ingestion health
	m.loadsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loads_total",
		Help:      "Total number of successful snapshot loads",
	})

	m.loadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_failures_total",
		Help:      "Total number of failed snapshot loads (previous snapshot kept)",
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_milliseconds",
		Help:      "Snapshot load duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Query Metrics - per analytics view
	m.queriesTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "queries_total",
			Help:      "Total number of analytics queries by view",
		},
		[]string{"view"},
	)

	m.queryDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_duration_milliseconds",
			Help:      "Analytics query duration in milliseconds by view",
			Buckets:   m.histogramBuckets,
		},
		[]string{"view"},
	)

	// HTTP Performance Metrics - user experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses by endpoint and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// UpdateDataset sets the dataset shape gauges after a successful load.
func UpdateDataset(rows, meets, races, events int) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetMeets.Set(float64(meets))
	globalManager.datasetRaces.Set(float64(races))
	globalManager.datasetEvents.Set(float64(events))
}

// UpdateDatasetLoadedAt records the unix time of the last successful load.
func UpdateDatasetLoadedAt(unix int64) {
	globalManager.datasetLoadedAt.Set(float64(unix))
}

// RecordLoad records a successful snapshot load and its duration.
func RecordLoad(durationMs float64) {
	globalManager.loadsTotal.Inc()
	globalManager.loadDuration.Observe(durationMs)
}

// RecordLoadFailure records a failed snapshot load.
func RecordLoadFailure() {
	globalManager.loadFailures.Inc()
}

// RecordQuery records an analytics query for a view and its duration.
func RecordQuery(view string, durationMs float64) {
	globalManager.queriesTotal.WithLabelValues(view).Inc()
	globalManager.queryDuration.WithLabelValues(view).Observe(durationMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
