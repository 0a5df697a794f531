// Package metrics provides Prometheus metrics for the lobby service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "lobby"

const defaultRefreshInterval = 10 * time.Second

// httpDurationBuckets are in milliseconds, page renders included.
var httpDurationBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace       string
	deployment      string
	refreshInterval time.Duration
	registry        prometheus.Registerer

	// Catalog
	catalogLoads       *prometheus.CounterVec
	catalogLoadLatency prometheus.Histogram
	catalogSize        prometheus.Gauge

	// Sessions and roster
	sessionsCreated     prometheus.Counter
	sessionsActive      prometheus.Gauge
	selections          *prometheus.CounterVec
	duplicateSelections prometheus.Counter
	predictions         *prometheus.CounterVec
	iconFallbacks       prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Collectors are registered on the
// configured registry immediately.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       DefaultNamespace,
		refreshInterval: defaultRefreshInterval,
		registry:        prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	reg := m.registry
	if m.deployment != "" {
		reg = prometheus.WrapRegistererWith(prometheus.Labels{"deployment": m.deployment}, reg)
	}
	auto := promauto.With(reg)

	m.catalogLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "catalog_loads_total",
		Help:      "Catalog fetch attempts by outcome",
	}, []string{"outcome"})

	m.catalogLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "catalog_load_latency_milliseconds",
		Help:      "Catalog fetch latency in milliseconds",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "catalog_champions",
		Help:      "Number of selectable champions in the loaded catalog",
	})

	m.sessionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of lobby sessions created",
	})

	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "sessions_active",
		Help:      "Sessions currently held in the session store",
	})

	m.selections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "selections_total",
		Help:      "Champion selections by team",
	}, []string{"team"})

	m.duplicateSelections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "duplicate_selections_total",
		Help:      "Selections that left the same champion in more than one slot",
	})

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "predictions_total",
		Help:      "Predictions served by winning team",
	}, []string{"winner"})

	m.iconFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "icon_fallbacks_total",
		Help:      "Champion icons that were missing and replaced by the placeholder",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   httpDurationBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RefreshInterval reports how often gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// RecordCatalogLoad records one catalog fetch attempt.
func RecordCatalogLoad(ok bool, latencyMs float64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	globalManager.catalogLoads.WithLabelValues(outcome).Inc()
	globalManager.catalogLoadLatency.Observe(latencyMs)
}

// UpdateCatalogSize sets the number of champions in the catalog.
func UpdateCatalogSize(n int) {
	globalManager.catalogSize.Set(float64(n))
}

// RecordSessionCreated increments the created sessions counter.
func RecordSessionCreated() {
	globalManager.sessionsCreated.Inc()
}

// UpdateActiveSessions sets the number of stored sessions.
func UpdateActiveSessions(n int) {
	globalManager.sessionsActive.Set(float64(n))
}

// RecordSelection counts a slot selection for team.
func RecordSelection(team string) {
	globalManager.selections.WithLabelValues(team).Inc()
}

// RecordDuplicateSelection counts a selection that produced a duplicate pick.
func RecordDuplicateSelection() {
	globalManager.duplicateSelections.Inc()
}

// RecordPrediction counts a served prediction.
func RecordPrediction(winner string) {
	globalManager.predictions.WithLabelValues(winner).Inc()
}

// RecordIconFallback counts an icon replaced by the placeholder.
func RecordIconFallback() {
	globalManager.iconFallbacks.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage metric.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count metric.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing the package-level collectors.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
