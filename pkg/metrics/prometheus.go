// Package metrics provides Prometheus metrics for the rabona analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Analysis pipeline
	analysesTotal    prometheus.Counter
	analysisErrors   prometheus.Counter
	analysisDuration prometheus.Histogram
	sessionsCreated  prometheus.Counter
	storeErrors      prometheus.Counter
	rosterSize       prometheus.Gauge

	// Media retention pipeline
	mediaQueueSize      prometheus.Gauge
	mediaQueueCapacity  prometheus.Gauge
	mediaEnqueues       prometheus.Counter
	mediaEnqueueErrors  prometheus.Counter
	mediaWrites         prometheus.Counter
	mediaWriteErrors    prometheus.Counter
	mediaBytesWritten   prometheus.Counter
	mediaDuplicateSkips prometheus.Counter
	mediaWorkerCount    prometheus.Gauge
	mediaWriteLatency   prometheus.Histogram

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByComponent   *prometheus.CounterVec

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rabona",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_total",
		Help:      "Total number of completed analyze requests",
	})

	m.analysisErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_errors_total",
		Help:      "Total number of failed analyze requests",
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_milliseconds",
		Help:      "End-to-end analyze request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.sessionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_created_total",
		Help:      "Total number of persisted session records",
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_store_errors_total",
		Help:      "Total number of session store failures",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of reference players loaded at startup",
	})

	m.mediaQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_queue_size",
		Help:      "Current number of clips waiting for retention",
	})

	m.mediaQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_queue_capacity",
		Help:      "Maximum media retention queue capacity",
	})

	m.mediaEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_enqueue_total",
		Help:      "Total number of clips handed to the retention queue",
	})

	m.mediaEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_enqueue_errors_total",
		Help:      "Total number of clips dropped by queue backpressure",
	})

	m.mediaWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_writes_total",
		Help:      "Total number of clips written to the media store",
	})

	m.mediaWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_write_errors_total",
		Help:      "Total number of media store write failures",
	})

	m.mediaBytesWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_bytes_written_total",
		Help:      "Total bytes written to the media store",
	})

	m.mediaDuplicateSkips = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_duplicate_skips_total",
		Help:      "Total number of byte-identical clips skipped by dedupe",
	})

	m.mediaWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_worker_count",
		Help:      "Number of media retention workers",
	})

	m.mediaWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "media_write_latency_milliseconds",
		Help:      "Media store write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

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

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total errors by component and type",
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordAnalysis increments the completed analyses counter.
func RecordAnalysis() {
	globalManager.analysesTotal.Inc()
}

// RecordAnalysisError increments the failed analyses counter.
func RecordAnalysisError() {
	globalManager.analysisErrors.Inc()
}

// RecordAnalysisDuration records an end-to-end analyze duration.
func RecordAnalysisDuration(latencyMs float64) {
	globalManager.analysisDuration.Observe(latencyMs)
}

// RecordSessionCreated increments the persisted sessions counter.
func RecordSessionCreated() {
	globalManager.sessionsCreated.Inc()
}

// RecordStoreError increments the session store failure counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// UpdateRosterSize sets the loaded roster size.
func UpdateRosterSize(size int) {
	globalManager.rosterSize.Set(float64(size))
}

// UpdateMediaQueueSize sets the current retention queue length.
func UpdateMediaQueueSize(size int) {
	globalManager.mediaQueueSize.Set(float64(size))
}

// UpdateMediaQueueCapacity sets the retention queue capacity.
func UpdateMediaQueueCapacity(capacity int) {
	globalManager.mediaQueueCapacity.Set(float64(capacity))
}

// RecordMediaEnqueue increments the retention enqueue counter.
func RecordMediaEnqueue() {
	globalManager.mediaEnqueues.Inc()
}

// RecordMediaEnqueueError increments the backpressure drop counter.
func RecordMediaEnqueueError() {
	globalManager.mediaEnqueueErrors.Inc()
}

// RecordMediaWrite records one completed media store write of n bytes.
func RecordMediaWrite(n int64) {
	globalManager.mediaWrites.Inc()
	globalManager.mediaBytesWritten.Add(float64(n))
}

// RecordMediaWriteError increments the media store failure counter.
func RecordMediaWriteError() {
	globalManager.mediaWriteErrors.Inc()
}

// RecordMediaDuplicateSkip increments the dedupe skip counter.
func RecordMediaDuplicateSkip() {
	globalManager.mediaDuplicateSkips.Inc()
}

// UpdateMediaWorkerCount sets the retention worker count.
func UpdateMediaWorkerCount(count int) {
	globalManager.mediaWorkerCount.Set(float64(count))
}

// RecordMediaWriteLatency records a media store write latency.
func RecordMediaWriteLatency(latencyMs float64) {
	globalManager.mediaWriteLatency.Observe(latencyMs)
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the current heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry backing the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
