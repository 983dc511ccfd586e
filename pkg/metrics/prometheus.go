package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the arcade scoring service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Batch evaluation
	evaluations           *prometheus.CounterVec
	participantsEvaluated prometheus.Counter
	recordsSkipped        prometheus.Counter
	evaluationErrors      *prometheus.CounterVec
	evaluationLatency     prometheus.Histogram
	lastBatchParticipants prometheus.Gauge
	lastBatchMilestones   *prometheus.GaugeVec
	workerCount           prometheus.Gauge

	// Single-participant queries
	scoreRequests *prometheus.CounterVec

	// Record sources and exports
	rowsRead *prometheus.CounterVec
	exports  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "arcade",
		subsystem:        "scoring",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(
		m.counterOpts("evaluations_total", "Total number of batch evaluations by failure policy and outcome"),
		[]string{"policy", "outcome"},
	)
	m.participantsEvaluated = auto.NewCounter(
		m.counterOpts("participants_evaluated_total", "Total number of participants scored and ranked"),
	)
	m.recordsSkipped = auto.NewCounter(
		m.counterOpts("records_skipped_total", "Total number of invalid records dropped under the skip policy"),
	)
	m.evaluationErrors = auto.NewCounterVec(
		m.counterOpts("evaluation_errors_total", "Total number of failed batch evaluations by error type"),
		[]string{"error_type"},
	)
	m.evaluationLatency = auto.NewHistogram(
		m.histogramOpts("evaluation_latency_milliseconds", "Histogram of batch evaluation latency in milliseconds"),
	)
	m.lastBatchParticipants = auto.NewGauge(
		m.gaugeOpts("last_batch_participants", "Number of participants in the most recent batch"),
	)
	m.lastBatchMilestones = auto.NewGaugeVec(
		m.gaugeOpts("last_batch_milestone_participants", "Participants per milestone tier in the most recent batch"),
		[]string{"tier"},
	)
	m.workerCount = auto.NewGauge(
		m.gaugeOpts("worker_count", "Configured number of scoring workers"),
	)

	m.scoreRequests = auto.NewCounterVec(
		m.counterOpts("queries_total", "Total number of single-participant queries by kind"),
		[]string{"kind"},
	)

	m.rowsRead = auto.NewCounterVec(
		m.counterOpts("source_rows_total", "Total number of rows read from record sources by format"),
		[]string{"format"},
	)
	m.exports = auto.NewCounterVec(
		m.counterOpts("exports_total", "Total number of report exports by format"),
		[]string{"format"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
}

// RecordEvaluation counts one finished batch and its latency.
func (m *Manager) RecordEvaluation(policy, outcome string, latencyMs float64) {
	m.evaluations.WithLabelValues(policy, outcome).Inc()
	m.evaluationLatency.Observe(latencyMs)
}

// RecordParticipants adds evaluated and skipped record counts.
func (m *Manager) RecordParticipants(evaluated, skipped int) {
	m.participantsEvaluated.Add(float64(evaluated))
	m.recordsSkipped.Add(float64(skipped))
	m.lastBatchParticipants.Set(float64(evaluated))
}

// RecordEvaluationError counts a failed batch.
func (m *Manager) RecordEvaluationError(errorType string) {
	m.evaluationErrors.WithLabelValues(errorType).Inc()
}

// UpdateMilestoneDistribution sets the participant count of one tier for the last batch.
func (m *Manager) UpdateMilestoneDistribution(tier string, count int) {
	m.lastBatchMilestones.WithLabelValues(tier).Set(float64(count))
}

// RecordEvaluation counts one finished batch on the global manager.
func RecordEvaluation(policy, outcome string, latencyMs float64) {
	globalManager.RecordEvaluation(policy, outcome, latencyMs)
}

// RecordParticipants adds evaluated and skipped record counts.
func RecordParticipants(evaluated, skipped int) {
	globalManager.RecordParticipants(evaluated, skipped)
}

// RecordEvaluationError counts a failed batch.
func RecordEvaluationError(errorType string) {
	globalManager.RecordEvaluationError(errorType)
}

// UpdateMilestoneDistribution sets the participant count of one tier for the last batch.
func UpdateMilestoneDistribution(tier string, count int) {
	globalManager.UpdateMilestoneDistribution(tier, count)
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordQuery counts a single-participant query (score, level, rank).
func RecordQuery(kind string) {
	globalManager.scoreRequests.WithLabelValues(kind).Inc()
}

// RecordRowsRead adds rows read from a record source.
func RecordRowsRead(format string, rows int) {
	globalManager.rowsRead.WithLabelValues(format).Add(float64(rows))
}

// RecordExport counts one export.
func RecordExport(format string) {
	globalManager.exports.WithLabelValues(format).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
