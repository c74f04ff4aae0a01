package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	KindSelected  = "selected"
	KindFallback  = "fallback"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Scoring
	scoresComputed  prometheus.Counter
	inputRejections *prometheus.CounterVec
	scoreValues     prometheus.Histogram

	// Evaluation
	evaluations         *prometheus.CounterVec
	verdicts            *prometheus.CounterVec
	fallbackActivations *prometheus.CounterVec
	cutoffMisses        *prometheus.CounterVec
	selectionRejections *prometheus.CounterVec

	// Reports
	reportsRendered     prometheus.Counter
	reportErrors        prometheus.Counter
	reportRenderLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "admitcheck",
		subsystem:        "eligibility",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
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

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.scoresComputed = auto.NewCounter(m.counterOpts("scores_computed_total", "Composite scores computed"))
	m.inputRejections = auto.NewCounterVec(m.counterOpts("input_rejections_total", "Raw inputs rejected as out of domain"), []string{"field"})
	m.scoreValues = auto.NewHistogram(m.histogramOpts("score_value", "Distribution of computed composite scores",
		[]float64{10, 20, 30, 40, 50, 52, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100}))

	m.evaluations = auto.NewCounterVec(m.counterOpts("evaluations_total", "Eligibility evaluations by category"), []string{"category"})
	m.verdicts = auto.NewCounterVec(m.counterOpts("verdicts_total", "Verdicts by outcome and kind"), []string{"outcome", "kind"})
	m.fallbackActivations = auto.NewCounterVec(m.counterOpts("fallback_activations_total", "Freshman fallback verdicts appended, by track"), []string{"track"})
	m.cutoffMisses = auto.NewCounterVec(m.counterOpts("cutoff_misses_total", "Selected programs with no cutoff under the active category (configuration defects)"), []string{"category"})
	m.selectionRejections = auto.NewCounterVec(m.counterOpts("selection_rejections_total", "Selection changes rejected, by reason"), []string{"reason"})

	m.reportsRendered = auto.NewCounter(m.counterOpts("reports_rendered_total", "Reports rendered"))
	m.reportErrors = auto.NewCounter(m.counterOpts("report_errors_total", "Report render failures"))
	m.reportRenderLatency = auto.NewHistogram(m.histogramOpts("report_render_latency_milliseconds", "Report render latency in milliseconds", m.histogramBuckets))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordScoreComputed counts a computed score and observes its value.
func (m *Manager) RecordScoreComputed(score float64) {
	if !m.enabled {
		return
	}
	m.scoresComputed.Inc()
	m.scoreValues.Observe(score)
}

// RecordInputRejected counts an out-of-domain input.
func (m *Manager) RecordInputRejected(field string) {
	if !m.enabled {
		return
	}
	m.inputRejections.WithLabelValues(field).Inc()
}

// RecordEvaluation counts an evaluation under category.
func (m *Manager) RecordEvaluation(category string) {
	if !m.enabled {
		return
	}
	m.evaluations.WithLabelValues(category).Inc()
}

// RecordVerdict counts one verdict.
func (m *Manager) RecordVerdict(passed, fallback bool) {
	if !m.enabled {
		return
	}
	outcome, kind := OutcomeFailed, KindSelected
	if passed {
		outcome = OutcomePassed
	}
	if fallback {
		kind = KindFallback
	}
	m.verdicts.WithLabelValues(outcome, kind).Inc()
}

// RecordFallback counts an appended fallback verdict.
func (m *Manager) RecordFallback(track string) {
	if !m.enabled {
		return
	}
	m.fallbackActivations.WithLabelValues(track).Inc()
}

// RecordCutoffMiss counts a registry miss.
func (m *Manager) RecordCutoffMiss(category string) {
	if !m.enabled {
		return
	}
	m.cutoffMisses.WithLabelValues(category).Inc()
}

// RecordSelectionRejected counts a rejected selection change.
func (m *Manager) RecordSelectionRejected(reason string) {
	if !m.enabled {
		return
	}
	m.selectionRejections.WithLabelValues(reason).Inc()
}

// RecordReportRendered counts a report and observes its render latency.
func (m *Manager) RecordReportRendered(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.reportsRendered.Inc()
	m.reportRenderLatency.Observe(latencyMs)
}

// RecordReportError counts a failed render.
func (m *Manager) RecordReportError() {
	if !m.enabled {
		return
	}
	m.reportErrors.Inc()
}

// RecordHTTPRequest counts a request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByType counts an error by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error by endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

// Package-level helpers record on the global manager.

// RecordScoreComputed records on the global manager.
func RecordScoreComputed(score float64) { globalManager.RecordScoreComputed(score) }

// RecordInputRejected records on the global manager.
func RecordInputRejected(field string) { globalManager.RecordInputRejected(field) }

// RecordEvaluation records on the global manager.
func RecordEvaluation(category string) { globalManager.RecordEvaluation(category) }

// RecordVerdict records on the global manager.
func RecordVerdict(passed, fallback bool) { globalManager.RecordVerdict(passed, fallback) }

// RecordFallback records on the global manager.
func RecordFallback(track string) { globalManager.RecordFallback(track) }

// RecordCutoffMiss records on the global manager.
func RecordCutoffMiss(category string) { globalManager.RecordCutoffMiss(category) }

// RecordSelectionRejected records on the global manager.
func RecordSelectionRejected(reason string) { globalManager.RecordSelectionRejected(reason) }

// RecordReportRendered records on the global manager.
func RecordReportRendered(latencyMs float64) { globalManager.RecordReportRendered(latencyMs) }

// RecordReportError records on the global manager.
func RecordReportError() { globalManager.RecordReportError() }

// RecordHTTPRequest records on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByType records on the global manager.
func RecordErrorByType(errorType, severity string) { globalManager.RecordErrorByType(errorType, severity) }

// RecordErrorByEndpoint records on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage records on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount records on the global manager.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// GetRegistry returns the custom registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
