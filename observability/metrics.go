package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Scan cycle metrics
	ScansTotal        *prometheus.CounterVec
	ScanDuration      *prometheus.HistogramVec
	ScansSkippedTotal *prometheus.CounterVec
	SnapshotSize      prometheus.Gauge
	ScannerRunning    prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		// Scan cycle metrics
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nse_screener",
				Subsystem: "scanner",
				Name:      "scans_total",
				Help:      "Total number of scan cycles by trigger and outcome",
			},
			[]string{"trigger", "status"},
		),
		ScanDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nse_screener",
				Subsystem: "scanner",
				Name:      "scan_duration_seconds",
				Help:      "Duration of scan cycles in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"trigger"},
		),
		ScansSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nse_screener",
				Subsystem: "scanner",
				Name:      "scans_skipped_total",
				Help:      "Total number of scan cycles skipped without a history entry",
			},
			[]string{"reason"},
		),
		SnapshotSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "nse_screener",
				Subsystem: "scanner",
				Name:      "snapshot_size",
				Help:      "Number of quotes in the most recently stored snapshot",
			},
		),
		ScannerRunning: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "nse_screener",
				Subsystem: "scanner",
				Name:      "running",
				Help:      "Whether the background scanner is running (1) or stopped (0)",
			},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nse_screener",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nse_screener",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),

		// Circuit breaker metrics
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "nse_screener",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nse_screener",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordScan records a completed scan cycle
func (m *Metrics) RecordScan(trigger, status string, duration time.Duration) {
	m.ScansTotal.WithLabelValues(trigger, status).Inc()
	m.ScanDuration.WithLabelValues(trigger).Observe(duration.Seconds())
}

// RecordScanSkipped records a scan cycle that was skipped
func (m *Metrics) RecordScanSkipped(reason string) {
	m.ScansSkippedTotal.WithLabelValues(reason).Inc()
}

// SetSnapshotSize records the size of the latest stored snapshot
func (m *Metrics) SetSnapshotSize(n int) {
	m.SnapshotSize.Set(float64(n))
}

// SetScannerRunning records whether the background scanner is running
func (m *Metrics) SetScannerRunning(running bool) {
	if running {
		m.ScannerRunning.Set(1)
	} else {
		m.ScannerRunning.Set(0)
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveScan records the scan duration and outcome
func (t *Timer) ObserveScan(trigger, status string) {
	t.metrics.RecordScan(trigger, status, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
