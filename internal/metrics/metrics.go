// Package metrics exposes Prometheus metrics for repeated validation runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simonhull/firebird-suite/nest/internal/schema"
)

const namespace = "nest"

// Run outcomes
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Collector records the outcome of validation runs.
//
// Metrics:
//   - nest_validation_runs_total{result}: runs by outcome (valid, invalid, error)
//   - nest_validation_violations: violations reported by the last completed run
//   - nest_validation_duration_seconds: run latency, including the tree walk
type Collector struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	violations prometheus.Gauge
	duration   prometheus.Histogram
}

// NewCollector creates a collector registered on registry.
// If registry is nil, a fresh registry is used.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "validation",
				Name:      "runs_total",
				Help:      "Total number of validation runs by result",
			},
			[]string{"result"},
		),
		violations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "validation",
				Name:      "violations",
				Help:      "Number of schema violations found by the last run",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "validation",
				Name:      "duration_seconds",
				Help:      "Duration of validation runs in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}

	registry.MustRegister(c.runs, c.violations, c.duration)

	// Pre-create label values so every outcome is exported from the start
	for _, result := range []string{ResultValid, ResultInvalid, ResultError} {
		c.runs.WithLabelValues(result)
	}

	return c
}

// Observe records one run. A non-nil err counts as an error run and leaves
// the violation gauge untouched.
func (c *Collector) Observe(result *schema.Result, err error, duration time.Duration) {
	c.duration.Observe(duration.Seconds())

	switch {
	case err != nil:
		c.runs.WithLabelValues(ResultError).Inc()
	case result.Valid():
		c.runs.WithLabelValues(ResultValid).Inc()
		c.violations.Set(0)
	default:
		c.runs.WithLabelValues(ResultInvalid).Inc()
		c.violations.Set(float64(len(result.Errors)))
	}
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler for the metrics endpoint
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
