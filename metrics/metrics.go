// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus counters for optimisation runs.
//
// All methods are safe on a nil *Metrics, so the solver can record
// unconditionally and callers opt in by passing a non-nil value.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "polyopt"

// Metrics groups the collectors of one registry.
type Metrics struct {
	runs         *prometheus.CounterVec   // algorithm, outcome
	iterations   *prometheus.CounterVec   // algorithm
	backtracks   *prometheus.CounterVec   // algorithm
	duration     *prometheus.HistogramVec // algorithm
	gradientNorm *prometheus.GaugeVec     // algorithm

	mu      sync.RWMutex
	enabled bool
}

// New registers the collectors on registry (prometheus.DefaultRegisterer when
// nil). Registering twice on the same registry panics, as promauto does.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		enabled: true,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Completed optimisation runs by algorithm and outcome",
		}, []string{"algorithm", "outcome"}),
		iterations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "iterations_total",
			Help:      "Solver iterations executed",
		}, []string{"algorithm"}),
		backtracks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "line_search_backtracks_total",
			Help:      "Step halvings performed by the backtracking line search",
		}, []string{"algorithm"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one optimisation run",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 10, 8), // 10µs to 100s
		}, []string{"algorithm"}),
		gradientNorm: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "gradient_norm",
			Help:      "Gradient norm at the latest iteration",
		}, []string{"algorithm"}),
	}
}

func (m *Metrics) on() bool {
	if m == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.enabled
}

// ObserveIteration counts one iteration and records its gradient norm.
func (m *Metrics) ObserveIteration(algorithm string, norm float64) {
	if !m.on() {
		return
	}
	m.iterations.WithLabelValues(algorithm).Inc()
	m.gradientNorm.WithLabelValues(algorithm).Set(norm)
}

// AddBacktracks counts n line-search halvings.
func (m *Metrics) AddBacktracks(algorithm string, n int) {
	if !m.on() || n <= 0 {
		return
	}
	m.backtracks.WithLabelValues(algorithm).Add(float64(n))
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(algorithm, outcome string, elapsed time.Duration) {
	if !m.on() {
		return
	}
	m.runs.WithLabelValues(algorithm, outcome).Inc()
	m.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// Disable stops recording until Enable is called.
func (m *Metrics) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

// Enable resumes recording.
func (m *Metrics) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}

// Handler serves the metrics of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
