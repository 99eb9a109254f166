// Package metrics provides Prometheus metrics for question selection.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the selection collectors. It implements
// selection.Recorder.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	selections        *prometheus.CounterVec
	selectionDuration *prometheus.HistogramVec
	questionsSelected prometheus.Counter
	oracleCalls       *prometheus.CounterVec
	randomFallbacks   *prometheus.CounterVec
}

// NewManager creates a Manager. Without WithPrometheusRegistry the
// collectors go to a fresh registry, so the output holds no Go runtime
// metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "examgen",
		subsystem:        "selection",
		histogramBuckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.selections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Selection calls by the cascade stage that produced the result",
	}, []string{"strategy"})

	m.selectionDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_seconds",
		Help:      "Wall time of a selection call",
		Buckets:   m.histogramBuckets,
	}, []string{"strategy"})

	m.questionsSelected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "questions_total",
		Help:      "Questions returned across all selection calls",
	})

	m.oracleCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_calls_total",
		Help:      "Oracle calls by outcome",
	}, []string{"outcome"})

	m.randomFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "random_fallbacks_total",
		Help:      "Random samples taken in place of an oracle pick",
	}, []string{"scope"})
}

// SelectionFinished records one selection call.
func (m *Manager) SelectionFinished(strategy string, d time.Duration, selected int) {
	m.selections.WithLabelValues(strategy).Inc()
	m.selectionDuration.WithLabelValues(strategy).Observe(d.Seconds())
	m.questionsSelected.Add(float64(selected))
}

// OracleCall records the outcome of one oracle call.
func (m *Manager) OracleCall(outcome string) {
	m.oracleCalls.WithLabelValues(outcome).Inc()
}

// RandomFallback records a random sample taken at scope.
func (m *Manager) RandomFallback(scope string) {
	m.randomFallbacks.WithLabelValues(scope).Inc()
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics to path in the text
// exposition format, for the node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
