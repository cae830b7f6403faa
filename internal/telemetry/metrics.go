package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-case benchmark measurements on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	CaseSeconds    *prometheus.GaugeVec
	CaseNsPerOp    *prometheus.GaugeVec
	CaseIterations *prometheus.CounterVec
	RunsTotal      prometheus.Counter
}

// NewMetrics creates and registers the benchmark metrics.
func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.CaseSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "squashbench",
			Name:      "case_seconds",
			Help:      "Wall-clock seconds of the last timed loop per case",
		},
		[]string{"case"},
	)

	m.CaseNsPerOp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "squashbench",
			Name:      "case_ns_per_op",
			Help:      "Nanoseconds per iteration of the last timed loop per case",
		},
		[]string{"case"},
	)

	m.CaseIterations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "squashbench",
			Name:      "case_iterations_total",
			Help:      "Total number of timed iterations per case",
		},
		[]string{"case"},
	)

	m.RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "squashbench",
			Name:      "runs_total",
			Help:      "Total number of completed benchmark runs",
		},
	)

	m.Registry.MustRegister(m.CaseSeconds, m.CaseNsPerOp, m.CaseIterations, m.RunsTotal)
	return m
}

// ObserveCase records one finished case.
func (m *Metrics) ObserveCase(name string, iterations int64, elapsed time.Duration) {
	m.CaseSeconds.WithLabelValues(name).Set(elapsed.Seconds())
	m.CaseIterations.WithLabelValues(name).Add(float64(iterations))
	if iterations > 0 {
		m.CaseNsPerOp.WithLabelValues(name).Set(float64(elapsed.Nanoseconds()) / float64(iterations))
	} else {
		m.CaseNsPerOp.WithLabelValues(name).Set(0)
	}
}

// RunCompleted counts a finished run.
func (m *Metrics) RunCompleted() {
	m.RunsTotal.Inc()
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
