package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Load outcomes
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Registry holds the Prometheus metrics of analysis runs.
type Registry struct {
	*prometheus.Registry

	loadsTotal       *prometheus.CounterVec
	rowsTotal        *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	lastTrades       prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Registry: reg,

		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradestats_loads_total",
				Help: "Total number of trade log loads",
			},
			[]string{"status"},
		),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradestats_rows_total",
				Help: "Trade log rows seen by the normalizer",
			},
			[]string{"outcome"},
		),

		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradestats_analysis_duration_seconds",
				Help:    "Time spent loading and computing one trade log",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
		),

		lastTrades: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradestats_last_trades",
				Help: "Number of trades in the most recently analyzed log",
			},
		),
	}

	reg.MustRegister(r.loadsTotal)
	reg.MustRegister(r.rowsTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.lastTrades)

	return r
}

// RecordLoad records the outcome of one trade log load.
func (r *Registry) RecordLoad(status string, kept, dropped int) {
	r.loadsTotal.WithLabelValues(status).Inc()
	r.rowsTotal.WithLabelValues("kept").Add(float64(kept))
	r.rowsTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordAnalysis records a completed analysis.
func (r *Registry) RecordAnalysis(trades int, duration float64) {
	r.lastTrades.Set(float64(trades))
	r.analysisDuration.Observe(duration)
}

// WriteTextfile writes the registry in the text exposition format for the
// node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
