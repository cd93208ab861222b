package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coretweet_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"status"}, // success, error
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coretweet_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"stage"},
	)

	r.StageErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coretweet_stage_errors_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)

	r.WarningsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coretweet_warnings_total",
			Help: "Total number of non-fatal warnings raised by stages",
		},
		[]string{"stage"},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
	)

	r.LastRunDurationSec = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_last_run_duration_seconds",
			Help: "Wall time of the last run in seconds",
		},
	)

	r.StageHeapBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coretweet_stage_heap_alloc_bytes",
			Help: "Heap bytes in use when a stage finished",
		},
		[]string{"stage"},
	)
}
