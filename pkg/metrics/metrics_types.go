package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline Metrics
	RunsTotal          *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
	StageErrorsTotal   *prometheus.CounterVec
	WarningsTotal      *prometheus.CounterVec
	LastRunTimestamp   prometheus.Gauge
	LastRunDurationSec prometheus.Gauge
	StageHeapBytes     *prometheus.GaugeVec

	// Edge Derivation Metrics
	InteractionRecordsTotal prometheus.Counter
	RetweetRecordsTotal     prometheus.Counter
	RetainedAuthors         prometheus.Gauge
	PairIncrementsTotal     prometheus.Counter
	TruncatedRetweeters     prometheus.Gauge

	// Graph Metrics
	GraphVertices       prometheus.Gauge
	GraphEdges          prometheus.Gauge
	GraphTotalWeight    prometheus.Gauge
	GraphComponents     prometheus.Gauge
	DuplicateVertices   prometheus.Gauge
	UnresolvedVertices  prometheus.Gauge
	UnresolvedLocations prometheus.Gauge

	// Algorithm Metrics
	Communities            prometheus.Gauge
	Modularity             prometheus.Gauge
	AlgorithmIterations    *prometheus.GaugeVec
	NonConvergenceTotal    *prometheus.CounterVec
	HomophilyStatistic     *prometheus.GaugeVec
	HomophilyKnownFraction *prometheus.GaugeVec

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initPipelineMetrics()
	r.initEdgeMetrics()
	r.initGraphMetrics()
	r.initAlgorithmMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
