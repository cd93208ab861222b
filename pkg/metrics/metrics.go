package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordStage records a pipeline stage with its duration and the heap
// in use when it finished
func (r *Registry) RecordStage(stage string, duration time.Duration, err error) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.StageHeapBytes.WithLabelValues(stage).Set(float64(m.HeapAlloc))
	if err != nil {
		r.StageErrorsTotal.WithLabelValues(stage).Inc()
	}
}

// RecordWarnings counts non-fatal warnings raised by a stage
func (r *Registry) RecordWarnings(stage string, n int) {
	if n > 0 {
		r.WarningsTotal.WithLabelValues(stage).Add(float64(n))
	}
}

// RecordRun records a finished run
func (r *Registry) RecordRun(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.RunsTotal.WithLabelValues(status).Inc()
	r.LastRunTimestamp.SetToCurrentTime()
	r.LastRunDurationSec.Set(duration.Seconds())
}

// RecordEdgeDerivation records edge builder counters
func (r *Registry) RecordEdgeDerivation(records, retweets, retained, pairIncrements, truncated int64) {
	r.InteractionRecordsTotal.Add(float64(records))
	r.RetweetRecordsTotal.Add(float64(retweets))
	r.RetainedAuthors.Set(float64(retained))
	r.PairIncrementsTotal.Add(float64(pairIncrements))
	r.TruncatedRetweeters.Set(float64(truncated))
}

// UpdateGraphMetrics records the shape of the built graph
func (r *Registry) UpdateGraphMetrics(vertices, edges int, totalWeight float64, components, duplicates, unresolved int) {
	r.GraphVertices.Set(float64(vertices))
	r.GraphEdges.Set(float64(edges))
	r.GraphTotalWeight.Set(totalWeight)
	r.GraphComponents.Set(float64(components))
	r.DuplicateVertices.Set(float64(duplicates))
	r.UnresolvedVertices.Set(float64(unresolved))
}

// RecordRegions records how many looked-up locations stayed unresolved
func (r *Registry) RecordRegions(unknown int) {
	r.UnresolvedLocations.Set(float64(unknown))
}

// RecordCommunities records the detected partition. An undefined
// modularity is left unset.
func (r *Registry) RecordCommunities(count int, modularity float64, defined bool) {
	r.Communities.Set(float64(count))
	if defined {
		r.Modularity.Set(modularity)
	}
}

// RecordIterations records the iterations of an iterative algorithm and
// counts non-convergence
func (r *Registry) RecordIterations(algorithm string, iterations int, converged bool) {
	r.AlgorithmIterations.WithLabelValues(algorithm).Set(float64(iterations))
	if !converged {
		r.NonConvergenceTotal.WithLabelValues(algorithm).Inc()
	}
}

// RecordHomophily exports the defined statistics of one attribute
func (r *Registry) RecordHomophily(attribute string, assortativity, eiIndex *float64, knownFraction float64) {
	if assortativity != nil {
		r.HomophilyStatistic.WithLabelValues(attribute, "assortativity").Set(*assortativity)
	}
	if eiIndex != nil {
		r.HomophilyStatistic.WithLabelValues(attribute, "ei_index").Set(*eiIndex)
	}
	r.HomophilyKnownFraction.WithLabelValues(attribute).Set(knownFraction)
}

// WriteTextfile writes every metric in the text exposition format to path,
// for pickup by the node exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
