package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// LabelPropagationOptions configures LabelPropagation
type LabelPropagationOptions struct {
	// MaxIterations caps full sweeps. Zero means 100.
	MaxIterations int
	// Resolution is only used to score the final partition. Zero means 1.
	Resolution float64
}

// LabelPropagation detects communities by weighted label propagation.
// Vertices are visited in index order and adopt the label carrying the most
// neighbor weight. A vertex keeps its label when it is among the best;
// otherwise ties go to the lowest label. The run stops after a sweep with
// no change or at MaxIterations.
func LabelPropagation(g *graph.Graph, opts LabelPropagationOptions) (*CommunityDetectionResult, error) {
	if opts.MaxIterations == 0 {
		opts.MaxIterations = 100
	}
	if opts.MaxIterations < 0 {
		return nil, ErrInvalidIterations
	}
	if opts.Resolution == 0 {
		opts.Resolution = 1.0
	}
	if !(opts.Resolution > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidResolution, opts.Resolution)
	}

	n := g.Order()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	adj := g.Adjacency()
	weights := make(map[int]float64)
	iterations := 0
	for iterations < opts.MaxIterations {
		iterations++
		changed := false
		for v := 0; v < n; v++ {
			if len(adj[v]) == 0 {
				continue
			}
			clear(weights)
			for _, nb := range adj[v] {
				weights[labels[nb.Index]] += nb.Weight
			}

			best, bestWeight := -1, 0.0
			for label, w := range weights {
				if w > bestWeight || (w == bestWeight && label < best) {
					best, bestWeight = label, w
				}
			}
			if weights[labels[v]] == bestWeight {
				continue
			}
			labels[v] = best
			changed = true
		}
		if !changed {
			break
		}
	}

	result := newPartition(g, labels, MethodLabelPropagation)
	result.Resolution = opts.Resolution
	result.Levels = iterations
	compact, _ := compactLabels(g, result.Membership)
	result.Modularity, result.ModularityDefined = modularityOf(g, compact, opts.Resolution)
	return result, nil
}
