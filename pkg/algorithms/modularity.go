package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// Modularity computes Newman's modularity of membership on g at the given
// resolution γ:
//
//	Q = 1/2m Σ_ij [A_ij − γ k_i k_j / 2m] δ(c_i, c_j)
//
// It returns ErrUndefined when g has no edge weight and
// ErrIncompletePartition when a vertex has no community.
func Modularity(g *graph.Graph, membership map[string]int, resolution float64) (float64, error) {
	if !(resolution > 0) {
		return 0, fmt.Errorf("%w: %g", ErrInvalidResolution, resolution)
	}
	labels, err := compactLabels(g, membership)
	if err != nil {
		return 0, err
	}
	q, ok := modularityOf(g, labels, resolution)
	if !ok {
		return 0, fmt.Errorf("modularity: %w: total edge weight is zero", ErrUndefined)
	}
	return q, nil
}

// modularityOf evaluates Q as Σ_c [L_c/m − γ (d_c / 2m)²] where L_c is the
// internal weight and d_c the total strength of community c.
func modularityOf(g *graph.Graph, labels []int, resolution float64) (float64, bool) {
	m := g.TotalWeight()
	if m == 0 {
		return 0, false
	}

	internal := make(map[int]float64)
	strength := make(map[int]float64)
	for _, e := range g.Edges() {
		if labels[e.U] == labels[e.V] {
			internal[labels[e.U]] += e.Weight
		}
		strength[labels[e.U]] += e.Weight
		strength[labels[e.V]] += e.Weight
	}

	q := 0.0
	for c, d := range strength {
		frac := d / (2 * m)
		q += internal[c]/m - resolution*frac*frac
	}
	return q, true
}

// SingletonModularity returns Q of the partition that puts every vertex in
// its own community, the starting point of Louvain.
func SingletonModularity(g *graph.Graph, resolution float64) (float64, bool) {
	labels := make([]int, g.Order())
	for i := range labels {
		labels[i] = i
	}
	return modularityOf(g, labels, resolution)
}
