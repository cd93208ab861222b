package algorithms

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// EigenvectorOptions configures EigenvectorCentrality
type EigenvectorOptions struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultEigenvectorOptions returns default eigenvector configuration
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{MaxIterations: 1000, Tolerance: 1e-6}
}

// EigenvectorResult holds eigenvector centrality scores scaled so the
// largest is 1
type EigenvectorResult struct {
	Scores     map[string]float64
	Iterations int
	Converged  bool
}

// Err returns ErrNotConverged when the run hit its cap
func (r *EigenvectorResult) Err() error {
	if r.Converged {
		return nil
	}
	return fmt.Errorf("eigenvector centrality after %d iterations: %w", r.Iterations, ErrNotConverged)
}

// EigenvectorCentrality runs weighted power iteration on A+I. The identity
// shift keeps bipartite components from oscillating without changing the
// eigenvectors. An empty or edgeless graph scores 0 everywhere.
func EigenvectorCentrality(g *graph.Graph, opts EigenvectorOptions) (*EigenvectorResult, error) {
	if opts.MaxIterations <= 0 {
		return nil, fmt.Errorf("eigenvector: %w: %d", ErrInvalidIterations, opts.MaxIterations)
	}

	n := g.Order()
	result := &EigenvectorResult{Scores: make(map[string]float64, n), Converged: true}
	if g.Size() == 0 {
		for _, id := range g.IDs() {
			result.Scores[id] = 0
		}
		return result, nil
	}

	adj := g.Adjacency()
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}

	result.Converged = false
	for result.Iterations < opts.MaxIterations {
		result.Iterations++

		copy(y, x)
		for u, nbrs := range adj {
			for _, nb := range nbrs {
				y[nb.Index] += x[u] * nb.Weight
			}
		}

		norm := 0.0
		for _, v := range y {
			norm += v * v
		}
		norm = math.Sqrt(norm)

		change := 0.0
		for i := range y {
			y[i] /= norm
			change += math.Abs(y[i] - x[i])
		}
		x, y = y, x
		if change < float64(n)*opts.Tolerance {
			result.Converged = true
			break
		}
	}

	// the identity shift leaves residual mass on isolated vertices
	for i := range x {
		if g.Degree(i) == 0 {
			x[i] = 0
		}
	}
	peak := 0.0
	for _, v := range x {
		peak = max(peak, v)
	}
	for i, v := range x {
		result.Scores[g.ID(i)] = v / peak
	}
	return result, nil
}
