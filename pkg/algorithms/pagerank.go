package algorithms

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Convergence threshold per vertex
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-8,
	}
}

func (o PageRankOptions) validate() error {
	if !(o.DampingFactor >= 0 && o.DampingFactor < 1) {
		return fmt.Errorf("%w: %g", ErrInvalidDamping, o.DampingFactor)
	}
	if o.MaxIterations <= 0 {
		return fmt.Errorf("pagerank: %w: %d", ErrInvalidIterations, o.MaxIterations)
	}
	return nil
}

// PageRankResult contains PageRank scores for all vertices
type PageRankResult struct {
	Scores     map[string]float64 // Vertex id -> PageRank score
	Iterations int                // Number of iterations performed
	Converged  bool               // Whether the L1 change fell below n*Tolerance
	Residual   float64            // L1 change of the last iteration
}

// Err returns ErrNotConverged, wrapped with the iteration count, when the
// run hit its cap.
func (pr *PageRankResult) Err() error {
	if pr.Converged {
		return nil
	}
	return fmt.Errorf("pagerank after %d iterations (residual %.3g): %w", pr.Iterations, pr.Residual, ErrNotConverged)
}

// GetTopNodes returns the n highest scoring vertices
func (pr *PageRankResult) GetTopNodes(n int) []RankedNode {
	return TopNodes(pr.Scores, n)
}

// PageRank computes weighted PageRank. A step from u follows edge (u, v)
// with probability w(u,v)/strength(u); isolated vertices spread their mass
// uniformly. Iteration stops once the L1 change is below n*Tolerance or at
// MaxIterations, in which case Converged is false and the last estimate is
// returned. Scores sum to 1.
func PageRank(g *graph.Graph, opts PageRankOptions) (*PageRankResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := g.Order()
	if n == 0 {
		return &PageRankResult{
			Scores:    make(map[string]float64),
			Converged: true,
		}, nil
	}

	adj := g.Adjacency()
	strength := make([]float64, n)
	for i := range strength {
		strength[i] = g.Strength(i)
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	uniform := 1.0 / float64(n)
	for i := range scores {
		scores[i] = uniform
	}

	d := opts.DampingFactor
	result := &PageRankResult{}
	for result.Iterations < opts.MaxIterations {
		result.Iterations++

		dangling := 0.0
		for i, s := range strength {
			if s == 0 {
				dangling += scores[i]
			}
		}
		base := (1-d)*uniform + d*dangling*uniform
		for i := range next {
			next[i] = base
		}
		for u, nbrs := range adj {
			if strength[u] == 0 {
				continue
			}
			share := d * scores[u] / strength[u]
			for _, nb := range nbrs {
				next[nb.Index] += share * nb.Weight
			}
		}

		residual := 0.0
		for i := range next {
			residual += math.Abs(next[i] - scores[i])
		}
		scores, next = next, scores
		result.Residual = residual
		if residual < float64(n)*opts.Tolerance {
			result.Converged = true
			break
		}
	}

	// Normalize scores to sum to 1
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	result.Scores = make(map[string]float64, n)
	for i, s := range scores {
		result.Scores[g.ID(i)] = s / sum
	}
	return result, nil
}
