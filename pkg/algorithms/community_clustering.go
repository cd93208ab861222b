package algorithms

import "github.com/dd0wney/cluso-coretweet/pkg/graph"

// TriangleCounts returns the number of triangles through every vertex,
// keyed by vertex id, and the number of distinct triangles in g.
func TriangleCounts(g *graph.Graph) (map[string]int, int) {
	per := triangleCounts(g)
	out := make(map[string]int, len(per))
	total := 0
	for idx, t := range per {
		out[g.ID(idx)] = t
		total += t
	}
	return out, total / 3
}

// triangleCounts counts, for every vertex, edges among its neighbors
func triangleCounts(g *graph.Graph) []int {
	adj := g.Adjacency()
	counts := make([]int, len(adj))
	for u := range adj {
		for _, a := range adj[u] {
			if a.Index <= u {
				continue
			}
			for _, b := range adj[u] {
				if b.Index <= a.Index {
					continue
				}
				if g.Weight(a.Index, b.Index) > 0 {
					counts[u]++
					counts[a.Index]++
					counts[b.Index]++
				}
			}
		}
	}
	return counts
}

// ClusteringCoefficient returns the unweighted local clustering coefficient
// of every vertex: triangles / (d(d−1)/2), 0 for degree below two.
func ClusteringCoefficient(g *graph.Graph) map[string]float64 {
	counts := triangleCounts(g)
	out := make(map[string]float64, len(counts))
	for idx, t := range counts {
		d := g.Degree(idx)
		if d < 2 {
			out[g.ID(idx)] = 0
			continue
		}
		out[g.ID(idx)] = float64(2*t) / float64(d*(d-1))
	}
	return out
}

// AverageClusteringCoefficient averages the local coefficient over all
// vertices. An empty graph yields 0.
func AverageClusteringCoefficient(g *graph.Graph) float64 {
	n := g.Order()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range ClusteringCoefficient(g) {
		sum += c
	}
	return sum / float64(n)
}
