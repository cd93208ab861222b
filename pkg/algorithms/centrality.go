package algorithms

import (
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
	"github.com/dd0wney/cluso-coretweet/pkg/parallel"
)

// EdgeKey names an undirected edge by its endpoint ids, Source < Target
type EdgeKey struct {
	Source string
	Target string
}

func edgeKey(g *graph.Graph, u, v int) EdgeKey {
	a, b := g.ID(u), g.ID(v)
	if b < a {
		a, b = b, a
	}
	return EdgeKey{Source: a, Target: b}
}

// Strength returns the sum of incident edge weights of every vertex
func Strength(g *graph.Graph) map[string]float64 {
	out := make(map[string]float64, g.Order())
	for idx, id := range g.IDs() {
		out[id] = g.Strength(idx)
	}
	return out
}

// DegreeCentrality returns neighbor count / (n−1) for every vertex. A graph
// with a single vertex scores 0.
func DegreeCentrality(g *graph.Graph) map[string]float64 {
	n := g.Order()
	out := make(map[string]float64, n)
	for idx, id := range g.IDs() {
		if n > 1 {
			out[id] = float64(g.Degree(idx)) / float64(n-1)
		} else {
			out[id] = 0
		}
	}
	return out
}

// brandes runs one Brandes accumulation per source vertex across the
// worker pool. Each worker adds into its own slot; slots are merged in
// worker order once the sweep ends. Vertex scores are raw and count every
// unordered pair twice, as do the per-edge scores.
func brandes(g *graph.Graph, opts PathOptions, withEdges bool) ([]float64, map[[2]int]float64, error) {
	if err := checkWeights(g, opts.Distance); err != nil {
		return nil, nil, err
	}

	n := g.Order()
	adj := g.Adjacency()
	workers := parallel.Workers(opts.Workers, n)
	nodeSlots := make([][]float64, workers)
	edgeSlots := make([]map[[2]int]float64, workers)
	states := make([]*pathState, workers)
	for w := range workers {
		nodeSlots[w] = make([]float64, n)
		if withEdges {
			edgeSlots[w] = make(map[[2]int]float64)
		}
		states[w] = newPathState(n)
	}

	_, err := parallel.ForEach(workers, n, func(worker, source int) {
		ps := states[worker]
		ps.run(adj, source, opts.Distance)
		acc := nodeSlots[worker]
		for i := len(ps.order) - 1; i >= 0; i-- {
			w := ps.order[i]
			for _, v := range ps.preds[w] {
				c := ps.sigma[v] / ps.sigma[w] * (1 + ps.delta[w])
				ps.delta[v] += c
				if withEdges {
					edgeSlots[worker][[2]int{min(v, w), max(v, w)}] += c
				}
			}
			if w != source {
				acc[w] += ps.delta[w]
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}

	scores := make([]float64, n)
	for _, slot := range nodeSlots {
		for i, s := range slot {
			scores[i] += s
		}
	}
	var edgeScores map[[2]int]float64
	if withEdges {
		edgeScores = make(map[[2]int]float64)
		for _, slot := range edgeSlots {
			for e, s := range slot {
				edgeScores[e] += s
			}
		}
	}
	return scores, edgeScores, nil
}

// Betweenness computes weighted shortest-path betweenness of every vertex,
// normalized by 1/((n−1)(n−2)). With fewer than three vertices every score
// is 0.
func Betweenness(g *graph.Graph, opts PathOptions) (map[string]float64, error) {
	raw, _, err := brandes(g, opts, false)
	if err != nil {
		return nil, err
	}

	n := len(raw)
	scale := 0.0
	if n > 2 {
		scale = 1.0 / float64((n-1)*(n-2))
	}
	out := make(map[string]float64, n)
	for idx, s := range raw {
		out[g.ID(idx)] = s * scale
	}
	return out, nil
}

// EdgeBetweenness computes betweenness of every edge, normalized by
// 1/(n(n−1)).
func EdgeBetweenness(g *graph.Graph, opts PathOptions) (map[EdgeKey]float64, error) {
	_, raw, err := brandes(g, opts, true)
	if err != nil {
		return nil, err
	}

	n := g.Order()
	scale := 0.0
	if n > 1 {
		scale = 1.0 / float64(n*(n-1))
	}
	out := make(map[EdgeKey]float64, g.Size())
	for _, e := range g.Edges() {
		out[edgeKey(g, e.U, e.V)] = raw[[2]int{e.U, e.V}] * scale
	}
	return out, nil
}

// Closeness computes, for every vertex, the number of vertices it reaches
// divided by the summed distance to them. Only the vertex's own component
// counts, and a vertex that reaches nothing scores 0.
func Closeness(g *graph.Graph, opts PathOptions) (map[string]float64, error) {
	if err := checkWeights(g, opts.Distance); err != nil {
		return nil, err
	}

	n := g.Order()
	adj := g.Adjacency()
	workers := parallel.Workers(opts.Workers, n)
	states := make([]*pathState, workers)
	for w := range workers {
		states[w] = newPathState(n)
	}
	// each source writes only its own slot
	scores := make([]float64, n)

	_, err := parallel.ForEach(workers, n, func(worker, source int) {
		ps := states[worker]
		ps.run(adj, source, opts.Distance)
		total, reached := 0.0, 0
		for _, v := range ps.order {
			if v == source {
				continue
			}
			total += ps.dist[v]
			reached++
		}
		if total > 0 {
			scores[source] = float64(reached) / total
		}
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, n)
	for idx, s := range scores {
		out[g.ID(idx)] = s
	}
	return out, nil
}
