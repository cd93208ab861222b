package graph

import "math"

// Summary describes the structure of a graph
type Summary struct {
	Vertices       int     `json:"vertices"`
	Edges          int     `json:"edges"`
	TotalWeight    float64 `json:"total_weight"`
	Density        float64 `json:"density"`
	Connected      bool    `json:"connected"`
	Components     int     `json:"components"`
	GiantVertices  int     `json:"giant_vertices"`
	GiantEdges     int     `json:"giant_edges"`

	// Diameter and AveragePathLength are hop counts over the giant component
	Diameter          int     `json:"diameter"`
	AveragePathLength float64 `json:"average_path_length"`
}

// HistogramBin is one bin of a degree histogram. Upper is exclusive except
// for the last bin.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Density returns 2E / (V(V-1)), or 0 below two vertices
func (g *Graph) Density() float64 {
	n := float64(g.Order())
	if n < 2 {
		return 0
	}
	return 2 * float64(g.Size()) / (n * (n - 1))
}

// Summarize computes the structural summary. Path statistics use BFS from
// every vertex of the giant component, O(V*E).
func (g *Graph) Summarize() Summary {
	s := Summary{
		Vertices:    g.Order(),
		Edges:       g.Size(),
		TotalWeight: g.TotalWeight(),
		Density:     g.Density(),
	}
	if g.Order() == 0 {
		return s
	}

	comps := g.ComponentIndices()
	s.Components = len(comps)
	s.Connected = len(comps) == 1

	giant := g.GiantComponent()
	s.GiantVertices = giant.Order()
	s.GiantEdges = giant.Size()
	s.Diameter, s.AveragePathLength = giant.hopPathStats()
	return s
}

// hopPathStats returns the eccentricity maximum and the mean shortest path
// length over all connected ordered pairs.
func (g *Graph) hopPathStats() (int, float64) {
	adj := g.Adjacency()
	n := g.Order()
	dist := make([]int, n)
	queue := make([]int, 0, n)

	diameter := 0
	var total, pairs float64
	for source := 0; source < n; source++ {
		for i := range dist {
			dist[i] = -1
		}
		dist[source] = 0
		queue = append(queue[:0], source)
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			for _, nb := range adj[v] {
				if dist[nb.Index] < 0 {
					dist[nb.Index] = dist[v] + 1
					queue = append(queue, nb.Index)
				}
			}
		}
		for _, d := range dist {
			if d > 0 {
				total += float64(d)
				pairs++
				diameter = max(diameter, d)
			}
		}
	}
	if pairs == 0 {
		return 0, 0
	}
	return diameter, total / pairs
}

// DegreeHistogram buckets vertex degrees into bins equal-width bins spanning
// [min, max]. When every degree is equal the range is widened by 0.5 each
// side. Returns nil for an empty graph or bins < 1.
func (g *Graph) DegreeHistogram(bins int) []HistogramBin {
	if g.Order() == 0 || bins < 1 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for idx := range g.ids {
		d := float64(g.Degree(idx))
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	hist := make([]HistogramBin, bins)
	for i := range hist {
		hist[i].Lower = lo + float64(i)*width
		hist[i].Upper = lo + float64(i+1)*width
	}
	hist[bins-1].Upper = hi

	for idx := range g.ids {
		b := int((float64(g.Degree(idx)) - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		hist[b].Count++
	}
	return hist
}
