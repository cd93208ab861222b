package algorithms

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// DistanceMode selects how edge weights become path lengths
type DistanceMode int

const (
	// DistanceInverseWeight uses 1/weight, so heavier ties are closer
	DistanceInverseWeight DistanceMode = iota
	// DistanceHops ignores weights and counts edges
	DistanceHops
)

func (m DistanceMode) String() string {
	switch m {
	case DistanceInverseWeight:
		return "inverse_weight"
	case DistanceHops:
		return "hops"
	default:
		return fmt.Sprintf("DistanceMode(%d)", int(m))
	}
}

// ParseDistanceMode accepts "inverse_weight" and "hops"
func ParseDistanceMode(s string) (DistanceMode, error) {
	switch s {
	case "", "inverse_weight":
		return DistanceInverseWeight, nil
	case "hops":
		return DistanceHops, nil
	default:
		return 0, fmt.Errorf("unknown distance mode %q", s)
	}
}

// PathOptions configures the shortest-path based measures
type PathOptions struct {
	Distance DistanceMode
	// Workers bounds the source sweep. Zero means GOMAXPROCS.
	Workers int
}

// checkWeights rejects graphs that cannot be traversed with 1/weight
func checkWeights(g *graph.Graph, mode DistanceMode) error {
	if mode != DistanceInverseWeight || g.Size() == 0 {
		return nil
	}
	if w := g.MinWeight(); !(w > 0) || math.IsInf(w, 0) {
		return fmt.Errorf("inverse-weight distance: %w: minimum weight %g", graph.ErrNonPositiveWeight, w)
	}
	return nil
}

// pathState holds the single-source shortest path data of one sweep. A
// worker reuses one pathState for all its sources.
type pathState struct {
	dist  []float64
	sigma []float64
	delta []float64
	preds [][]int
	done  []bool
	// order lists settled vertices by non-decreasing distance
	order []int
	queue distanceHeap
}

func newPathState(n int) *pathState {
	return &pathState{
		dist:  make([]float64, n),
		sigma: make([]float64, n),
		delta: make([]float64, n),
		preds: make([][]int, n),
		done:  make([]bool, n),
		order: make([]int, 0, n),
	}
}

func (ps *pathState) reset() {
	for i := range ps.dist {
		ps.dist[i] = -1
		ps.sigma[i] = 0
		ps.delta[i] = 0
		ps.preds[i] = ps.preds[i][:0]
		ps.done[i] = false
	}
	ps.order = ps.order[:0]
	ps.queue = ps.queue[:0]
}

// run computes distances, shortest-path counts and predecessors from source.
// Unreached vertices keep distance -1.
func (ps *pathState) run(adj [][]graph.Neighbor, source int, mode DistanceMode) {
	ps.reset()
	ps.dist[source] = 0
	ps.sigma[source] = 1

	if mode == DistanceHops {
		ps.bfs(adj, source)
		return
	}
	ps.dijkstra(adj, source)
}

func (ps *pathState) bfs(adj [][]graph.Neighbor, source int) {
	ps.order = append(ps.order, source)
	for head := 0; head < len(ps.order); head++ {
		v := ps.order[head]
		for _, nb := range adj[v] {
			w := nb.Index
			if ps.dist[w] < 0 {
				ps.dist[w] = ps.dist[v] + 1
				ps.order = append(ps.order, w)
			}
			if ps.dist[w] == ps.dist[v]+1 {
				ps.sigma[w] += ps.sigma[v]
				ps.preds[w] = append(ps.preds[w], v)
			}
		}
	}
}

func (ps *pathState) dijkstra(adj [][]graph.Neighbor, source int) {
	heap.Push(&ps.queue, distanceItem{vertex: source, dist: 0})
	for ps.queue.Len() > 0 {
		item := heap.Pop(&ps.queue).(distanceItem)
		v := item.vertex
		if ps.done[v] || item.dist > ps.dist[v] {
			continue
		}
		ps.done[v] = true
		ps.order = append(ps.order, v)

		for _, nb := range adj[v] {
			w := nb.Index
			if ps.done[w] {
				continue
			}
			alt := ps.dist[v] + 1/nb.Weight
			switch {
			case ps.dist[w] < 0 || alt < ps.dist[w]:
				ps.dist[w] = alt
				ps.sigma[w] = ps.sigma[v]
				ps.preds[w] = append(ps.preds[w][:0], v)
				heap.Push(&ps.queue, distanceItem{vertex: w, dist: alt})
			case alt == ps.dist[w]:
				ps.sigma[w] += ps.sigma[v]
				ps.preds[w] = append(ps.preds[w], v)
			}
		}
	}
}

type distanceItem struct {
	vertex int
	dist   float64
}

// distanceHeap is a min-heap by distance, then vertex index
type distanceHeap []distanceItem

func (h distanceHeap) Len() int { return len(h) }
func (h distanceHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].vertex < h[j].vertex
}
func (h distanceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *distanceHeap) Push(x any) {
	*h = append(*h, x.(distanceItem))
}

func (h *distanceHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
