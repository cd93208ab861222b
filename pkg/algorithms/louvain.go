package algorithms

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// minModularityGain is the smallest ΔQ treated as an improvement. It keeps
// floating point noise from producing endless back-and-forth moves.
const minModularityGain = 1e-12

// LouvainOptions configures Louvain community detection
type LouvainOptions struct {
	// Resolution is γ in the modularity objective. Zero means 1.
	Resolution float64
	// MaxLevels caps aggregation levels. Zero means no cap.
	MaxLevels int
	// MaxPasses caps local-move sweeps per level. Zero means 100.
	MaxPasses int
}

// DefaultLouvainOptions returns the standard modularity objective
func DefaultLouvainOptions() LouvainOptions {
	return LouvainOptions{Resolution: 1.0, MaxPasses: 100}
}

func (o LouvainOptions) withDefaults() LouvainOptions {
	if o.Resolution == 0 {
		o.Resolution = 1.0
	}
	if o.MaxPasses == 0 {
		o.MaxPasses = 100
	}
	return o
}

// levelGraph is the working graph of one Louvain level. Vertex i of a
// coarse level stands for a community of the level below; self[i] holds
// that community's internal weight with each edge counted once.
type levelGraph struct {
	adj      [][]graph.Neighbor
	self     []float64
	strength []float64
}

func (lg *levelGraph) order() int { return len(lg.adj) }

// newLevelGraph builds level 0 over g's vertices sorted by id. order[pos] is
// the graph index of level vertex pos, so sweeps and community ids do not
// depend on the order vertices were added.
func newLevelGraph(g *graph.Graph) (*levelGraph, []int) {
	n := g.Order()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(g.ID(a), g.ID(b))
	})
	pos := make([]int, n)
	for p, idx := range order {
		pos[idx] = p
	}

	lg := &levelGraph{
		adj:      make([][]graph.Neighbor, n),
		self:     make([]float64, n),
		strength: make([]float64, n),
	}
	adj := g.Adjacency()
	for p, idx := range order {
		nbrs := make([]graph.Neighbor, len(adj[idx]))
		for i, nb := range adj[idx] {
			nbrs[i] = graph.Neighbor{Index: pos[nb.Index], Weight: nb.Weight}
		}
		slices.SortFunc(nbrs, func(a, b graph.Neighbor) int {
			return cmp.Compare(a.Index, b.Index)
		})
		lg.adj[p] = nbrs
		lg.strength[p] = g.Strength(idx)
	}
	return lg, order
}

// Louvain partitions g by greedy multilevel modularity maximization.
//
// Vertices are visited in id order. Each level starts from singleton
// communities and sweeps its vertices. A vertex moves to the neighboring
// community with the largest strictly positive modularity gain, ties going
// to the lowest community id, or into an empty community when leaving beats
// every neighbor. Sweeps repeat until a full sweep makes no move.
// Communities are then collapsed into vertices of the next level, keeping
// internal weight as a self-loop. Levels stop when one makes no move, fails
// to coarsen, or MaxLevels is reached. A last sweep over the original
// vertices, seeded with the coarse result, leaves a partition in which no
// single vertex move raises Q.
func Louvain(g *graph.Graph, opts LouvainOptions) (*CommunityDetectionResult, error) {
	opts = opts.withDefaults()
	if !(opts.Resolution > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidResolution, opts.Resolution)
	}
	if opts.MaxLevels < 0 || opts.MaxPasses < 0 {
		return nil, ErrInvalidIterations
	}

	n := g.Order()
	// assignment maps every level-0 vertex to its vertex at the current level
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = i
	}

	m := g.TotalWeight()
	levels := 0
	labels := make([]int, n)
	if m > 0 {
		base, order := newLevelGraph(g)
		lg := base
		for opts.MaxLevels == 0 || levels < opts.MaxLevels {
			community, moved := localMoves(lg, nil, m, opts.Resolution, opts.MaxPasses)
			if !moved {
				break
			}
			levels++
			coarse, mapping := aggregate(lg, community)
			for i := range assignment {
				assignment[i] = mapping[assignment[i]]
			}
			if coarse.order() == lg.order() {
				break
			}
			lg = coarse
		}
		if levels > 0 {
			assignment, _ = localMoves(base, assignment, m, opts.Resolution, opts.MaxPasses)
		}
		for p, idx := range order {
			labels[idx] = assignment[p]
		}
	} else {
		copy(labels, assignment)
	}

	result := newPartition(g, labels, MethodLouvain)
	result.Resolution = opts.Resolution
	result.Levels = levels
	compact, _ := compactLabels(g, result.Membership)
	result.Modularity, result.ModularityDefined = modularityOf(g, compact, opts.Resolution)
	return result, nil
}

// localMoves runs the sweep phase on lg and returns the community of every
// level vertex. Community ids lie in [0, order). A nil seed starts from
// singletons.
func localMoves(lg *levelGraph, seed []int, m, resolution float64, maxPasses int) ([]int, bool) {
	n := lg.order()
	community := make([]int, n)
	total := make([]float64, n)
	size := make([]int, n)
	for i := range community {
		community[i] = i
		if seed != nil {
			community[i] = seed[i]
		}
		total[community[i]] += lg.strength[i]
		size[community[i]]++
	}

	links := make(map[int]float64)
	moved := false
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for i := 0; i < n; i++ {
			own := community[i]
			ki := lg.strength[i]

			clear(links)
			for _, nb := range lg.adj[i] {
				links[community[nb.Index]] += nb.Weight
			}

			total[own] -= ki
			size[own]--
			gain := func(c int) float64 {
				return links[c]/m - resolution*total[c]*ki/(2*m*m)
			}

			stay := gain(own)
			best, bestGain := own, stay
			for c := range links {
				if c == own {
					continue
				}
				gc := gain(c)
				if gc > bestGain || (gc == bestGain && c < best) {
					best, bestGain = c, gc
				}
			}
			if best != own && bestGain-stay <= minModularityGain {
				best, bestGain = own, stay
			}
			// an empty community gains 0; with others left in own, one is free
			if size[own] > 0 && -bestGain > minModularityGain {
				best = slices.Index(size, 0)
			}

			total[best] += ki
			size[best]++
			if best != own {
				community[i] = best
				changed = true
				moved = true
			}
		}
		if !changed {
			break
		}
	}
	return community, moved
}

// aggregate collapses every community of lg into one vertex. Coarse vertex
// ids follow the lowest level vertex of each community. It returns the
// coarse graph and the level-vertex to coarse-vertex mapping.
func aggregate(lg *levelGraph, community []int) (*levelGraph, []int) {
	renumber := make(map[int]int)
	mapping := make([]int, len(community))
	for i, c := range community {
		id, ok := renumber[c]
		if !ok {
			id = len(renumber)
			renumber[c] = id
		}
		mapping[i] = id
	}

	k := len(renumber)
	coarse := &levelGraph{
		adj:      make([][]graph.Neighbor, k),
		self:     make([]float64, k),
		strength: make([]float64, k),
	}
	between := make([]map[int]float64, k)
	for i := range between {
		between[i] = make(map[int]float64)
	}
	for u := range lg.adj {
		cu := mapping[u]
		coarse.self[cu] += lg.self[u]
		coarse.strength[cu] += lg.strength[u]
		for _, nb := range lg.adj[u] {
			if u > nb.Index {
				continue
			}
			cv := mapping[nb.Index]
			if cu == cv {
				coarse.self[cu] += nb.Weight
				continue
			}
			between[cu][cv] += nb.Weight
			between[cv][cu] += nb.Weight
		}
	}
	for c, nbrs := range between {
		list := make([]graph.Neighbor, 0, len(nbrs))
		for v := 0; v < k && len(list) < len(nbrs); v++ {
			if w, ok := nbrs[v]; ok {
				list = append(list, graph.Neighbor{Index: v, Weight: w})
			}
		}
		coarse.adj[c] = list
	}
	return coarse, mapping
}
