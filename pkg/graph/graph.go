// Package graph holds the in-memory weighted undirected co-retweet graph.
//
// Vertices are identified by opaque string ids and numbered by insertion
// order; algorithms work on those indices and translate back with ID. Every
// traversal helper visits neighbors in ascending index order, which is what
// makes the algorithms built on top of it deterministic.
package graph

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Well-known vertex attribute keys
const (
	AttrCommunity = "community"
	AttrContinent = "continent"
	AttrLocation  = "location"
)

// UnknownCategory is the label of vertices with no usable categorical value
const UnknownCategory = "Unknown"

// Attributes is the per-vertex attribute mapping
type Attributes map[string]string

// Clone returns a copy of a
func (a Attributes) Clone() Attributes {
	if a == nil {
		return Attributes{}
	}
	return maps.Clone(a)
}

// Neighbor is an adjacent vertex and the weight of the connecting edge
type Neighbor struct {
	Index  int
	Weight float64
}

// Edge is an undirected edge between vertex indices with U < V
type Edge struct {
	U, V   int
	Weight float64
}

// Graph is a weighted undirected graph without self-loops or parallel edges.
// It is not safe for concurrent mutation; concurrent reads are safe once
// construction is finished.
type Graph struct {
	ids         []string
	index       map[string]int
	attrs       []Attributes
	adj         []map[int]float64
	edgeCount   int
	totalWeight float64

	mu       sync.Mutex
	adjCache [][]Neighbor
}

// New returns an empty graph
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddVertex inserts id with a copy of attrs. If id already exists its
// attributes are left untouched and added is false.
func (g *Graph) AddVertex(id string, attrs Attributes) (idx int, added bool, err error) {
	if id == "" {
		return -1, false, ErrEmptyID
	}
	if idx, ok := g.index[id]; ok {
		return idx, false, nil
	}
	idx = len(g.ids)
	g.ids = append(g.ids, id)
	g.index[id] = idx
	g.attrs = append(g.attrs, attrs.Clone())
	g.adj = append(g.adj, make(map[int]float64))
	g.invalidate()
	return idx, true, nil
}

// AddEdge adds weight to the undirected edge {a, b}, inserting missing
// endpoints with empty attributes. Repeated pairs accumulate weight.
func (g *Graph) AddEdge(a, b string, weight float64) error {
	if a == b {
		return &EdgeError{Source: a, Target: b, Weight: weight, Cause: ErrSelfLoop}
	}
	if !(weight > 0) {
		return &EdgeError{Source: a, Target: b, Weight: weight, Cause: ErrNonPositiveWeight}
	}
	u, _, err := g.AddVertex(a, nil)
	if err != nil {
		return &EdgeError{Source: a, Target: b, Weight: weight, Cause: err}
	}
	v, _, err := g.AddVertex(b, nil)
	if err != nil {
		return &EdgeError{Source: a, Target: b, Weight: weight, Cause: err}
	}
	g.addEdgeIndex(u, v, weight)
	return nil
}

func (g *Graph) addEdgeIndex(u, v int, weight float64) {
	if _, ok := g.adj[u][v]; !ok {
		g.edgeCount++
	}
	g.adj[u][v] += weight
	g.adj[v][u] += weight
	g.totalWeight += weight
	g.invalidate()
}

func (g *Graph) invalidate() {
	g.mu.Lock()
	g.adjCache = nil
	g.mu.Unlock()
}

// Order returns the number of vertices
func (g *Graph) Order() int { return len(g.ids) }

// Size returns the number of edges
func (g *Graph) Size() int { return g.edgeCount }

// TotalWeight returns the sum of edge weights (m in the modularity formula)
func (g *Graph) TotalWeight() float64 { return g.totalWeight }

// IDs returns vertex ids in index order. The slice must not be modified.
func (g *Graph) IDs() []string { return g.ids }

// ID returns the id of vertex idx
func (g *Graph) ID(idx int) string { return g.ids[idx] }

// Index returns the index of id
func (g *Graph) Index(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Has reports whether id is a vertex
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Degree returns the number of neighbors of vertex idx
func (g *Graph) Degree(idx int) int { return len(g.adj[idx]) }

// Strength returns the weighted degree of vertex idx
func (g *Graph) Strength(idx int) float64 {
	s := 0.0
	for _, nb := range g.Adjacency()[idx] {
		s += nb.Weight
	}
	return s
}

// Weight returns the weight of edge {u, v}, or 0 if absent
func (g *Graph) Weight(u, v int) float64 { return g.adj[u][v] }

// MinWeight returns the smallest edge weight, or 0 for an edgeless graph
func (g *Graph) MinWeight() float64 {
	minW := 0.0
	for u := range g.adj {
		for _, w := range g.adj[u] {
			if minW == 0 || w < minW {
				minW = w
			}
		}
	}
	return minW
}

// Adjacency returns the neighbor lists of every vertex, each sorted by index.
// The result is cached until the next mutation and must not be modified.
func (g *Graph) Adjacency() [][]Neighbor {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.adjCache != nil || len(g.adj) == 0 {
		return g.adjCache
	}
	cache := make([][]Neighbor, len(g.adj))
	for u, nbrs := range g.adj {
		list := make([]Neighbor, 0, len(nbrs))
		for _, v := range slices.Sorted(maps.Keys(nbrs)) {
			list = append(list, Neighbor{Index: v, Weight: nbrs[v]})
		}
		cache[u] = list
	}
	g.adjCache = cache
	return cache
}

// Neighbors returns the sorted neighbor list of vertex idx
func (g *Graph) Neighbors(idx int) []Neighbor {
	return g.Adjacency()[idx]
}

// Edges returns every edge once, sorted by (U, V)
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for u, nbrs := range g.Adjacency() {
		for _, nb := range nbrs {
			if u < nb.Index {
				out = append(out, Edge{U: u, V: nb.Index, Weight: nb.Weight})
			}
		}
	}
	return out
}

// SetAttribute sets key on vertex id
func (g *Graph) SetAttribute(id, key, value string) error {
	idx, ok := g.index[id]
	if !ok {
		return fmt.Errorf("set attribute %q on %q: %w", key, id, ErrVertexNotFound)
	}
	g.attrs[idx][key] = value
	return nil
}

// Attribute returns the value of key on vertex id. Unknown vertices and
// missing keys yield "", false.
func (g *Graph) Attribute(id, key string) (string, bool) {
	idx, ok := g.index[id]
	if !ok {
		return "", false
	}
	v, ok := g.attrs[idx][key]
	return v, ok
}

// AttributeAt is Attribute by vertex index
func (g *Graph) AttributeAt(idx int, key string) (string, bool) {
	v, ok := g.attrs[idx][key]
	return v, ok
}

// Attributes returns a copy of the attributes of vertex idx
func (g *Graph) Attributes(idx int) Attributes {
	return g.attrs[idx].Clone()
}

// AttachAttribute sets key on every vertex present in values and returns the
// number of graph vertices that had no entry. Ids not in the graph are ignored.
func (g *Graph) AttachAttribute(key string, values map[string]string) (missing int) {
	for idx, id := range g.ids {
		v, ok := values[id]
		if !ok {
			missing++
			continue
		}
		g.attrs[idx][key] = v
	}
	return missing
}

// Category returns the categorical value of key on vertex idx; missing or
// empty values map to UnknownCategory.
func (g *Graph) Category(idx int, key string) string {
	v, ok := g.attrs[idx][key]
	if !ok || v == "" {
		return UnknownCategory
	}
	return v
}
