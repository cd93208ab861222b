package algorithms

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// Community detection methods
const (
	MethodLouvain          = "louvain"
	MethodLabelPropagation = "label_propagation"
	MethodComponents       = "components"
)

// Community is one block of a partition
type Community struct {
	ID      int
	Members []string
	Size    int
	// InternalWeight sums the weights of edges with both ends inside
	InternalWeight float64
	// TotalStrength sums member strengths
	TotalStrength float64
	// Density is internal edge count over possible member pairs
	Density float64
}

// CommunityDetectionResult is a partition of a graph's vertex set.
// Community ids run from 0 in order of decreasing size; equal sizes are
// ordered by their smallest member id. Members keep graph index order.
type CommunityDetectionResult struct {
	Method      string
	Communities []*Community
	Membership  map[string]int
	Modularity  float64
	// ModularityDefined is false when the graph has no edge weight
	ModularityDefined bool
	Resolution        float64
	Levels            int
}

// CommunityOf returns the community id of vertex id
func (r *CommunityDetectionResult) CommunityOf(id string) (int, bool) {
	c, ok := r.Membership[id]
	return c, ok
}

// Labels returns the membership rendered as attribute strings
func (r *CommunityDetectionResult) Labels() map[string]string {
	labels := make(map[string]string, len(r.Membership))
	for id, c := range r.Membership {
		labels[id] = strconv.Itoa(c)
	}
	return labels
}

// SameGrouping reports whether r and other group vertices identically,
// regardless of community numbering.
func (r *CommunityDetectionResult) SameGrouping(other *CommunityDetectionResult) bool {
	if len(r.Membership) != len(other.Membership) {
		return false
	}
	forward := make(map[int]int)
	backward := make(map[int]int)
	for id, c := range r.Membership {
		o, ok := other.Membership[id]
		if !ok {
			return false
		}
		if prev, seen := forward[c]; seen && prev != o {
			return false
		}
		if prev, seen := backward[o]; seen && prev != c {
			return false
		}
		forward[c] = o
		backward[o] = c
	}
	return true
}

// newPartition renumbers raw per-index labels into a CommunityDetectionResult
// and fills community statistics. Modularity is left to the caller.
func newPartition(g *graph.Graph, labels []int, method string) *CommunityDetectionResult {
	groups := make(map[int][]int)
	smallest := make(map[int]string)
	var order []int
	for idx, label := range labels {
		id := g.ID(idx)
		if _, ok := groups[label]; !ok {
			order = append(order, label)
			smallest[label] = id
		} else if id < smallest[label] {
			smallest[label] = id
		}
		groups[label] = append(groups[label], idx)
	}
	slices.SortFunc(order, func(a, b int) int {
		if d := len(groups[b]) - len(groups[a]); d != 0 {
			return d
		}
		return cmp.Compare(smallest[a], smallest[b])
	})

	result := &CommunityDetectionResult{
		Method:      method,
		Communities: make([]*Community, len(order)),
		Membership:  make(map[string]int, len(labels)),
	}
	compact := make([]int, len(labels))
	for id, label := range order {
		members := groups[label]
		c := &Community{ID: id, Size: len(members), Members: make([]string, len(members))}
		for i, idx := range members {
			c.Members[i] = g.ID(idx)
			compact[idx] = id
			result.Membership[g.ID(idx)] = id
		}
		result.Communities[id] = c
	}

	internalEdges := make([]int, len(order))
	for _, e := range g.Edges() {
		if compact[e.U] == compact[e.V] {
			result.Communities[compact[e.U]].InternalWeight += e.Weight
			internalEdges[compact[e.U]]++
		}
	}
	for idx := range labels {
		result.Communities[compact[idx]].TotalStrength += g.Strength(idx)
	}
	for id, c := range result.Communities {
		if c.Size > 1 {
			c.Density = 2 * float64(internalEdges[id]) / float64(c.Size*(c.Size-1))
		}
	}
	return result
}

// compactLabels maps a result back to per-index labels of g
func compactLabels(g *graph.Graph, membership map[string]int) ([]int, error) {
	labels := make([]int, g.Order())
	for idx, id := range g.IDs() {
		c, ok := membership[id]
		if !ok {
			return nil, ErrIncompletePartition
		}
		labels[idx] = c
	}
	return labels, nil
}
