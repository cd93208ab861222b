package algorithms

import (
	"slices"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// CliqueOptions bounds clique enumeration
type CliqueOptions struct {
	// MaxCliques stops enumeration once this many cliques are found.
	// Zero means no limit.
	MaxCliques int
}

// CliqueSet is the outcome of a maximal clique enumeration
type CliqueSet struct {
	// Cliques holds vertex ids, each clique sorted by vertex index
	Cliques [][]string
	// Truncated is true when MaxCliques stopped the enumeration
	Truncated bool
}

// Largest returns the biggest clique; ties go to the clique found first.
func (s *CliqueSet) Largest() []string {
	var best []string
	for _, c := range s.Cliques {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// CommunityCliques summarizes the cliques inside one community
type CommunityCliques struct {
	CommunityID int
	Count       int
	Largest     []string
	Truncated   bool
}

// MaximalCliques enumerates the maximal cliques of the subgraph induced by
// members, or of all of g when members is nil. Unknown ids are ignored.
// Edge weights are not considered.
func MaximalCliques(g *graph.Graph, members []string, opts CliqueOptions) *CliqueSet {
	var vertices []int
	if members == nil {
		vertices = make([]int, g.Order())
		for i := range vertices {
			vertices[i] = i
		}
	} else {
		for _, id := range members {
			if idx, ok := g.Index(id); ok {
				vertices = append(vertices, idx)
			}
		}
		slices.Sort(vertices)
		vertices = slices.Compact(vertices)
	}

	inSet := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		inSet[v] = true
	}
	nbrs := make(map[int][]int, len(vertices))
	for _, v := range vertices {
		for _, nb := range g.Neighbors(v) {
			if inSet[nb.Index] {
				nbrs[v] = append(nbrs[v], nb.Index)
			}
		}
	}

	bk := &bronKerbosch{nbrs: nbrs, limit: opts.MaxCliques}
	bk.expand(nil, vertices, nil)

	out := &CliqueSet{Truncated: bk.truncated, Cliques: make([][]string, len(bk.found))}
	for i, clique := range bk.found {
		slices.Sort(clique)
		ids := make([]string, len(clique))
		for j, idx := range clique {
			ids[j] = g.ID(idx)
		}
		out.Cliques[i] = ids
	}
	return out
}

// LargestCliques runs MaximalCliques inside every community of partition
func LargestCliques(g *graph.Graph, partition *CommunityDetectionResult, opts CliqueOptions) []CommunityCliques {
	out := make([]CommunityCliques, 0, len(partition.Communities))
	for _, c := range partition.Communities {
		set := MaximalCliques(g, c.Members, opts)
		out = append(out, CommunityCliques{
			CommunityID: c.ID,
			Count:       len(set.Cliques),
			Largest:     set.Largest(),
			Truncated:   set.Truncated,
		})
	}
	return out
}

type bronKerbosch struct {
	nbrs      map[int][]int
	limit     int
	found     [][]int
	truncated bool
}

// expand is Bron–Kerbosch with Tomita pivoting. p and x are sorted.
func (bk *bronKerbosch) expand(r, p, x []int) {
	if bk.truncated {
		return
	}
	if len(p) == 0 && len(x) == 0 {
		if bk.limit > 0 && len(bk.found) >= bk.limit {
			bk.truncated = true
			return
		}
		bk.found = append(bk.found, slices.Clone(r))
		return
	}

	// pivot on the vertex of p ∪ x with most neighbors in p
	pivot, most := -1, -1
	for _, set := range [][]int{p, x} {
		for _, u := range set {
			if k := len(intersect(bk.nbrs[u], p)); k > most {
				pivot, most = u, k
			}
		}
	}
	pivotNbrs := bk.nbrs[pivot]

	candidates := make([]int, 0, len(p))
	for _, v := range p {
		if _, found := slices.BinarySearch(pivotNbrs, v); !found {
			candidates = append(candidates, v)
		}
	}

	for _, v := range candidates {
		nv := bk.nbrs[v]
		bk.expand(append(r, v), intersect(p, nv), intersect(x, nv))
		if bk.truncated {
			return
		}
		p = remove(p, v)
		x = insertSorted(x, v)
	}
}

func intersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func remove(s []int, v int) []int {
	out := make([]int, 0, len(s))
	for _, u := range s {
		if u != v {
			out = append(out, u)
		}
	}
	return out
}

func insertSorted(s []int, v int) []int {
	i, _ := slices.BinarySearch(s, v)
	out := make([]int, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}
