package graph

import "slices"

// ComponentIndices returns the connected components as vertex index lists.
// Components are ordered by size (largest first), ties by lowest vertex
// index; members are in ascending index order.
func (g *Graph) ComponentIndices() [][]int {
	adj := g.Adjacency()
	visited := make([]bool, len(g.ids))
	var components [][]int

	for start := range g.ids {
		if visited[start] {
			continue
		}
		component := []int{start}
		visited[start] = true
		for head := 0; head < len(component); head++ {
			for _, nb := range adj[component[head]] {
				if !visited[nb.Index] {
					visited[nb.Index] = true
					component = append(component, nb.Index)
				}
			}
		}
		slices.Sort(component)
		components = append(components, component)
	}

	slices.SortStableFunc(components, func(a, b []int) int {
		return len(b) - len(a)
	})
	return components
}

// ConnectedComponents returns the connected components as id lists
func (g *Graph) ConnectedComponents() [][]string {
	comps := g.ComponentIndices()
	out := make([][]string, len(comps))
	for i, comp := range comps {
		ids := make([]string, len(comp))
		for j, idx := range comp {
			ids[j] = g.ids[idx]
		}
		out[i] = ids
	}
	return out
}

// IsConnected reports whether the graph has exactly one component. The
// empty graph is not connected.
func (g *Graph) IsConnected() bool {
	return len(g.ComponentIndices()) == 1
}

// GiantComponent returns the subgraph induced by the largest component. The
// graph itself is returned when it is already connected or empty.
func (g *Graph) GiantComponent() *Graph {
	comps := g.ComponentIndices()
	if len(comps) <= 1 {
		return g
	}
	return g.inducedByIndex(comps[0])
}
