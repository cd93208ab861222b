package graph

// Subgraph returns the subgraph induced by the vertices for which keep
// returns true. Vertex order and attributes are preserved.
func (g *Graph) Subgraph(keep func(id string, attrs Attributes) bool) *Graph {
	selected := make([]bool, len(g.ids))
	for idx, id := range g.ids {
		selected[idx] = keep(id, g.attrs[idx])
	}
	return g.induced(selected)
}

// InducedSubgraph returns the subgraph induced by ids. Unknown ids are ignored.
func (g *Graph) InducedSubgraph(ids []string) *Graph {
	selected := make([]bool, len(g.ids))
	for _, id := range ids {
		if idx, ok := g.index[id]; ok {
			selected[idx] = true
		}
	}
	return g.induced(selected)
}

func (g *Graph) inducedByIndex(indices []int) *Graph {
	selected := make([]bool, len(g.ids))
	for _, idx := range indices {
		selected[idx] = true
	}
	return g.induced(selected)
}

func (g *Graph) induced(selected []bool) *Graph {
	sub := New()
	remap := make([]int, len(g.ids))
	for idx, id := range g.ids {
		remap[idx] = -1
		if selected[idx] {
			remap[idx], _, _ = sub.AddVertex(id, g.attrs[idx])
		}
	}
	for _, e := range g.Edges() {
		if selected[e.U] && selected[e.V] {
			sub.addEdgeIndex(remap[e.U], remap[e.V], e.Weight)
		}
	}
	return sub
}
