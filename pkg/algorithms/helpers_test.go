package algorithms

import (
	"maps"
	"testing"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

type testEdge struct {
	a, b string
	w    float64
}

// buildTestGraph adds vertices in the given order, then the edges
func buildTestGraph(t *testing.T, vertices []string, edgeList []testEdge) *graph.Graph {
	t.Helper()

	g := graph.New()
	for _, id := range vertices {
		if _, _, err := g.AddVertex(id, nil); err != nil {
			t.Fatalf("AddVertex(%q) failed: %v", id, err)
		}
	}
	for _, e := range edgeList {
		if err := g.AddEdge(e.a, e.b, e.w); err != nil {
			t.Fatalf("AddEdge(%q, %q) failed: %v", e.a, e.b, err)
		}
	}
	return g
}

// twoTriangles is a-b-c and d-e-f joined by c-d
func twoTriangles(t *testing.T) *graph.Graph {
	t.Helper()
	return buildTestGraph(t, []string{"a", "b", "c", "d", "e", "f"}, []testEdge{
		{"a", "b", 1}, {"b", "c", 1}, {"a", "c", 1},
		{"d", "e", 1}, {"e", "f", 1}, {"d", "f", 1},
		{"c", "d", 1},
	})
}

func pathGraph(t *testing.T) *graph.Graph {
	t.Helper()
	return buildTestGraph(t, []string{"a", "b", "c"}, []testEdge{
		{"a", "b", 1}, {"b", "c", 1},
	})
}

func starGraph(t *testing.T) *graph.Graph {
	t.Helper()
	return buildTestGraph(t, []string{"hub", "l1", "l2", "l3", "l4"}, []testEdge{
		{"hub", "l1", 1}, {"hub", "l2", 1}, {"hub", "l3", 1}, {"hub", "l4", 1},
	})
}

func approxEqual(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}

// bestSingleMoveGain returns the largest modularity gain from moving one
// vertex into another community of result or into a new one.
func bestSingleMoveGain(t *testing.T, g *graph.Graph, result *CommunityDetectionResult) float64 {
	t.Helper()

	q, err := Modularity(g, result.Membership, result.Resolution)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	fresh := len(result.Communities)
	best := 0.0
	for _, id := range g.IDs() {
		own := result.Membership[id]
		for c := 0; c <= fresh; c++ {
			if c == own {
				continue
			}
			moved := maps.Clone(result.Membership)
			moved[id] = c
			mq, err := Modularity(g, moved, result.Resolution)
			if err != nil {
				t.Fatalf("Modularity failed: %v", err)
			}
			best = max(best, mq-q)
		}
	}
	return best
}
