package algorithms

import (
	"errors"
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

func TestLouvain_TwoTrianglesWithBridge(t *testing.T) {
	g := twoTriangles(t)

	result, err := Louvain(g, DefaultLouvainOptions())
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}

	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %d", len(result.Communities))
	}
	if got := result.Communities[0].Members; !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Community 0 members = %v", got)
	}
	if got := result.Communities[1].Members; !slices.Equal(got, []string{"d", "e", "f"}) {
		t.Errorf("Community 1 members = %v", got)
	}
	if !result.ModularityDefined {
		t.Fatal("Expected modularity to be defined")
	}
	// 2 * (3/7 - (7/14)^2)
	if !approxEqual(result.Modularity, 2*(3.0/7-0.25), 1e-12) {
		t.Errorf("Modularity = %v", result.Modularity)
	}
	if c := result.Communities[0]; c.InternalWeight != 3 || c.TotalStrength != 7 || c.Density != 1 {
		t.Errorf("Community 0 stats = %+v", c)
	}
	if result.Levels < 1 {
		t.Errorf("Levels = %d, want at least 1", result.Levels)
	}
}

func TestLouvain_Deterministic(t *testing.T) {
	g := twoTriangles(t)

	first, err := Louvain(g, DefaultLouvainOptions())
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	second, err := Louvain(g, DefaultLouvainOptions())
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}

	for id, c := range first.Membership {
		if second.Membership[id] != c {
			t.Errorf("Vertex %s: community %d then %d", id, c, second.Membership[id])
		}
	}
	if first.Modularity != second.Modularity {
		t.Errorf("Modularity changed between runs: %v vs %v", first.Modularity, second.Modularity)
	}
}

func TestLouvain_IndependentOfVertexOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	ring := []edges.WeightedEdge{
		edges.NewEdge("a", "b", 1), edges.NewEdge("b", "c", 1), edges.NewEdge("c", "d", 1),
		edges.NewEdge("d", "e", 1), edges.NewEdge("e", "f", 1), edges.NewEdge("f", "a", 1),
	}
	build := func(order []string) *CommunityDetectionResult {
		t.Helper()
		vertices := make([]graph.VertexRecord, len(order))
		for i, id := range order {
			vertices[i] = graph.VertexRecord{ID: id}
		}
		g, _, err := graph.Build(vertices, ring)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		result, err := Louvain(g, DefaultLouvainOptions())
		if err != nil {
			t.Fatalf("Louvain failed: %v", err)
		}
		return result
	}

	base := build(ids)
	rng := rand.New(rand.NewPCG(7, 11))
	for range 20 {
		order := slices.Clone(ids)
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		got := build(order)
		if !got.SameGrouping(base) {
			t.Fatalf("Vertex order %v: grouping %v, want %v", order, got.Membership, base.Membership)
		}
		if !maps.Equal(got.Membership, base.Membership) {
			t.Errorf("Vertex order %v: numbering %v, want %v", order, got.Membership, base.Membership)
		}
	}
}

func TestLouvain_RefinesOriginalVertices(t *testing.T) {
	// two dense groups joined through x, which ties harder to the right group
	g := buildTestGraph(t, []string{"a", "b", "c", "x", "d", "e", "f"}, []testEdge{
		{"a", "b", 3}, {"b", "c", 3}, {"a", "c", 3},
		{"d", "e", 3}, {"e", "f", 3}, {"d", "f", 3},
		{"c", "x", 1}, {"x", "d", 2},
	})

	result, err := Louvain(g, DefaultLouvainOptions())
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	if gain := bestSingleMoveGain(t, g, result); gain > 1e-9 {
		t.Errorf("A single vertex move still gains %v", gain)
	}
}

func TestLouvain_EmptyAndEdgeless(t *testing.T) {
	empty, err := Louvain(graph.New(), LouvainOptions{})
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	if len(empty.Communities) != 0 || len(empty.Membership) != 0 {
		t.Errorf("Expected empty partition, got %d communities", len(empty.Communities))
	}
	if empty.ModularityDefined {
		t.Error("Modularity of an empty graph should be undefined")
	}

	edgeless := buildTestGraph(t, []string{"x", "y", "z"}, nil)
	result, err := Louvain(edgeless, LouvainOptions{})
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	if len(result.Communities) != 3 {
		t.Errorf("Expected singleton communities, got %d", len(result.Communities))
	}
	if result.ModularityDefined {
		t.Error("Modularity of an edgeless graph should be undefined")
	}
}

func TestLouvain_InvalidResolution(t *testing.T) {
	_, err := Louvain(twoTriangles(t), LouvainOptions{Resolution: -1})
	if !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Expected ErrInvalidResolution, got %v", err)
	}
}

func TestLouvain_HighResolutionSplitsMore(t *testing.T) {
	g := twoTriangles(t)

	low, err := Louvain(g, LouvainOptions{Resolution: 0.01})
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	high, err := Louvain(g, LouvainOptions{Resolution: 10})
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	if len(low.Communities) > len(high.Communities) {
		t.Errorf("Resolution 0.01 gave %d communities, resolution 10 gave %d",
			len(low.Communities), len(high.Communities))
	}
	if high.Resolution != 10 {
		t.Errorf("Resolution = %v, want 10", high.Resolution)
	}
}

func TestLouvain_WeightsMatter(t *testing.T) {
	// a square whose heavy sides pair a-b and c-d
	g := buildTestGraph(t, []string{"a", "b", "c", "d"}, []testEdge{
		{"a", "b", 10}, {"c", "d", 10}, {"b", "c", 1}, {"a", "d", 1},
	})

	result, err := Louvain(g, DefaultLouvainOptions())
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}
	if result.Membership["a"] != result.Membership["b"] || result.Membership["c"] != result.Membership["d"] {
		t.Errorf("Heavy pairs split: %v", result.Membership)
	}
	if result.Membership["a"] == result.Membership["c"] {
		t.Errorf("Expected two communities, got %v", result.Membership)
	}
}

func TestModularity(t *testing.T) {
	g := twoTriangles(t)

	q, err := Modularity(g, map[string]int{"a": 0, "b": 0, "c": 0, "d": 1, "e": 1, "f": 1}, 1)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if !approxEqual(q, 2*(3.0/7-0.25), 1e-12) {
		t.Errorf("Modularity = %v", q)
	}

	whole, err := Modularity(g, map[string]int{"a": 0, "b": 0, "c": 0, "d": 0, "e": 0, "f": 0}, 1)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if !approxEqual(whole, 0, 1e-12) {
		t.Errorf("Single-community modularity = %v, want 0", whole)
	}

	if _, err := Modularity(g, map[string]int{"a": 0}, 1); !errors.Is(err, ErrIncompletePartition) {
		t.Errorf("Expected ErrIncompletePartition, got %v", err)
	}

	edgeless := buildTestGraph(t, []string{"x"}, nil)
	if _, err := Modularity(edgeless, map[string]int{"x": 0}, 1); !errors.Is(err, ErrUndefined) {
		t.Errorf("Expected ErrUndefined, got %v", err)
	}
}

func TestLabelPropagation_TwoCliques(t *testing.T) {
	ids := []string{"a0", "a1", "a2", "a3", "b0", "b1", "b2", "b3"}
	var edgeList []testEdge
	for _, group := range [][]string{ids[:4], ids[4:]} {
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				edgeList = append(edgeList, testEdge{group[i], group[j], 1})
			}
		}
	}
	edgeList = append(edgeList, testEdge{"a3", "b0", 0.5})
	g := buildTestGraph(t, ids, edgeList)

	result, err := LabelPropagation(g, LabelPropagationOptions{})
	if err != nil {
		t.Fatalf("LabelPropagation failed: %v", err)
	}
	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %d: %v", len(result.Communities), result.Membership)
	}
	if result.Method != MethodLabelPropagation {
		t.Errorf("Method = %q", result.Method)
	}
	if result.Membership["a0"] == result.Membership["b0"] {
		t.Error("Cliques merged")
	}
}

func TestConnectedComponents_Partition(t *testing.T) {
	g := buildTestGraph(t, []string{"a", "b", "c", "d", "e"}, []testEdge{
		{"a", "b", 1}, {"c", "d", 1}, {"d", "e", 1},
	})

	result := ConnectedComponents(g)
	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(result.Communities))
	}
	if result.Communities[0].Size != 3 {
		t.Errorf("Largest component size = %d, want 3", result.Communities[0].Size)
	}
	if result.Membership["c"] != 0 || result.Membership["a"] != 1 {
		t.Errorf("Membership = %v", result.Membership)
	}
}

func TestCommunityDetectionResult_SameGrouping(t *testing.T) {
	a := &CommunityDetectionResult{Membership: map[string]int{"x": 0, "y": 0, "z": 1}}
	b := &CommunityDetectionResult{Membership: map[string]int{"x": 5, "y": 5, "z": 2}}
	c := &CommunityDetectionResult{Membership: map[string]int{"x": 0, "y": 1, "z": 1}}

	if !a.SameGrouping(b) {
		t.Error("Relabelled partition should match")
	}
	if a.SameGrouping(c) {
		t.Error("Different partition should not match")
	}
	if got := a.Labels()["z"]; got != "1" {
		t.Errorf("Labels()[z] = %q", got)
	}
}

func TestClusteringCoefficient(t *testing.T) {
	g := buildTestGraph(t, []string{"a", "b", "c", "d"}, []testEdge{
		{"a", "b", 1}, {"b", "c", 1}, {"a", "c", 1}, {"c", "d", 1},
	})

	cc := ClusteringCoefficient(g)
	want := map[string]float64{"a": 1, "b": 1, "c": 1.0 / 3, "d": 0}
	for id, w := range want {
		if !approxEqual(cc[id], w, 1e-12) {
			t.Errorf("Clustering[%s] = %v, want %v", id, cc[id], w)
		}
	}
	if avg := AverageClusteringCoefficient(g); !approxEqual(avg, 7.0/12, 1e-12) {
		t.Errorf("Average clustering = %v, want 7/12", avg)
	}

	per, total := TriangleCounts(g)
	if total != 1 || per["c"] != 1 || per["d"] != 0 {
		t.Errorf("Triangles = %v total %d", per, total)
	}
}

func TestMaximalCliques(t *testing.T) {
	g := buildTestGraph(t, []string{"a", "b", "c", "d"}, []testEdge{
		{"a", "b", 1}, {"b", "c", 1}, {"a", "c", 1}, {"c", "d", 1},
	})

	set := MaximalCliques(g, nil, CliqueOptions{})
	if len(set.Cliques) != 2 {
		t.Fatalf("Expected 2 maximal cliques, got %v", set.Cliques)
	}
	if got := set.Largest(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Largest clique = %v", got)
	}

	limited := MaximalCliques(g, nil, CliqueOptions{MaxCliques: 1})
	if !limited.Truncated || len(limited.Cliques) != 1 {
		t.Errorf("Expected truncation at one clique, got %+v", limited)
	}

	sub := MaximalCliques(g, []string{"c", "d", "missing"}, CliqueOptions{})
	if len(sub.Cliques) != 1 || !slices.Equal(sub.Cliques[0], []string{"c", "d"}) {
		t.Errorf("Induced cliques = %v", sub.Cliques)
	}
}

func TestLargestCliques_PerCommunity(t *testing.T) {
	g := twoTriangles(t)
	partition, err := Louvain(g, DefaultLouvainOptions())
	if err != nil {
		t.Fatalf("Louvain failed: %v", err)
	}

	summary := LargestCliques(g, partition, CliqueOptions{})
	if len(summary) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summary))
	}
	for _, s := range summary {
		if s.Count != 1 || len(s.Largest) != 3 {
			t.Errorf("Community %d: %+v", s.CommunityID, s)
		}
	}
}
