package homophily

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

func categorized(t *testing.T, cats map[string]string, edgeList [][3]any) *graph.Graph {
	t.Helper()

	g := graph.New()
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		if _, ok := cats[id]; !ok {
			continue
		}
		attrs := graph.Attributes{}
		if cats[id] != "" {
			attrs[graph.AttrContinent] = cats[id]
		}
		_, _, err := g.AddVertex(id, attrs)
		require.NoError(t, err)
	}
	for _, e := range edgeList {
		require.NoError(t, g.AddEdge(e[0].(string), e[1].(string), e[2].(float64)))
	}
	return g
}

func TestAnalyze_Segregated(t *testing.T) {
	g := categorized(t,
		map[string]string{"a": "EU", "b": "EU", "c": "AS", "d": "AS"},
		[][3]any{{"a", "b", 2.0}, {"c", "d", 1.0}},
	)

	report, err := Analyze(g, Options{Attribute: graph.AttrContinent})
	require.NoError(t, err)
	require.NotNil(t, report.Assortativity)
	require.NotNil(t, report.EIIndex)
	assert.InDelta(t, 1.0, *report.Assortativity, 1e-12)
	assert.InDelta(t, -1.0, *report.EIIndex, 1e-12)
	assert.Equal(t, 3.0, report.InternalWeight)
	assert.Zero(t, report.ExternalWeight)
	assert.Equal(t, 1.0, report.KnownFraction)
}

func TestAnalyze_Mixed(t *testing.T) {
	g := categorized(t,
		map[string]string{"a": "EU", "b": "AS", "c": "EU", "d": "AS"},
		[][3]any{{"a", "b", 1.0}, {"c", "d", 1.0}, {"a", "d", 1.0}},
	)

	report, err := Analyze(g, Options{Attribute: graph.AttrContinent})
	require.NoError(t, err)
	require.NotNil(t, report.EIIndex)
	assert.InDelta(t, 1.0, *report.EIIndex, 1e-12)
	require.NotNil(t, report.Assortativity)
	// perfectly disassortative with two balanced categories
	assert.InDelta(t, -1.0, *report.Assortativity, 1e-12)
	assert.InDelta(t, 0.5, report.Mixing["EU"]["AS"], 1e-12)
}

func TestAnalyze_Weighted(t *testing.T) {
	// e_EU,EU = 3/4, a_EU = 7/8, a_AS = 1/8
	g := categorized(t,
		map[string]string{"a": "EU", "b": "EU", "c": "AS"},
		[][3]any{{"a", "b", 3.0}, {"b", "c", 1.0}},
	)

	report, err := Analyze(g, Options{Attribute: graph.AttrContinent})
	require.NoError(t, err)
	sumSq := 49.0/64 + 1.0/64
	assert.InDelta(t, (0.75-sumSq)/(1-sumSq), *report.Assortativity, 1e-12)
	assert.InDelta(t, -0.5, *report.EIIndex, 1e-12)

	require.Len(t, report.Categories, 2)
	assert.Equal(t, "AS", report.Categories[0].Category)
	assert.InDelta(t, 1.0/8, report.Categories[0].EdgeEndShare, 1e-12)
	assert.Equal(t, 2, report.Categories[1].Vertices)
}

func TestAnalyze_SingleCategoryIsUndefined(t *testing.T) {
	g := categorized(t,
		map[string]string{"a": "EU", "b": "EU", "c": "EU"},
		[][3]any{{"a", "b", 1.0}, {"b", "c", 1.0}},
	)

	report, err := Analyze(g, Options{Attribute: graph.AttrContinent})
	require.NoError(t, err)
	assert.Nil(t, report.Assortativity)
	assert.Equal(t, ReasonSingleCategory, report.AssortativityReason)
	require.NotNil(t, report.EIIndex)
	assert.InDelta(t, -1.0, *report.EIIndex, 1e-12)
}

func TestAnalyze_NoEdges(t *testing.T) {
	g := categorized(t, map[string]string{"a": "EU", "b": "AS"}, nil)

	report, err := Analyze(g, Options{Attribute: graph.AttrContinent})
	require.NoError(t, err)
	assert.Nil(t, report.Assortativity)
	assert.Nil(t, report.EIIndex)
	assert.Equal(t, ReasonNoEdges, report.EIIndexReason)
	assert.Contains(t, report.String(), "undefined")
}

func TestAnalyze_UnknownHandling(t *testing.T) {
	// c has no continent and links the two EU vertices to AS
	g := categorized(t,
		map[string]string{"a": "EU", "b": "EU", "c": "", "d": "AS"},
		[][3]any{{"a", "b", 1.0}, {"b", "c", 1.0}, {"c", "d", 1.0}},
	)

	included, err := Analyze(g, Options{Attribute: graph.AttrContinent})
	require.NoError(t, err)
	assert.Equal(t, 4, included.Vertices)
	assert.Equal(t, 2.0, included.ExternalWeight)
	assert.InDelta(t, 0.75, included.KnownFraction, 1e-12)

	excluded, err := Analyze(g, Options{Attribute: graph.AttrContinent, ExcludeUnknown: true})
	require.NoError(t, err)
	assert.Equal(t, 3, excluded.Vertices)
	assert.Equal(t, 1, excluded.Edges)
	assert.Zero(t, excluded.ExternalWeight)
	assert.InDelta(t, 0.75, excluded.KnownFraction, 1e-12)
	assert.True(t, excluded.ExcludedUnknown)
}

func TestAnalyze_CustomUnknownLabel(t *testing.T) {
	g := categorized(t,
		map[string]string{"a": "1", "b": "1", "c": "-1"},
		[][3]any{{"a", "b", 1.0}, {"b", "c", 1.0}},
	)

	report, err := Analyze(g, Options{Attribute: graph.AttrContinent, UnknownLabel: "-1", ExcludeUnknown: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Vertices)
	assert.InDelta(t, 2.0/3, report.KnownFraction, 1e-12)
}

func TestAnalyze_RequiresAttribute(t *testing.T) {
	_, err := Analyze(graph.New(), Options{})
	assert.ErrorIs(t, err, ErrNoAttribute)
}
