package graph

import (
	"github.com/dd0wney/cluso-coretweet/pkg/edges"
)

// sampleLimit bounds the id samples kept in a BuildReport
const sampleLimit = 10

// VertexRecord is one row of the vertex attribute table
type VertexRecord struct {
	ID         string
	Attributes Attributes
}

// BuildReport counts the recoveries made while building a graph
type BuildReport struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
	// DuplicateVertices counts attribute-table rows dropped because their id
	// was already seen. The first occurrence wins.
	DuplicateVertices int      `json:"duplicate_vertices"`
	DuplicateSample   []string `json:"duplicate_sample,omitempty"`
	// UnresolvedVertices counts edge endpoints missing from a non-empty
	// attribute table; they are inserted with empty attributes.
	UnresolvedVertices int      `json:"unresolved_vertices"`
	UnresolvedSample   []string `json:"unresolved_sample,omitempty"`
	// SkippedVertices counts attribute rows with an empty id
	SkippedVertices int `json:"skipped_vertices"`
}

// Build constructs a graph from an attribute table and an edge list. Table
// vertices come first in table order, then endpoints unknown to the table
// in edge order. Edges with a self-loop or non-positive weight are rejected.
func Build(vertices []VertexRecord, edgeList []edges.WeightedEdge) (*Graph, *BuildReport, error) {
	g := New()
	report := &BuildReport{}

	for _, rec := range vertices {
		if rec.ID == "" {
			report.SkippedVertices++
			continue
		}
		if _, added, _ := g.AddVertex(rec.ID, rec.Attributes); !added {
			report.DuplicateVertices++
			report.DuplicateSample = appendSample(report.DuplicateSample, rec.ID)
		}
	}
	haveTable := g.Order() > 0

	for _, e := range edgeList {
		if haveTable {
			for _, id := range [2]string{e.Source, e.Target} {
				if id != "" && !g.Has(id) {
					report.UnresolvedVertices++
					report.UnresolvedSample = appendSample(report.UnresolvedSample, id)
					g.AddVertex(id, nil)
				}
			}
		}
		if err := g.AddEdge(e.Source, e.Target, float64(e.Weight)); err != nil {
			return nil, nil, err
		}
	}

	report.Vertices = g.Order()
	report.Edges = g.Size()
	return g, report, nil
}

func appendSample(sample []string, id string) []string {
	if len(sample) >= sampleLimit {
		return sample
	}
	return append(sample, id)
}
