package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
	"github.com/dd0wney/cluso-coretweet/pkg/homophily"
	"github.com/dd0wney/cluso-coretweet/pkg/logging"
)

// Artifact file names
const (
	EdgesFile          = "coretweet_edges.csv"
	CommunitiesFile    = "coretweet_nodes_with_communities.csv"
	CommunityStatsFile = "coretweet_communities.csv"
	CentralityFile     = "coretweet_centrality.csv"
	HomophilyFile      = "coretweet_homophily.json"
	SummaryFile        = "coretweet_summary.json"
)

// Artifact is one named table rendered on demand
type Artifact struct {
	Name   string
	Render func(w io.Writer) error
}

// Bundle holds the results a run can export. Nil fields are skipped.
type Bundle struct {
	Edges      []edges.WeightedEdge
	Graph      *graph.Graph
	Partition  *algorithms.CommunityDetectionResult
	Details    map[string]edges.AuthorDetail
	Cliques    []algorithms.CommunityCliques
	Centrality *algorithms.CentralityResult
	Homophily  []*homophily.Report
	Summary    any
}

// Artifacts lists the tables available in b
func Artifacts(b Bundle) []Artifact {
	var out []Artifact
	if b.Edges != nil {
		out = append(out, Artifact{EdgesFile, func(w io.Writer) error { return WriteEdges(w, b.Edges) }})
	}
	if b.Graph != nil && b.Partition != nil {
		out = append(out,
			Artifact{CommunitiesFile, func(w io.Writer) error { return WriteCommunities(w, b.Graph, b.Partition, b.Details) }},
			Artifact{CommunityStatsFile, func(w io.Writer) error { return WriteCommunityStats(w, b.Partition, b.Cliques) }},
		)
	}
	if b.Centrality != nil {
		out = append(out, Artifact{CentralityFile, func(w io.Writer) error { return WriteCentrality(w, b.Centrality, b.Partition) }})
	}
	if b.Homophily != nil {
		out = append(out, Artifact{HomophilyFile, func(w io.Writer) error { return WriteJSON(w, b.Homophily) }})
	}
	if b.Summary != nil {
		out = append(out, Artifact{SummaryFile, func(w io.Writer) error { return WriteJSON(w, b.Summary) }})
	}
	return out
}

// Written records where one artifact was stored
type Written struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Bytes    int    `json:"bytes"`
}

// Exporter renders artifacts once and stores them in every sink
type Exporter struct {
	sinks  []Sink
	logger logging.Logger
}

// NewExporter creates an exporter. A nil logger discards output.
func NewExporter(logger logging.Logger, sinks ...Sink) *Exporter {
	return &Exporter{sinks: sinks, logger: logging.OrNop(logger)}
}

// Export writes each artifact to each sink, stopping at the first failure
func (e *Exporter) Export(ctx context.Context, artifacts []Artifact) ([]Written, error) {
	var written []Written
	var buf bytes.Buffer
	for _, a := range artifacts {
		buf.Reset()
		if err := a.Render(&buf); err != nil {
			return written, fmt.Errorf("render %s: %w", a.Name, err)
		}
		for _, sink := range e.sinks {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			location, err := sink.Put(ctx, a.Name, buf.Bytes())
			if err != nil {
				return written, err
			}
			e.logger.Debug("artifact written",
				logging.Path(location),
				logging.Count(buf.Len()))
			written = append(written, Written{Name: a.Name, Location: location, Bytes: buf.Len()})
		}
	}
	return written, nil
}
