package pipeline

import (
	"time"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/export"
	"github.com/dd0wney/cluso-coretweet/pkg/geo"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
	"github.com/dd0wney/cluso-coretweet/pkg/homophily"
	"github.com/dd0wney/cluso-coretweet/pkg/ingest"
	"github.com/dd0wney/cluso-coretweet/pkg/logging"
	"github.com/dd0wney/cluso-coretweet/pkg/metrics"
)

// Stage names, as used in logs, metrics and errors
const (
	StageEdges      = "edges"
	StageGraph      = "graph"
	StageRegions    = "regions"
	StageCommunity  = "community"
	StageCliques    = "cliques"
	StageCentrality = "centrality"
	StageHomophily  = "homophily"
	StageSummary    = "summary"
)

// Inputs are the data of one run. A non-nil EdgeList skips edge
// derivation and Source is not read.
type Inputs struct {
	Source   ingest.Source
	EdgeList []edges.WeightedEdge
	Vertices []graph.VertexRecord
}

// Options configures a run
type Options struct {
	Edges edges.BuildOptions

	// CommunityMethod is algorithms.MethodLouvain or
	// algorithms.MethodLabelPropagation. Empty means Louvain.
	CommunityMethod  string
	Louvain          algorithms.LouvainOptions
	LabelPropagation algorithms.LabelPropagationOptions
	// Cliques enumerates maximal cliques inside each community
	Cliques       bool
	CliqueOptions algorithms.CliqueOptions

	Centrality algorithms.CentralityOptions
	Homophily  []homophily.Options

	// Resolver maps vertex locations to continents. Nil skips the stage.
	Resolver geo.Resolver

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// DefaultOptions returns Louvain at resolution 1, every centrality measure
// and homophily over continent and community
func DefaultOptions() Options {
	return Options{
		CommunityMethod: algorithms.MethodLouvain,
		Louvain:         algorithms.DefaultLouvainOptions(),
		Centrality:      algorithms.DefaultCentralityOptions(),
		Homophily: []homophily.Options{
			{Attribute: graph.AttrContinent, ExcludeUnknown: true},
			{Attribute: graph.AttrCommunity},
		},
	}
}

// RegionReport counts location lookups
type RegionReport struct {
	TableVersion string `json:"table_version,omitempty"`
	Looked       int    `json:"looked_up"`
	Resolved     int    `json:"resolved"`
	Unknown      int    `json:"unknown"`
	// Kept counts vertices whose continent came from the vertex table
	Kept int `json:"kept"`
}

// Result holds everything a run produced
type Result struct {
	RunID       string
	EdgeBuild   *edges.BuildResult
	EdgeList    []edges.WeightedEdge
	Details     map[string]edges.AuthorDetail
	Graph       *graph.Graph
	BuildReport *graph.BuildReport
	Regions     *RegionReport
	Communities *algorithms.CommunityDetectionResult
	Cliques     []algorithms.CommunityCliques
	Centrality  *algorithms.CentralityResult
	Homophily   []*homophily.Report
	Summary     *Summary
	Warnings    []Warning
}

// Bundle returns the exportable tables of the run
func (r *Result) Bundle() export.Bundle {
	b := export.Bundle{
		Edges:      r.EdgeList,
		Graph:      r.Graph,
		Partition:  r.Communities,
		Details:    r.Details,
		Cliques:    r.Cliques,
		Centrality: r.Centrality,
		Homophily:  r.Homophily,
	}
	if r.Summary != nil {
		b.Summary = r.Summary
	}
	return b
}

// IterationSummary describes an iterative algorithm run
type IterationSummary struct {
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Residual   float64 `json:"residual,omitempty"`
}

// CommunitySummary describes the detected partition
type CommunitySummary struct {
	Method        string   `json:"method"`
	Count         int      `json:"count"`
	Largest       int      `json:"largest"`
	Modularity    *float64 `json:"modularity"`
	Resolution    float64  `json:"resolution"`
	Levels        int      `json:"levels"`
	Singletons    int      `json:"singletons"`
	Clustering    float64  `json:"average_clustering"`
	LargestClique int      `json:"largest_clique,omitempty"`
}

// HomophilySummary is the headline of one homophily report
type HomophilySummary struct {
	Attribute     string   `json:"attribute"`
	Assortativity *float64 `json:"assortativity"`
	EIIndex       *float64 `json:"ei_index"`
	KnownFraction float64  `json:"known_fraction"`
}

// Summary is the run summary table
type Summary struct {
	RunID           string                                        `json:"run_id"`
	StartedAt       time.Time                                     `json:"started_at"`
	DurationSeconds float64                                       `json:"duration_seconds"`
	EdgeDerivation  *edges.BuildStats                             `json:"edge_derivation,omitempty"`
	Build           *graph.BuildReport                            `json:"build"`
	Graph           graph.Summary                                 `json:"graph"`
	Regions         *RegionReport                                 `json:"regions,omitempty"`
	Community       *CommunitySummary                             `json:"community,omitempty"`
	PageRank        *IterationSummary                             `json:"pagerank,omitempty"`
	Eigenvector     *IterationSummary                             `json:"eigenvector,omitempty"`
	Top             map[algorithms.Metric][]algorithms.RankedNode `json:"top,omitempty"`
	Homophily       []HomophilySummary                            `json:"homophily,omitempty"`
	Warnings        []string                                      `json:"warnings"`
}
