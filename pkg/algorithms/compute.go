package algorithms

import (
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// Metric names one centrality measure
type Metric string

const (
	MetricStrength    Metric = "strength"
	MetricDegree      Metric = "degree"
	MetricPageRank    Metric = "pagerank"
	MetricBetweenness Metric = "betweenness"
	MetricCloseness   Metric = "closeness"
	MetricEigenvector Metric = "eigenvector"
)

// AllMetrics lists every measure in output column order
var AllMetrics = []Metric{
	MetricStrength, MetricDegree, MetricPageRank,
	MetricBetweenness, MetricCloseness, MetricEigenvector,
}

// ParseMetric accepts the lowercase metric names
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !slices.Contains(AllMetrics, m) {
		return "", fmt.Errorf("unknown centrality metric %q", s)
	}
	return m, nil
}

// CentralityOptions selects and configures the measures ComputeCentrality runs
type CentralityOptions struct {
	// Metrics to compute. Empty means AllMetrics.
	Metrics     []Metric
	PageRank    PageRankOptions
	Eigenvector EigenvectorOptions
	Paths       PathOptions
	// TopN sizes the per-metric leaderboards. Zero skips them.
	TopN int
}

// DefaultCentralityOptions runs every metric with default settings
func DefaultCentralityOptions() CentralityOptions {
	return CentralityOptions{
		PageRank:    DefaultPageRankOptions(),
		Eigenvector: DefaultEigenvectorOptions(),
		TopN:        10,
	}
}

// CentralityResult contains the computed measures keyed by vertex id. Maps
// of measures that were not selected are nil.
type CentralityResult struct {
	Scores      map[Metric]map[string]float64
	PageRank    *PageRankResult
	Eigenvector *EigenvectorResult
	Top         map[Metric][]RankedNode
	// Warnings holds non-fatal problems such as non-convergence
	Warnings []error
}

// Score returns one measure for one vertex
func (r *CentralityResult) Score(m Metric, id string) (float64, bool) {
	scores, ok := r.Scores[m]
	if !ok {
		return 0, false
	}
	s, ok := scores[id]
	return s, ok
}

// Has reports whether measure m was computed
func (r *CentralityResult) Has(m Metric) bool {
	_, ok := r.Scores[m]
	return ok
}

// ComputeCentrality runs each selected measure independently over g. A
// measure that fails aborts the run; non-convergence is recorded in
// Warnings and the last estimate is kept.
func ComputeCentrality(g *graph.Graph, opts CentralityOptions) (*CentralityResult, error) {
	metrics := opts.Metrics
	if len(metrics) == 0 {
		metrics = AllMetrics
	}

	result := &CentralityResult{
		Scores: make(map[Metric]map[string]float64, len(metrics)),
		Top:    make(map[Metric][]RankedNode),
	}
	for _, m := range metrics {
		var (
			scores map[string]float64
			err    error
		)
		switch m {
		case MetricStrength:
			scores = Strength(g)
		case MetricDegree:
			scores = DegreeCentrality(g)
		case MetricPageRank:
			result.PageRank, err = PageRank(g, opts.PageRank)
			if err == nil {
				scores = result.PageRank.Scores
				if warn := result.PageRank.Err(); warn != nil {
					result.Warnings = append(result.Warnings, warn)
				}
			}
		case MetricBetweenness:
			scores, err = Betweenness(g, opts.Paths)
		case MetricCloseness:
			scores, err = Closeness(g, opts.Paths)
		case MetricEigenvector:
			result.Eigenvector, err = EigenvectorCentrality(g, opts.Eigenvector)
			if err == nil {
				scores = result.Eigenvector.Scores
				if warn := result.Eigenvector.Err(); warn != nil {
					result.Warnings = append(result.Warnings, warn)
				}
			}
		default:
			err = fmt.Errorf("unknown centrality metric %q", m)
		}
		if err != nil {
			return nil, fmt.Errorf("centrality %s: %w", m, err)
		}
		result.Scores[m] = scores
		if opts.TopN > 0 {
			result.Top[m] = TopNodes(scores, opts.TopN)
		}
	}
	return result, nil
}
