package config

import (
	"os"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/homophily"
	"github.com/dd0wney/cluso-coretweet/pkg/logging"
)

// BuildOptions returns the edge derivation bounds
func (c EdgesConfig) BuildOptions() edges.BuildOptions {
	return edges.BuildOptions{
		TopK:                   c.TopK,
		MaxAuthorsPerRetweeter: c.MaxAuthorsPerRetweeter,
	}
}

// LouvainOptions returns the Louvain settings
func (c CommunityConfig) LouvainOptions() algorithms.LouvainOptions {
	return algorithms.LouvainOptions{
		Resolution: c.Resolution,
		MaxLevels:  c.MaxLevels,
		MaxPasses:  c.MaxPasses,
	}
}

// LabelPropagationOptions returns the label propagation settings
func (c CommunityConfig) LabelPropagationOptions() algorithms.LabelPropagationOptions {
	return algorithms.LabelPropagationOptions{
		MaxIterations: c.MaxIterations,
		Resolution:    c.Resolution,
	}
}

// Options converts the section into algorithm options. The config has
// already been validated, so unknown names cannot occur.
func (c CentralityConfig) Options() algorithms.CentralityOptions {
	metrics := make([]algorithms.Metric, 0, len(c.Metrics))
	for _, name := range c.Metrics {
		if m, err := algorithms.ParseMetric(name); err == nil {
			metrics = append(metrics, m)
		}
	}
	distance, _ := algorithms.ParseDistanceMode(c.Distance)

	return algorithms.CentralityOptions{
		Metrics: metrics,
		PageRank: algorithms.PageRankOptions{
			DampingFactor: c.Damping,
			MaxIterations: c.MaxIterations,
			Tolerance:     c.Tolerance,
		},
		Eigenvector: algorithms.EigenvectorOptions{
			MaxIterations: c.EigenvectorMaxIterations,
			Tolerance:     c.EigenvectorTolerance,
		},
		Paths: algorithms.PathOptions{Distance: distance, Workers: c.Workers},
		TopN:  c.TopN,
	}
}

// Options returns one homophily.Options per configured attribute
func (c HomophilyConfig) Options() []homophily.Options {
	out := make([]homophily.Options, len(c.Attributes))
	for i, attr := range c.Attributes {
		out[i] = homophily.Options{
			Attribute:      attr,
			UnknownLabel:   c.UnknownLabel,
			ExcludeUnknown: c.ExcludeUnknown,
		}
	}
	return out
}

// NewLogger builds the configured logger
func (c LoggingConfig) NewLogger() (logging.Logger, error) {
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if c.Format == LogFormatZap {
		return logging.NewZapLogger(level)
	}
	return logging.NewJSONLogger(os.Stderr, level), nil
}
