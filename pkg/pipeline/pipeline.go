// Package pipeline runs the co-retweet analysis end to end: edge
// derivation, graph construction, region mapping, community detection,
// centrality and homophily.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/geo"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
	"github.com/dd0wney/cluso-coretweet/pkg/homophily"
	"github.com/dd0wney/cluso-coretweet/pkg/ingest"
	"github.com/dd0wney/cluso-coretweet/pkg/logging"
	"github.com/dd0wney/cluso-coretweet/pkg/metrics"
)

type runner struct {
	in      Inputs
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
	res     *Result
}

// Run executes every stage in order. The first failing stage aborts the
// run with a *StageError; non-fatal problems are collected in
// Result.Warnings. The partial result is returned alongside an error.
func Run(ctx context.Context, in Inputs, opts Options) (*Result, error) {
	r := &runner{
		in:      in,
		opts:    opts,
		metrics: opts.Metrics,
		res:     &Result{RunID: uuid.NewString()},
	}
	if r.metrics == nil {
		r.metrics = metrics.NewRegistry()
	}
	r.logger = logging.OrNop(opts.Logger).With(
		logging.Component("pipeline"),
		logging.RunID(r.res.RunID),
	)

	started := time.Now()
	r.logger.Info("run started")

	stages := []struct {
		name string
		fn   func(ctx context.Context, logger logging.Logger) ([]logging.Field, error)
	}{
		{StageEdges, r.buildEdges},
		{StageGraph, r.buildGraph},
		{StageRegions, r.mapRegions},
		{StageCommunity, r.detectCommunities},
		{StageCliques, r.findCliques},
		{StageCentrality, r.computeCentrality},
		{StageHomophily, r.analyzeHomophily},
	}

	var err error
	for _, s := range stages {
		if err = ctx.Err(); err != nil {
			err = &StageError{Stage: s.name, Cause: err}
			break
		}
		if err = r.stage(ctx, s.name, s.fn); err != nil {
			break
		}
	}
	if err == nil {
		err = r.stage(ctx, StageSummary, func(context.Context, logging.Logger) ([]logging.Field, error) {
			r.res.Summary = r.summarize(started)
			return nil, nil
		})
	}

	elapsed := time.Since(started)
	r.metrics.RecordRun(elapsed, err)
	if err != nil {
		r.logger.Error("run failed", logging.Error(err), logging.Latency(elapsed))
		return r.res, err
	}
	r.logger.Info("run finished",
		logging.Latency(elapsed),
		logging.Int("warnings", len(r.res.Warnings)))
	return r.res, nil
}

func (r *runner) stage(ctx context.Context, name string, fn func(context.Context, logging.Logger) ([]logging.Field, error)) error {
	logger := r.logger.With(logging.Stage(name))
	timer := logging.StartTimer(logger, "stage finished")
	before := len(r.res.Warnings)

	fields, err := fn(ctx, logger)
	var elapsed time.Duration
	if err != nil {
		elapsed = timer.EndError(err)
	} else {
		elapsed = timer.End(fields...)
	}
	r.metrics.RecordStage(name, elapsed, err)
	r.metrics.RecordWarnings(name, len(r.res.Warnings)-before)
	if err != nil {
		return &StageError{Stage: name, Cause: err}
	}
	return nil
}

func (r *runner) warn(logger logging.Logger, stage string, err error) {
	logger.Warn(err.Error())
	r.res.Warnings = append(r.res.Warnings, Warning{Stage: stage, Err: err})
}

func (r *runner) buildEdges(ctx context.Context, logger logging.Logger) ([]logging.Field, error) {
	if r.in.EdgeList != nil {
		r.res.EdgeList = r.in.EdgeList
		return []logging.Field{logging.Bool("precomputed", true), logging.Count(len(r.in.EdgeList))}, nil
	}
	if r.in.Source == nil {
		return nil, ErrNoInput
	}

	records, err := r.in.Source.Interactions(ctx)
	if err != nil {
		return nil, err
	}
	if csvSource, ok := r.in.Source.(*ingest.CSVSource); ok {
		if stats := csvSource.Stats; stats.Short > 0 || stats.BadCounts > 0 {
			r.warn(logger, StageEdges, fmt.Errorf("%s: %d short rows skipped, %d unparsable retweet counts read as 0",
				csvSource.Path, stats.Short, stats.BadCounts))
		}
	}

	built, err := edges.Build(records, r.opts.Edges)
	if err != nil {
		return nil, err
	}
	r.res.EdgeBuild = built
	r.res.EdgeList = built.Edges
	r.res.Details = edges.CollectAuthorDetails(records)

	st := built.Stats
	r.metrics.RecordEdgeDerivation(int64(st.Records), int64(st.Retweets), int64(st.RetainedAuthors),
		st.PairIncrements, int64(st.TruncatedRetweeters))
	if st.TruncatedRetweeters > 0 {
		r.warn(logger, StageEdges, fmt.Errorf("%d retweeters truncated to %d authors each",
			st.TruncatedRetweeters, r.opts.Edges.MaxAuthorsPerRetweeter))
	}
	return []logging.Field{
		logging.Int("records", st.Records),
		logging.Int("retweets", st.Retweets),
		logging.Int("retained_authors", st.RetainedAuthors),
		logging.Count(len(built.Edges)),
	}, nil
}

func (r *runner) buildGraph(_ context.Context, logger logging.Logger) ([]logging.Field, error) {
	g, report, err := graph.Build(r.in.Vertices, r.res.EdgeList)
	if err != nil {
		return nil, err
	}
	r.res.Graph = g
	r.res.BuildReport = report

	if report.DuplicateVertices > 0 {
		r.warn(logger, StageGraph, fmt.Errorf("%d duplicate vertex rows dropped, first occurrence kept (e.g. %v)",
			report.DuplicateVertices, report.DuplicateSample))
	}
	if report.UnresolvedVertices > 0 {
		r.warn(logger, StageGraph, fmt.Errorf("%d edge endpoints missing from the vertex table (e.g. %v)",
			report.UnresolvedVertices, report.UnresolvedSample))
	}

	components := len(g.ComponentIndices())
	r.metrics.UpdateGraphMetrics(g.Order(), g.Size(), g.TotalWeight(), components,
		report.DuplicateVertices, report.UnresolvedVertices)
	return []logging.Field{
		logging.Int("vertices", g.Order()),
		logging.Int("edges", g.Size()),
		logging.Int("components", components),
	}, nil
}

// mapRegions fills the continent attribute from the location attribute.
// Continents already present in the vertex table are kept.
func (r *runner) mapRegions(_ context.Context, logger logging.Logger) ([]logging.Field, error) {
	if r.opts.Resolver == nil {
		logger.Debug("no resolver, region mapping skipped")
		return nil, nil
	}
	g := r.res.Graph
	report := &RegionReport{}
	if table, ok := r.opts.Resolver.(*geo.Table); ok {
		report.TableVersion = table.Version
	}

	locations := make(map[string]string)
	for idx, id := range g.IDs() {
		if v, ok := g.AttributeAt(idx, graph.AttrContinent); ok && v != "" {
			report.Kept++
			continue
		}
		if loc, ok := g.AttributeAt(idx, graph.AttrLocation); ok && loc != "" {
			locations[id] = loc
		}
	}

	continents, unknown := geo.ResolveAll(r.opts.Resolver, locations)
	g.AttachAttribute(graph.AttrContinent, continents)
	report.Looked = len(locations)
	report.Unknown = unknown
	report.Resolved = len(locations) - unknown
	r.res.Regions = report
	r.metrics.RecordRegions(unknown)

	if g.Order() > 0 && report.Looked == 0 && report.Kept == 0 {
		r.warn(logger, StageRegions, fmt.Errorf("no vertex has a %q attribute, every continent is %s",
			graph.AttrLocation, graph.UnknownCategory))
	}
	return []logging.Field{
		logging.Int("looked_up", report.Looked),
		logging.Int("resolved", report.Resolved),
		logging.Int("unknown", report.Unknown),
	}, nil
}

func (r *runner) detectCommunities(_ context.Context, logger logging.Logger) ([]logging.Field, error) {
	g := r.res.Graph
	var (
		partition *algorithms.CommunityDetectionResult
		err       error
	)
	switch r.opts.CommunityMethod {
	case "", algorithms.MethodLouvain:
		partition, err = algorithms.Louvain(g, r.opts.Louvain)
	case algorithms.MethodLabelPropagation:
		partition, err = algorithms.LabelPropagation(g, r.opts.LabelPropagation)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, r.opts.CommunityMethod)
	}
	if err != nil {
		return nil, err
	}
	r.res.Communities = partition
	g.AttachAttribute(graph.AttrCommunity, partition.Labels())

	r.metrics.RecordCommunities(len(partition.Communities), partition.Modularity, partition.ModularityDefined)
	r.metrics.RecordIterations(partition.Method, partition.Levels, true)
	if !partition.ModularityDefined && g.Order() > 0 {
		r.warn(logger, StageCommunity, fmt.Errorf("modularity: %w: graph has no edge weight", algorithms.ErrUndefined))
	}
	q := partition.Modularity
	if !partition.ModularityDefined {
		q = math.NaN()
	}
	return []logging.Field{
		logging.Method(partition.Method),
		logging.Int("communities", len(partition.Communities)),
		logging.Modularity(q),
	}, nil
}

func (r *runner) findCliques(_ context.Context, logger logging.Logger) ([]logging.Field, error) {
	if !r.opts.Cliques {
		return []logging.Field{logging.Bool("skipped", true)}, nil
	}
	r.res.Cliques = algorithms.LargestCliques(r.res.Graph, r.res.Communities, r.opts.CliqueOptions)
	truncated := 0
	for _, c := range r.res.Cliques {
		if c.Truncated {
			truncated++
		}
	}
	if truncated > 0 {
		r.warn(logger, StageCliques, fmt.Errorf("clique enumeration stopped at %d cliques in %d communities",
			r.opts.CliqueOptions.MaxCliques, truncated))
	}
	return []logging.Field{logging.Count(len(r.res.Cliques))}, nil
}

func (r *runner) computeCentrality(_ context.Context, logger logging.Logger) ([]logging.Field, error) {
	result, err := algorithms.ComputeCentrality(r.res.Graph, r.opts.Centrality)
	if err != nil {
		return nil, err
	}
	r.res.Centrality = result

	if result.PageRank != nil {
		r.metrics.RecordIterations(string(algorithms.MetricPageRank), result.PageRank.Iterations, result.PageRank.Converged)
	}
	if result.Eigenvector != nil {
		r.metrics.RecordIterations(string(algorithms.MetricEigenvector), result.Eigenvector.Iterations, result.Eigenvector.Converged)
	}
	for _, w := range result.Warnings {
		r.warn(logger, StageCentrality, w)
	}
	return []logging.Field{logging.Int("metrics", len(result.Scores))}, nil
}

// analyzeHomophily analyzes every configured attribute, then checks that the
// community labels themselves are assortative
func (r *runner) analyzeHomophily(_ context.Context, logger logging.Logger) ([]logging.Field, error) {
	g := r.res.Graph
	opts := slices.Clone(r.opts.Homophily)
	hasCommunity := slices.ContainsFunc(opts, func(o homophily.Options) bool {
		return o.Attribute == graph.AttrCommunity
	})
	if !hasCommunity {
		opts = append(opts, homophily.Options{Attribute: graph.AttrCommunity})
	}

	for _, o := range opts {
		report, err := homophily.Analyze(g, o)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", o.Attribute, err)
		}
		r.res.Homophily = append(r.res.Homophily, report)
		r.metrics.RecordHomophily(o.Attribute, report.Assortativity, report.EIIndex, report.KnownFraction)
		logger.Debug("homophily analyzed",
			logging.Attribute(o.Attribute),
			logging.String("assortativity", formatOptional(report.Assortativity)),
			logging.String("ei_index", formatOptional(report.EIIndex)))

		if o.Attribute == graph.AttrCommunity && report.Assortativity != nil &&
			*report.Assortativity <= 0 && len(r.res.Communities.Communities) > 1 {
			r.warn(logger, StageHomophily, fmt.Errorf("%w: assortativity %.4f", ErrNotAssortative, *report.Assortativity))
		}
	}
	return []logging.Field{logging.Count(len(r.res.Homophily))}, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.6f", *v)
}

func (r *runner) summarize(started time.Time) *Summary {
	res := r.res
	s := &Summary{
		RunID:           res.RunID,
		StartedAt:       started.UTC(),
		DurationSeconds: time.Since(started).Seconds(),
		Build:           res.BuildReport,
		Graph:           res.Graph.Summarize(),
		Regions:         res.Regions,
		Warnings:        make([]string, len(res.Warnings)),
	}
	if res.EdgeBuild != nil {
		s.EdgeDerivation = &res.EdgeBuild.Stats
	}

	if p := res.Communities; p != nil {
		cs := &CommunitySummary{
			Method:     p.Method,
			Count:      len(p.Communities),
			Resolution: p.Resolution,
			Levels:     p.Levels,
			Clustering: algorithms.AverageClusteringCoefficient(res.Graph),
		}
		if p.ModularityDefined {
			q := p.Modularity
			cs.Modularity = &q
		}
		for _, c := range p.Communities {
			cs.Largest = max(cs.Largest, c.Size)
			if c.Size == 1 {
				cs.Singletons++
			}
		}
		for _, c := range res.Cliques {
			cs.LargestClique = max(cs.LargestClique, len(c.Largest))
		}
		s.Community = cs
	}

	if c := res.Centrality; c != nil {
		s.Top = c.Top
		if c.PageRank != nil {
			s.PageRank = &IterationSummary{Iterations: c.PageRank.Iterations, Converged: c.PageRank.Converged, Residual: c.PageRank.Residual}
		}
		if c.Eigenvector != nil {
			s.Eigenvector = &IterationSummary{Iterations: c.Eigenvector.Iterations, Converged: c.Eigenvector.Converged}
		}
	}

	for _, h := range res.Homophily {
		s.Homophily = append(s.Homophily, HomophilySummary{
			Attribute:     h.Attribute,
			Assortativity: h.Assortativity,
			EIIndex:       h.EIIndex,
			KnownFraction: h.KnownFraction,
		})
	}
	for i, w := range res.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}
