package main

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/config"
	"github.com/dd0wney/cluso-coretweet/pkg/export"
	"github.com/dd0wney/cluso-coretweet/pkg/geo"
	"github.com/dd0wney/cluso-coretweet/pkg/ingest"
	"github.com/dd0wney/cluso-coretweet/pkg/logging"
	"github.com/dd0wney/cluso-coretweet/pkg/metrics"
	"github.com/dd0wney/cluso-coretweet/pkg/pipeline"
)

// report is what the CLI prints after a run
type report struct {
	result  *pipeline.Result
	written []export.Written
}

// execute loads the inputs, runs the pipeline and exports the tables
func execute(ctx context.Context, cfg *config.Config, logger logging.Logger, reg *metrics.Registry) (*report, error) {
	in, closeInputs, err := loadInputs(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeInputs()

	opts, err := pipelineOptions(cfg, logger, reg)
	if err != nil {
		return nil, err
	}
	res, err := pipeline.Run(ctx, in, opts)
	if err != nil {
		return nil, err
	}

	sinks := []export.Sink{&export.FileSink{Dir: cfg.Output.Dir, Compress: cfg.Output.Compress}}
	if s3cfg := cfg.Output.S3; s3cfg.Bucket != "" {
		prefix := s3cfg.Prefix
		if prefix == "" {
			prefix = res.RunID
		}
		sink, err := export.NewS3Sink(ctx, export.S3Options{
			Bucket:          s3cfg.Bucket,
			Prefix:          prefix,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			UsePathStyle:    s3cfg.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}

	timer := logging.StartTimer(logger, "tables exported", logging.RunID(res.RunID))
	written, err := export.NewExporter(logger, sinks...).Export(ctx, export.Artifacts(res.Bundle()))
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("export: %w", err)
	}
	timer.End(logging.Count(len(written)))
	return &report{result: res, written: written}, nil
}

func loadInputs(ctx context.Context, cfg *config.Config) (pipeline.Inputs, func(), error) {
	var in pipeline.Inputs
	closer := func() {}
	cols := cfg.Input.Columns

	if cfg.Input.Vertices != "" {
		vertices, _, err := ingest.ReadVerticesFile(cfg.Input.Vertices, cols.Vertices)
		if err != nil {
			return in, closer, err
		}
		in.Vertices = vertices
	}

	switch {
	case cfg.Input.EdgeList != "":
		edgeList, _, err := ingest.ReadEdgesFile(cfg.Input.EdgeList, cols.Edges)
		if err != nil {
			return in, closer, err
		}
		in.EdgeList = edgeList
	case cfg.Input.Source == config.SourcePostgres:
		src, err := ingest.NewPGSource(ctx, cfg.Input.Postgres.URL, cfg.Input.Postgres.Table, cols.Interactions)
		if err != nil {
			return in, closer, err
		}
		in.Source = src
		closer = func() { src.Close() }
	default:
		in.Source = &ingest.CSVSource{Path: cfg.Input.Interactions, Columns: cols.Interactions}
	}
	return in, closer, nil
}

func pipelineOptions(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) (pipeline.Options, error) {
	opts := pipeline.Options{
		Edges:            cfg.Edges.BuildOptions(),
		CommunityMethod:  cfg.Community.Method,
		Louvain:          cfg.Community.LouvainOptions(),
		LabelPropagation: cfg.Community.LabelPropagationOptions(),
		Cliques:          cfg.Community.Cliques,
		CliqueOptions:    algorithms.CliqueOptions{MaxCliques: cfg.Community.MaxCliques},
		Centrality:       cfg.Centrality.Options(),
		Homophily:        cfg.Homophily.Options(),
		Logger:           logger,
		Metrics:          reg,
	}
	if cfg.Regions.Enabled {
		var (
			table *geo.Table
			err   error
		)
		if cfg.Regions.Table != "" {
			table, err = geo.LoadTableFile(cfg.Regions.Table)
		} else {
			table, err = geo.DefaultTable()
		}
		if err != nil {
			return opts, fmt.Errorf("load region table: %w", err)
		}
		opts.Resolver = table
	}
	return opts, nil
}
