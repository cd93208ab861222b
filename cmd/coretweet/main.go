package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-coretweet/pkg/config"
	"github.com/dd0wney/cluso-coretweet/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

type flags struct {
	configPath   string
	interactions string
	edgeList     string
	vertices     string
	outDir       string
	topK         int
	method       string
	resolution   float64
	workers      int
	compress     bool
	noRegions    bool
	cliques      bool
	logLevel     string
	textfile     string
	s3Bucket     string
}

func parseFlags(args []string) (*flags, map[string]bool, error) {
	f := &flags{}
	fs := flag.NewFlagSet("coretweet", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.interactions, "interactions", "", "Interaction log CSV")
	fs.StringVar(&f.edgeList, "edge-list", "", "Precomputed edge list CSV, skips edge derivation")
	fs.StringVar(&f.vertices, "vertices", "", "Vertex attribute CSV")
	fs.StringVar(&f.outDir, "out", "", "Output directory")
	fs.IntVar(&f.topK, "top-k", 0, "Authors kept by retweeter count")
	fs.StringVar(&f.method, "method", "", "Community method: louvain or label_propagation")
	fs.Float64Var(&f.resolution, "resolution", 0, "Modularity resolution")
	fs.IntVar(&f.workers, "workers", 0, "Workers for path-based centrality, 0 for GOMAXPROCS")
	fs.BoolVar(&f.compress, "compress", false, "Snappy-compress exported tables")
	fs.BoolVar(&f.noRegions, "no-regions", false, "Skip location to continent mapping")
	fs.BoolVar(&f.cliques, "cliques", false, "Enumerate maximal cliques per community")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.textfile, "metrics-textfile", "", "Write prometheus metrics to this file")
	fs.StringVar(&f.s3Bucket, "s3-bucket", "", "Also upload exported tables to this bucket")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// loadConfig reads the config file, or the defaults, and applies the
// flags that were given on the command line
func loadConfig(f *flags, set map[string]bool) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	if set["interactions"] {
		cfg.Input.Source = config.SourceCSV
		cfg.Input.Interactions = f.interactions
	}
	if set["edge-list"] {
		cfg.Input.EdgeList = f.edgeList
	}
	if set["vertices"] {
		cfg.Input.Vertices = f.vertices
	}
	if set["out"] {
		cfg.Output.Dir = f.outDir
	}
	if set["top-k"] {
		cfg.Edges.TopK = f.topK
	}
	if set["method"] {
		cfg.Community.Method = f.method
	}
	if set["resolution"] {
		cfg.Community.Resolution = f.resolution
	}
	if set["workers"] {
		cfg.Centrality.Workers = f.workers
	}
	if set["compress"] {
		cfg.Output.Compress = f.compress
	}
	if set["no-regions"] {
		cfg.Regions.Enabled = !f.noRegions
	}
	if set["cliques"] {
		cfg.Community.Cliques = f.cliques
	}
	if set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}
	if set["metrics-textfile"] {
		cfg.Metrics.Textfile = f.textfile
	}
	if set["s3-bucket"] {
		cfg.Output.S3.Bucket = f.s3Bucket
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f, set, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f, set)
	if err != nil {
		return err
	}
	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	reg := metrics.NewRegistry()
	report, runErr := execute(ctx, cfg, logger, reg)
	if cfg.Metrics.Textfile != "" {
		if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return runErr
	}
	fmt.Fprintln(stdout, renderReport(report))
	return nil
}
