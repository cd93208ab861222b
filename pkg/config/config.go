// Package config loads and validates the YAML run configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
	"github.com/dd0wney/cluso-coretweet/pkg/ingest"
	"github.com/dd0wney/cluso-coretweet/pkg/validation"
)

// Source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatZap  = "zap"
)

// Config is the full run configuration
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Edges      EdgesConfig      `yaml:"edges"`
	Community  CommunityConfig  `yaml:"community"`
	Centrality CentralityConfig `yaml:"centrality"`
	Homophily  HomophilyConfig  `yaml:"homophily"`
	Regions    RegionsConfig    `yaml:"regions"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// InputConfig locates the run inputs. Either an interaction log (CSV or
// PostgreSQL) or a precomputed edge list must be given.
type InputConfig struct {
	Source       string         `yaml:"source" validate:"oneof=csv postgres"`
	Interactions string         `yaml:"interactions"`
	EdgeList     string         `yaml:"edge_list"`
	Vertices     string         `yaml:"vertices"`
	Postgres     PostgresConfig `yaml:"postgres"`
	Columns      ColumnsConfig  `yaml:"columns"`
}

// PostgresConfig configures the PostgreSQL interaction source
type PostgresConfig struct {
	URL   string `yaml:"url"`
	Table string `yaml:"table"`
}

// ColumnsConfig names the input columns
type ColumnsConfig struct {
	Interactions ingest.InteractionColumns `yaml:"interactions"`
	Vertices     ingest.VertexColumns      `yaml:"vertices"`
	Edges        ingest.EdgeColumns        `yaml:"edges"`
}

// EdgesConfig bounds edge derivation
type EdgesConfig struct {
	TopK                   int `yaml:"top_k" validate:"min=1"`
	MaxAuthorsPerRetweeter int `yaml:"max_authors_per_retweeter" validate:"min=0"`
}

// CommunityConfig selects the community detection method
type CommunityConfig struct {
	Method        string  `yaml:"method" validate:"oneof=louvain label_propagation"`
	Resolution    float64 `yaml:"resolution" validate:"gt=0"`
	MaxLevels     int     `yaml:"max_levels" validate:"min=0"`
	MaxPasses     int     `yaml:"max_passes" validate:"min=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"min=0"`
	Cliques       bool    `yaml:"cliques"`
	MaxCliques    int     `yaml:"max_cliques" validate:"min=0"`
}

// CentralityConfig selects and tunes the centrality measures
type CentralityConfig struct {
	Metrics                  []string `yaml:"metrics" validate:"dive,oneof=strength degree pagerank betweenness closeness eigenvector"`
	Damping                  float64  `yaml:"damping" validate:"gte=0,lt=1"`
	MaxIterations            int      `yaml:"max_iterations" validate:"min=1"`
	Tolerance                float64  `yaml:"tolerance" validate:"gt=0"`
	EigenvectorMaxIterations int      `yaml:"eigenvector_max_iterations" validate:"min=1"`
	EigenvectorTolerance     float64  `yaml:"eigenvector_tolerance" validate:"gt=0"`
	Distance                 string   `yaml:"distance" validate:"oneof=inverse_weight hops"`
	Workers                  int      `yaml:"workers" validate:"min=0"`
	TopN                     int      `yaml:"top_n" validate:"min=0"`
}

// HomophilyConfig lists the attributes to test
type HomophilyConfig struct {
	Attributes     []string `yaml:"attributes" validate:"dive,required"`
	ExcludeUnknown bool     `yaml:"exclude_unknown"`
	UnknownLabel   string   `yaml:"unknown_label"`
}

// RegionsConfig controls location to continent mapping
type RegionsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Table is a YAML lookup table; empty uses the built-in table
	Table string `yaml:"table"`
}

// OutputConfig places the exported tables
type OutputConfig struct {
	Dir      string   `yaml:"dir"`
	Compress bool     `yaml:"compress"`
	S3       S3Config `yaml:"s3"`
}

// S3Config enables upload to an S3 compatible store when Bucket is set
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// LoggingConfig selects the logger
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json zap"`
}

// MetricsConfig controls the metrics textfile dump
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Source: SourceCSV,
			Columns: ColumnsConfig{
				Interactions: ingest.DefaultInteractionColumns(),
				Vertices:     ingest.DefaultVertexColumns(),
				Edges:        ingest.DefaultEdgeColumns(),
			},
			Postgres: PostgresConfig{Table: "tweets"},
		},
		Edges: EdgesConfig{TopK: 1500},
		Community: CommunityConfig{
			Method:     algorithms.MethodLouvain,
			Resolution: 1.0,
			MaxPasses:  100,
			MaxCliques: 10000,
		},
		Centrality: CentralityConfig{
			Damping:                  0.85,
			MaxIterations:            100,
			Tolerance:                1e-8,
			EigenvectorMaxIterations: 1000,
			EigenvectorTolerance:     1e-6,
			Distance:                 algorithms.DistanceInverseWeight.String(),
			TopN:                     10,
		},
		Homophily: HomophilyConfig{
			Attributes:     []string{graph.AttrContinent, graph.AttrCommunity},
			ExcludeUnknown: true,
			UnknownLabel:   graph.UnknownCategory,
		},
		Regions: RegionsConfig{Enabled: true},
		Output:  OutputConfig{Dir: "out"},
		Logging: LoggingConfig{Level: "info", Format: LogFormatJSON},
	}
}

// Load reads the YAML file at path over the defaults and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	rules := validation.NewRules("")
	rules.Section("input", func(r *validation.Rules) {
		// an edge list replaces the interaction log
		r.When(c.Input.EdgeList == "", func(r *validation.Rules) {
			r.When(c.Input.Source == SourceCSV, func(r *validation.Rules) {
				r.Required("interactions", c.Input.Interactions)
			})
			r.When(c.Input.Source == SourcePostgres, func(r *validation.Rules) {
				r.Section("postgres", func(r *validation.Rules) {
					r.Required("url", c.Input.Postgres.URL)
					r.Required("table", c.Input.Postgres.Table)
				})
			})
		})
	})
	rules.Section("centrality", func(r *validation.Rules) {
		r.Unique("metrics", c.Centrality.Metrics)
	})
	rules.Section("homophily", func(r *validation.Rules) {
		r.Unique("attributes", c.Homophily.Attributes)
	})
	rules.Section("output.s3", func(r *validation.Rules) {
		r.When(c.Output.S3.Bucket != "", func(r *validation.Rules) {
			r.Together("access_key_id", c.Output.S3.AccessKeyID, "secret_access_key", c.Output.S3.SecretAccessKey)
		})
	})
	return rules.Err()
}
