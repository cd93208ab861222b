package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/logging"
	"github.com/dd0wney/cluso-coretweet/pkg/validation"
)

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
input:
  interactions: tweets.csv
  vertices: nodes.csv
edges:
  top_k: 200
  max_authors_per_retweeter: 50
community:
  resolution: 1.5
centrality:
  metrics: [pagerank, betweenness]
  distance: hops
  workers: 4
logging:
  format: zap
`))
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Edges.TopK)
	assert.Equal(t, 50, cfg.Edges.BuildOptions().MaxAuthorsPerRetweeter)
	assert.Equal(t, 1.5, cfg.Community.LouvainOptions().Resolution)
	assert.Equal(t, "author_id", cfg.Input.Columns.Interactions.Actor, "defaults survive partial override")

	opts := cfg.Centrality.Options()
	assert.Equal(t, []algorithms.Metric{algorithms.MetricPageRank, algorithms.MetricBetweenness}, opts.Metrics)
	assert.Equal(t, algorithms.DistanceHops, opts.Paths.Distance)
	assert.Equal(t, 4, opts.Paths.Workers)
	assert.Equal(t, 0.85, opts.PageRank.DampingFactor)
	assert.Equal(t, 1e-8, opts.PageRank.Tolerance)
}

func TestParse_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":        "input: {interactions: t.csv}\nbogus: 1\n",
		"zero top_k":         "input: {interactions: t.csv}\nedges: {top_k: 0}\n",
		"bad damping":        "input: {interactions: t.csv}\ncentrality: {damping: 1}\n",
		"bad metric":         "input: {interactions: t.csv}\ncentrality: {metrics: [katz]}\n",
		"bad method":         "input: {interactions: t.csv}\ncommunity: {method: leiden}\n",
		"no interactions":    "edges: {top_k: 10}\n",
		"postgres needs url": "input: {source: postgres}\n",
		"half s3 keys":       "input: {interactions: t.csv}\noutput: {s3: {bucket: b, access_key_id: k}}\n",
		"repeated metric":    "input: {interactions: t.csv}\ncentrality: {metrics: [pagerank, pagerank]}\n",
		"repeated attribute": "input: {interactions: t.csv}\nhomophily: {attributes: [continent, continent]}\n",
	}
	for name, doc := range cases {
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err, name)
	}

	_, err := Parse(strings.NewReader("input: {interactions: t.csv}\ncommunity: {resolution: -1}\n"))
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = Parse(strings.NewReader("input: {source: postgres}\n"))
	var fieldErr *validation.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "input.postgres.url", fieldErr.Field)
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestParse_EdgeListNeedsNoInteractions(t *testing.T) {
	cfg, err := Parse(strings.NewReader("input: {edge_list: edges.csv}\n"))
	require.NoError(t, err)
	assert.Equal(t, "edges.csv", cfg.Input.EdgeList)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coretweet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: {interactions: t.csv}\nhomophily: {attributes: [community]}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	opts := cfg.Homophily.Options()
	require.Len(t, opts, 1)
	assert.Equal(t, "community", opts[0].Attribute)
	assert.True(t, opts[0].ExcludeUnknown)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	logger, err := LoggingConfig{Level: "debug", Format: LogFormatJSON}.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logging.DebugLevel, logger.GetLevel())

	zl, err := LoggingConfig{Level: "warn", Format: LogFormatZap}.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logging.WarnLevel, zl.GetLevel())
}
