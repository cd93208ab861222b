package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

const interactionsCSV = `author_id,retweet_author_id,reference_type,retweeted_screen_name,text,retweet_count
r1,a1,retweeted,alice,"hello, world",10
r2,a1,retweeted,alice,hi,abc
r1,a2,quoted,bob,quote,3
r3
`

func TestReadInteractions(t *testing.T) {
	records, stats, err := ReadInteractions(strings.NewReader(interactionsCSV), DefaultInteractionColumns(), "tweets.csv")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, edges.InteractionRecord{
		ActorID: "r1", ReferencedAuthorID: "a1", ReferenceType: "retweeted",
		ScreenName: "alice", Text: "hello, world", RetweetCount: 10,
	}, records[0])
	assert.Equal(t, int64(0), records[1].RetweetCount)
	assert.Equal(t, ReadStats{Rows: 4, Short: 1, BadCounts: 1}, stats)
}

func TestReadInteractions_MissingColumn(t *testing.T) {
	_, _, err := ReadInteractions(strings.NewReader("author_id,reference_type\nr1,retweeted\n"), DefaultInteractionColumns(), "tweets.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputSchema))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"retweet_author_id"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "tweets.csv")

	_, _, err = ReadInteractions(strings.NewReader(""), DefaultInteractionColumns(), "empty.csv")
	assert.ErrorIs(t, err, ErrInputSchema)
}

func TestReadVertices(t *testing.T) {
	input := "\ufeffId,Location,Community,followers\nu1,\"Paris, France\",3,10\nu2,,,\n"
	vertices, stats, err := ReadVertices(strings.NewReader(input), DefaultVertexColumns(), "nodes.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)

	require.Len(t, vertices, 2)
	assert.Equal(t, "u1", vertices[0].ID)
	assert.Equal(t, graph.Attributes{
		graph.AttrLocation:  "Paris, France",
		graph.AttrCommunity: "3",
		"followers":         "10",
	}, vertices[0].Attributes)
	assert.Empty(t, vertices[1].Attributes)
}

func TestReadEdges(t *testing.T) {
	got, _, err := ReadEdges(strings.NewReader("source,target,weight\nb,a,2\nc,d,3.0\n"), DefaultEdgeColumns(), "edges.csv")
	require.NoError(t, err)
	assert.Equal(t, []edges.WeightedEdge{
		{Source: "a", Target: "b", Weight: 2},
		{Source: "c", Target: "d", Weight: 3},
	}, got)

	_, _, err = ReadEdges(strings.NewReader("source,target,weight\na,b,0\n"), DefaultEdgeColumns(), "edges.csv")
	assert.ErrorIs(t, err, ErrInvalidRow)
	assert.ErrorIs(t, err, graph.ErrNonPositiveWeight)

	var rowErr *RowError
	_, _, err = ReadEdges(strings.NewReader("source,target,weight\na,b,1\na,c,x\n"), DefaultEdgeColumns(), "edges.csv")
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 3, rowErr.Line)
}

func TestCSVSource_MemoryMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.csv")
	require.NoError(t, os.WriteFile(path, []byte(interactionsCSV), 0o644))

	src := &CSVSource{Path: path, Columns: DefaultInteractionColumns()}
	records, err := src.Interactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 4, src.Stats.Rows)

	_, err = (&CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}).Interactions(context.Background())
	assert.Error(t, err)
}

func TestStaticSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := StaticSource{}.Interactions(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInteractionQuery(t *testing.T) {
	cols := DefaultInteractionColumns()
	cols.Text = ""
	q := interactionQuery("raw.tweets", cols)

	assert.Contains(t, q, `FROM "raw"."tweets"`)
	assert.Contains(t, q, `COALESCE("author_id"::text, '')`)
	assert.Contains(t, q, `COALESCE("retweet_count"::bigint, 0)`)
	assert.Contains(t, q, `, '', `)
	assert.True(t, strings.HasSuffix(q, `WHERE "reference_type" = $1`))
}

func TestPGSource_Integration(t *testing.T) {
	url := os.Getenv("CORETWEET_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CORETWEET_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	src, err := NewPGSource(ctx, url, "tweets", DefaultInteractionColumns())
	require.NoError(t, err)
	defer src.Close()

	records, err := src.Interactions(ctx)
	require.NoError(t, err)
	for _, r := range records {
		assert.True(t, r.IsRetweet())
	}
}
