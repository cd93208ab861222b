package edges

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retweet(actor, author string) InteractionRecord {
	return InteractionRecord{ActorID: actor, ReferencedAuthorID: author, ReferenceType: ReferenceRetweeted}
}

func TestBuild_ThreeRetweeterScenario(t *testing.T) {
	records := []InteractionRecord{
		retweet("R1", "A"), retweet("R1", "B"),
		retweet("R2", "A"), retweet("R2", "B"), retweet("R2", "C"),
		retweet("R3", "B"), retweet("R3", "C"),
	}

	result, err := Build(records, BuildOptions{TopK: 100})
	require.NoError(t, err)

	assert.Equal(t, []WeightedEdge{
		{Source: "A", Target: "B", Weight: 2},
		{Source: "A", Target: "C", Weight: 1},
		{Source: "B", Target: "C", Weight: 2},
	}, result.Edges)
	assert.Equal(t, int64(5), result.Stats.PairIncrements)
	assert.Equal(t, result.Stats.PairIncrements, result.TotalWeight())
	assert.Equal(t, 3, result.Stats.Retweeters)
}

func TestBuild_IgnoresNonRetweetsAndDuplicates(t *testing.T) {
	records := []InteractionRecord{
		retweet("R1", "A"), retweet("R1", "A"), retweet("R1", "B"),
		{ActorID: "R2", ReferencedAuthorID: "A", ReferenceType: "quoted"},
		{ActorID: "R2", ReferencedAuthorID: "B", ReferenceType: "replied_to"},
	}

	result, err := Build(records, BuildOptions{TopK: 10})
	require.NoError(t, err)

	assert.Equal(t, []WeightedEdge{{Source: "A", Target: "B", Weight: 1}}, result.Edges)
	assert.Equal(t, 5, result.Stats.Records)
	assert.Equal(t, 3, result.Stats.Retweets)
	assert.Equal(t, 1, result.Stats.Retweeters)
}

func TestBuild_TopKRetainsMostRetweeted(t *testing.T) {
	// A: 3 retweeters, B: 2, C: 2, D: 1. Tie B/C resolved by id.
	records := []InteractionRecord{
		retweet("R1", "A"), retweet("R2", "A"), retweet("R3", "A"),
		retweet("R1", "B"), retweet("R2", "B"),
		retweet("R1", "C"), retweet("R3", "C"),
		retweet("R1", "D"),
	}

	result, err := Build(records, BuildOptions{TopK: 2})
	require.NoError(t, err)

	require.Len(t, result.Authors, 2)
	assert.Equal(t, RankedAuthor{ID: "A", Rank: 1, Retweeters: 3}, result.Authors[0])
	assert.Equal(t, RankedAuthor{ID: "B", Rank: 2, Retweeters: 2}, result.Authors[1])
	assert.Equal(t, []WeightedEdge{{Source: "A", Target: "B", Weight: 2}}, result.Edges)
	assert.Equal(t, 4, result.Stats.DistinctAuthors)
}

func TestBuild_PerRetweeterCap(t *testing.T) {
	records := []InteractionRecord{
		retweet("R1", "A"), retweet("R2", "A"), retweet("R3", "A"),
		retweet("R1", "B"), retweet("R2", "B"),
		retweet("R1", "C"),
	}

	result, err := Build(records, BuildOptions{TopK: 10, MaxAuthorsPerRetweeter: 2})
	require.NoError(t, err)

	// R1 retweeted A, B, C but keeps only the two highest-ranked: A and B.
	assert.Equal(t, []WeightedEdge{{Source: "A", Target: "B", Weight: 2}}, result.Edges)
	assert.Equal(t, 1, result.Stats.TruncatedRetweeters)
}

func TestBuild_InvalidOptions(t *testing.T) {
	_, err := Build(nil, BuildOptions{})
	assert.True(t, errors.Is(err, ErrInvalidTopK))

	_, err = Build(nil, BuildOptions{TopK: 1, MaxAuthorsPerRetweeter: -1})
	assert.True(t, errors.Is(err, ErrInvalidCap))
}

func TestBuild_Empty(t *testing.T) {
	result, err := Build(nil, BuildOptions{TopK: 5})
	require.NoError(t, err)
	assert.Empty(t, result.Edges)
	assert.Empty(t, result.Authors)
}

func TestBuild_OrderIndependent(t *testing.T) {
	records := []InteractionRecord{
		retweet("R1", "A"), retweet("R1", "B"), retweet("R2", "C"),
		retweet("R2", "A"), retweet("R3", "B"), retweet("R3", "C"),
	}
	reversed := make([]InteractionRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	first, err := Build(records, BuildOptions{TopK: 3})
	require.NoError(t, err)
	second, err := Build(reversed, BuildOptions{TopK: 3})
	require.NoError(t, err)

	assert.Equal(t, first.Edges, second.Edges)
}

func TestNewEdge_Canonical(t *testing.T) {
	assert.Equal(t, WeightedEdge{Source: "a", Target: "b", Weight: 3}, NewEdge("b", "a", 3))
}

func TestCollectAuthorDetails(t *testing.T) {
	records := []InteractionRecord{
		{ActorID: "R1", ReferencedAuthorID: "A", ReferenceType: ReferenceRetweeted, ScreenName: "alpha", Text: "first", RetweetCount: 5},
		{ActorID: "R2", ReferencedAuthorID: "A", ReferenceType: ReferenceRetweeted, ScreenName: "alpha", Text: "viral", RetweetCount: 50},
		{ActorID: "R3", ReferencedAuthorID: "A", ReferenceType: ReferenceRetweeted, ScreenName: "alpha", Text: "tie", RetweetCount: 50},
		{ActorID: "R1", ReferencedAuthorID: "B", ReferenceType: "quoted", ScreenName: "beta"},
	}

	details := CollectAuthorDetails(records)

	require.Len(t, details, 1)
	assert.Equal(t, "viral", details["A"].Text)
	assert.Equal(t, int64(50), details["A"].RetweetCount)
}
