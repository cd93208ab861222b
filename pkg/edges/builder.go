package edges

import (
	"fmt"
	"slices"
	"strings"
)

type pairKey struct {
	a, b int32
}

// Build derives the co-retweet edge list from records.
//
// Authors are ranked by distinct retweeter count (descending, ties by id
// ascending) and only the top opts.TopK are retained. Each retweeter then
// contributes one unit of weight to every unordered pair of retained authors
// it retweeted. The result does not depend on record order; edges are sorted
// by (Source, Target).
func Build(records []InteractionRecord, opts BuildOptions) (*BuildResult, error) {
	if opts.TopK <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, opts.TopK)
	}
	if opts.MaxAuthorsPerRetweeter < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCap, opts.MaxAuthorsPerRetweeter)
	}

	stats := BuildStats{Records: len(records)}

	// author -> distinct retweeters
	retweetersOf := make(map[string]map[string]struct{})
	for _, rec := range records {
		if !rec.IsRetweet() {
			continue
		}
		stats.Retweets++
		set, ok := retweetersOf[rec.ReferencedAuthorID]
		if !ok {
			set = make(map[string]struct{})
			retweetersOf[rec.ReferencedAuthorID] = set
		}
		set[rec.ActorID] = struct{}{}
	}
	stats.DistinctAuthors = len(retweetersOf)

	authors := rankAuthors(retweetersOf, opts.TopK)
	stats.RetainedAuthors = len(authors)

	// retweeter -> retained author ranks. Ranks double as compact ids and
	// give the truncation order under MaxAuthorsPerRetweeter.
	index := make(map[string][]int32)
	for rank, author := range authors {
		for retweeter := range retweetersOf[author.ID] {
			index[retweeter] = append(index[retweeter], int32(rank))
		}
	}
	stats.Retweeters = len(index)

	counts := make(map[pairKey]int)
	for _, ranks := range index {
		slices.Sort(ranks)
		if opts.MaxAuthorsPerRetweeter > 0 && len(ranks) > opts.MaxAuthorsPerRetweeter {
			ranks = ranks[:opts.MaxAuthorsPerRetweeter]
			stats.TruncatedRetweeters++
		}
		for i := 0; i < len(ranks); i++ {
			for j := i + 1; j < len(ranks); j++ {
				counts[pairKey{ranks[i], ranks[j]}]++
				stats.PairIncrements++
			}
		}
	}

	edges := make([]WeightedEdge, 0, len(counts))
	for key, weight := range counts {
		edges = append(edges, NewEdge(authors[key.a].ID, authors[key.b].ID, weight))
	}
	SortEdges(edges)

	return &BuildResult{Edges: edges, Authors: authors, Stats: stats}, nil
}

// rankAuthors orders authors by retweeter count and keeps the first k
func rankAuthors(retweetersOf map[string]map[string]struct{}, k int) []RankedAuthor {
	authors := make([]RankedAuthor, 0, len(retweetersOf))
	for id, set := range retweetersOf {
		authors = append(authors, RankedAuthor{ID: id, Retweeters: len(set)})
	}
	slices.SortFunc(authors, func(x, y RankedAuthor) int {
		if x.Retweeters != y.Retweeters {
			return y.Retweeters - x.Retweeters
		}
		return strings.Compare(x.ID, y.ID)
	})
	if len(authors) > k {
		authors = authors[:k]
	}
	for i := range authors {
		authors[i].Rank = i + 1
	}
	return authors
}

// SortEdges orders edges by (Source, Target)
func SortEdges(edges []WeightedEdge) {
	slices.SortFunc(edges, func(x, y WeightedEdge) int {
		if c := strings.Compare(x.Source, y.Source); c != 0 {
			return c
		}
		return strings.Compare(x.Target, y.Target)
	})
}
