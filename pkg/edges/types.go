// Package edges derives the weighted co-retweet edge list from raw
// interaction records. It has no dependency on the graph model.
package edges

import "errors"

// ReferenceRetweeted is the only reference type that produces co-retweet edges.
const ReferenceRetweeted = "retweeted"

var (
	// ErrInvalidTopK is returned when BuildOptions.TopK is not positive.
	ErrInvalidTopK = errors.New("top-k author bound must be positive")
	// ErrInvalidCap is returned when BuildOptions.MaxAuthorsPerRetweeter is negative.
	ErrInvalidCap = errors.New("per-retweeter author cap must be >= 0")
)

// InteractionRecord is one row of the interaction log. ActorID is the
// retweeter, ReferencedAuthorID the author of the referenced tweet.
// The detail fields are optional and only feed CollectAuthorDetails.
type InteractionRecord struct {
	ActorID            string
	ReferencedAuthorID string
	ReferenceType      string

	ScreenName   string
	Text         string
	CreatedAt    string
	RetweetCount int64
}

// IsRetweet reports whether the record participates in edge derivation
func (r InteractionRecord) IsRetweet() bool {
	return r.ReferenceType == ReferenceRetweeted
}

// WeightedEdge is an undirected co-retweet edge with Source < Target.
// Weight counts the distinct retweeters who retweeted both authors.
type WeightedEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// NewEdge returns the canonical edge for the unordered pair {a, b}
func NewEdge(a, b string, weight int) WeightedEdge {
	if b < a {
		a, b = b, a
	}
	return WeightedEdge{Source: a, Target: b, Weight: weight}
}

// BuildOptions bounds the combinatorial work of Build.
type BuildOptions struct {
	// TopK keeps only the K authors with the most distinct retweeters. Required.
	TopK int
	// MaxAuthorsPerRetweeter caps the retained authors considered per
	// retweeter; a retweeter above the cap keeps its highest-ranked authors.
	// Zero disables the cap and accepts quadratic cost per active retweeter.
	MaxAuthorsPerRetweeter int
}

// RankedAuthor is a retained author with its distinct retweeter count
type RankedAuthor struct {
	ID         string `json:"id"`
	Rank       int    `json:"rank"`
	Retweeters int    `json:"retweeters"`
}

// BuildStats describes one Build run
type BuildStats struct {
	Records             int `json:"records"`
	Retweets            int `json:"retweets"`
	DistinctAuthors     int `json:"distinct_authors"`
	RetainedAuthors     int `json:"retained_authors"`
	Retweeters          int `json:"retweeters"`
	TruncatedRetweeters int `json:"truncated_retweeters"`
	// PairIncrements is the number of (retweeter, author pair) co-occurrences
	// counted; it equals the sum of all edge weights.
	PairIncrements int64 `json:"pair_increments"`
}

// BuildResult is the output of Build
type BuildResult struct {
	Edges   []WeightedEdge
	Authors []RankedAuthor
	Stats   BuildStats
}

// TotalWeight returns the sum of edge weights
func (r *BuildResult) TotalWeight() int64 {
	var total int64
	for _, e := range r.Edges {
		total += int64(e.Weight)
	}
	return total
}
