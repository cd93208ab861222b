// Package ingest reads the tabular inputs of a run: the interaction log,
// vertex attribute tables and precomputed edge lists.
package ingest

import "github.com/dd0wney/cluso-coretweet/pkg/graph"

// InteractionColumns names the interaction log columns. Actor, Author and
// ReferenceType are required; the rest are read when present.
type InteractionColumns struct {
	Actor         string `yaml:"actor" validate:"required"`
	Author        string `yaml:"author" validate:"required"`
	ReferenceType string `yaml:"reference_type" validate:"required"`
	ScreenName    string `yaml:"screen_name"`
	Text          string `yaml:"text"`
	CreatedAt     string `yaml:"created_at"`
	RetweetCount  string `yaml:"retweet_count"`
}

// DefaultInteractionColumns matches the tweet export layout
func DefaultInteractionColumns() InteractionColumns {
	return InteractionColumns{
		Actor:         "author_id",
		Author:        "retweet_author_id",
		ReferenceType: "reference_type",
		ScreenName:    "retweeted_screen_name",
		Text:          "text",
		CreatedAt:     "created_at",
		RetweetCount:  "retweet_count",
	}
}

func (c InteractionColumns) required() []string {
	return []string{c.Actor, c.Author, c.ReferenceType}
}

// VertexColumns describes a vertex attribute table. Every column other
// than ID becomes an attribute; Rename maps column names to attribute keys.
type VertexColumns struct {
	ID     string            `yaml:"id" validate:"required"`
	Rename map[string]string `yaml:"rename"`
}

// DefaultVertexColumns matches the node tables written by earlier runs
func DefaultVertexColumns() VertexColumns {
	return VertexColumns{
		ID: "Id",
		Rename: map[string]string{
			"Location":  graph.AttrLocation,
			"Community": graph.AttrCommunity,
			"Continent": graph.AttrContinent,
		},
	}
}

func (c VertexColumns) attributeKey(column string) string {
	if key, ok := c.Rename[column]; ok {
		return key
	}
	return column
}

// EdgeColumns names the columns of an edge list
type EdgeColumns struct {
	Source string `yaml:"source" validate:"required"`
	Target string `yaml:"target" validate:"required"`
	Weight string `yaml:"weight" validate:"required"`
}

// DefaultEdgeColumns matches the edge list export
func DefaultEdgeColumns() EdgeColumns {
	return EdgeColumns{Source: "source", Target: "target", Weight: "weight"}
}

func (c EdgeColumns) required() []string {
	return []string{c.Source, c.Target, c.Weight}
}
