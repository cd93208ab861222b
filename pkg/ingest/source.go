package ingest

import (
	"context"

	"github.com/dd0wney/cluso-coretweet/pkg/edges"
)

// Source yields the interaction log of a run
type Source interface {
	Interactions(ctx context.Context) ([]edges.InteractionRecord, error)
}

// CSVSource reads interactions from a memory-mapped CSV file
type CSVSource struct {
	Path    string
	Columns InteractionColumns
	// Stats is filled by Interactions
	Stats ReadStats
}

// Interactions reads the whole file. The context is checked once before
// reading starts.
func (s *CSVSource) Interactions(ctx context.Context) ([]edges.InteractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, stats, err := ReadInteractionsFile(s.Path, s.Columns)
	s.Stats = stats
	return records, err
}

// StaticSource serves records already in memory
type StaticSource []edges.InteractionRecord

func (s StaticSource) Interactions(ctx context.Context) ([]edges.InteractionRecord, error) {
	return s, ctx.Err()
}
