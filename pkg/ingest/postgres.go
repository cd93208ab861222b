package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-coretweet/pkg/edges"
)

// PGSource reads retweet rows from a PostgreSQL table
type PGSource struct {
	pool    *pgxpool.Pool
	table   string
	columns InteractionColumns
}

// NewPGSource connects to databaseURL and checks the connection
func NewPGSource(ctx context.Context, databaseURL, table string, cols InteractionColumns) (*PGSource, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 4
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PGSource{pool: pool, table: table, columns: cols}, nil
}

// Interactions returns every row whose reference type is retweeted
func (s *PGSource) Interactions(ctx context.Context) ([]edges.InteractionRecord, error) {
	rows, err := s.pool.Query(ctx, interactionQuery(s.table, s.columns), edges.ReferenceRetweeted)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []edges.InteractionRecord
	for rows.Next() {
		var rec edges.InteractionRecord
		if err := rows.Scan(&rec.ActorID, &rec.ReferencedAuthorID, &rec.ReferenceType,
			&rec.ScreenName, &rec.Text, &rec.CreatedAt, &rec.RetweetCount); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}
	return out, nil
}

func (s *PGSource) Close() error {
	s.pool.Close()
	return nil
}

// interactionQuery selects the interaction columns as text. Optional
// columns left unnamed are selected as empty values. table may be
// schema-qualified with a dot.
func interactionQuery(table string, cols InteractionColumns) string {
	text := func(col string) string {
		if col == "" {
			return "''"
		}
		return fmt.Sprintf("COALESCE(%s::text, '')", pgx.Identifier{col}.Sanitize())
	}
	count := "0::bigint"
	if cols.RetweetCount != "" {
		count = fmt.Sprintf("COALESCE(%s::bigint, 0)", pgx.Identifier{cols.RetweetCount}.Sanitize())
	}

	selected := []string{
		text(cols.Actor),
		text(cols.Author),
		text(cols.ReferenceType),
		text(cols.ScreenName),
		text(cols.Text),
		text(cols.CreatedAt),
		count,
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(selected, ", "),
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		pgx.Identifier{cols.ReferenceType}.Sanitize())
}
