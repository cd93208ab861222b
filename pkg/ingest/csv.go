package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// ReadStats counts what a reader kept and dropped
type ReadStats struct {
	Rows int
	// Short counts rows with fewer fields than the header
	Short int
	// BadCounts counts unparsable retweet counts, read as 0
	BadCounts int
}

// table wraps a csv.Reader positioned after the header
type table struct {
	source string
	r      *csv.Reader
	header []string
	pos    map[string]int
}

func openTable(r io.Reader, source string, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Source: source, Missing: required}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &table{source: source, r: cr, header: header, pos: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if _, dup := t.pos[name]; !dup {
			t.pos[name] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := t.pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Missing: missing, Header: header}
	}
	return t, nil
}

// next returns the next record, or io.EOF
func (t *table) next() ([]string, error) {
	rec, err := t.r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", t.source, err)
	}
	return rec, err
}

func (t *table) line() int {
	line, _ := t.r.FieldPos(0)
	return line
}

// field returns the trimmed value of column, "" when the column is absent
// or the row is short
func (t *table) field(rec []string, column string) string {
	i, ok := t.pos[column]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (t *table) has(rec []string, columns []string) bool {
	for _, c := range columns {
		if t.pos[c] >= len(rec) {
			return false
		}
	}
	return true
}

// ReadInteractions reads an interaction log. Rows of every reference type
// are returned; filtering happens in edge derivation.
func ReadInteractions(r io.Reader, cols InteractionColumns, source string) ([]edges.InteractionRecord, ReadStats, error) {
	var stats ReadStats
	t, err := openTable(r, source, cols.required())
	if err != nil {
		return nil, stats, err
	}

	var records []edges.InteractionRecord
	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Rows++
		if !t.has(rec, cols.required()) {
			stats.Short++
			continue
		}

		ir := edges.InteractionRecord{
			ActorID:            t.field(rec, cols.Actor),
			ReferencedAuthorID: t.field(rec, cols.Author),
			ReferenceType:      t.field(rec, cols.ReferenceType),
			ScreenName:         t.field(rec, cols.ScreenName),
			Text:               t.field(rec, cols.Text),
			CreatedAt:          t.field(rec, cols.CreatedAt),
		}
		if raw := t.field(rec, cols.RetweetCount); raw != "" {
			n, err := parseCount(raw)
			if err != nil {
				stats.BadCounts++
			}
			ir.RetweetCount = n
		}
		records = append(records, ir)
	}
	return records, stats, nil
}

// parseCount accepts integers and integral floats such as "12.0"
func parseCount(raw string) (int64, error) {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return int64(f), nil
}

// ReadVertices reads a vertex attribute table keyed by cols.ID. Empty
// values are left out of the attribute map.
func ReadVertices(r io.Reader, cols VertexColumns, source string) ([]graph.VertexRecord, ReadStats, error) {
	var stats ReadStats
	t, err := openTable(r, source, []string{cols.ID})
	if err != nil {
		return nil, stats, err
	}

	var out []graph.VertexRecord
	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Rows++
		if !t.has(rec, []string{cols.ID}) {
			stats.Short++
			continue
		}

		v := graph.VertexRecord{ID: t.field(rec, cols.ID), Attributes: graph.Attributes{}}
		for _, column := range t.header {
			if column == cols.ID {
				continue
			}
			if value := t.field(rec, column); value != "" {
				v.Attributes[cols.attributeKey(column)] = value
			}
		}
		out = append(out, v)
	}
	return out, stats, nil
}

// ReadEdges reads a weighted edge list. Weights must be positive integers.
func ReadEdges(r io.Reader, cols EdgeColumns, source string) ([]edges.WeightedEdge, ReadStats, error) {
	var stats ReadStats
	t, err := openTable(r, source, cols.required())
	if err != nil {
		return nil, stats, err
	}

	var out []edges.WeightedEdge
	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Rows++
		if !t.has(rec, cols.required()) {
			stats.Short++
			continue
		}

		raw := t.field(rec, cols.Weight)
		w, err := parseCount(raw)
		if err == nil && w <= 0 {
			err = graph.ErrNonPositiveWeight
		}
		if err != nil {
			return nil, stats, &RowError{Source: source, Line: t.line(), Column: cols.Weight, Value: raw, Cause: err}
		}
		out = append(out, edges.NewEdge(t.field(rec, cols.Source), t.field(rec, cols.Target), int(w)))
	}
	return out, stats, nil
}
