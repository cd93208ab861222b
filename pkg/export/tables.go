// Package export renders run results as CSV and JSON tables and writes
// them to local files or object storage.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeRows(w io.Writer, header []string, rows func(emit func([]string) error) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := rows(cw.Write); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteEdges writes the edge list as source,target,weight
func WriteEdges(w io.Writer, edgeList []edges.WeightedEdge) error {
	return writeRows(w, []string{"source", "target", "weight"}, func(emit func([]string) error) error {
		for _, e := range edgeList {
			if err := emit([]string{e.Source, e.Target, strconv.Itoa(e.Weight)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteCommunities writes one row per vertex with its community, the
// location attributes and the author's most retweeted tweet when known.
func WriteCommunities(w io.Writer, g *graph.Graph, partition *algorithms.CommunityDetectionResult, details map[string]edges.AuthorDetail) error {
	header := []string{"Id", "Community", "ScreenName", "Location", "Continent", "Text", "CreatedAt", "RetweetCount"}
	return writeRows(w, header, func(emit func([]string) error) error {
		for idx, id := range g.IDs() {
			community := ""
			if c, ok := partition.CommunityOf(id); ok {
				community = strconv.Itoa(c)
			}
			location, _ := g.AttributeAt(idx, graph.AttrLocation)
			d, hasDetail := details[id]
			count := ""
			if hasDetail {
				count = strconv.FormatInt(d.RetweetCount, 10)
			}
			row := []string{id, community, d.ScreenName, location, g.Category(idx, graph.AttrContinent), d.Text, d.CreatedAt, count}
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteCentrality writes the computed measures, one column per metric in
// algorithms.AllMetrics order. Rows are sorted by PageRank descending when
// PageRank was computed, otherwise by the first computed metric, ties by id.
func WriteCentrality(w io.Writer, result *algorithms.CentralityResult, partition *algorithms.CommunityDetectionResult) error {
	var metrics []algorithms.Metric
	for _, m := range algorithms.AllMetrics {
		if result.Has(m) {
			metrics = append(metrics, m)
		}
	}
	if len(metrics) == 0 {
		return writeRows(w, []string{"id"}, func(func([]string) error) error { return nil })
	}

	sortBy := metrics[0]
	if result.Has(algorithms.MetricPageRank) {
		sortBy = algorithms.MetricPageRank
	}

	header := []string{"id"}
	if partition != nil {
		header = append(header, "community")
	}
	for _, m := range metrics {
		header = append(header, string(m))
	}

	return writeRows(w, header, func(emit func([]string) error) error {
		for _, ranked := range algorithms.RankAll(result.Scores[sortBy]) {
			row := []string{ranked.ID}
			if partition != nil {
				c, _ := partition.CommunityOf(ranked.ID)
				row = append(row, strconv.Itoa(c))
			}
			for _, m := range metrics {
				s, _ := result.Score(m, ranked.ID)
				row = append(row, formatFloat(s))
			}
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteCommunityStats writes one row per community. cliques may be nil.
func WriteCommunityStats(w io.Writer, partition *algorithms.CommunityDetectionResult, cliques []algorithms.CommunityCliques) error {
	header := []string{"community", "size", "internal_weight", "total_strength", "density", "maximal_cliques", "largest_clique"}
	byID := make(map[int]algorithms.CommunityCliques, len(cliques))
	for _, c := range cliques {
		byID[c.CommunityID] = c
	}

	return writeRows(w, header, func(emit func([]string) error) error {
		for _, c := range partition.Communities {
			count, largest := "", ""
			if cc, ok := byID[c.ID]; ok {
				count = strconv.Itoa(cc.Count)
				largest = strconv.Itoa(len(cc.Largest))
			}
			row := []string{
				strconv.Itoa(c.ID), strconv.Itoa(c.Size),
				formatFloat(c.InternalWeight), formatFloat(c.TotalStrength), formatFloat(c.Density),
				count, largest,
			}
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
