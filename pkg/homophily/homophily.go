// Package homophily measures how strongly edges stay within vertex
// categories, using nominal assortativity and the E-I index.
package homophily

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

var ErrNoAttribute = errors.New("attribute name is empty")

// Reasons reported when a statistic is undefined
const (
	ReasonNoEdges        = "no edges"
	ReasonNoEdgeWeight   = "total edge weight is zero"
	ReasonSingleCategory = "all edge ends fall in one category"
)

// Options configures Analyze
type Options struct {
	// Attribute is the categorical vertex attribute to test
	Attribute string
	// UnknownLabel marks vertices without a usable value. Missing and empty
	// values also count as unknown. Empty means graph.UnknownCategory.
	UnknownLabel string
	// ExcludeUnknown restricts the analysis to the subgraph induced by
	// vertices with a known value
	ExcludeUnknown bool
}

// CategoryStats is the per-category breakdown
type CategoryStats struct {
	Category       string  `json:"category"`
	Vertices       int     `json:"vertices"`
	InternalWeight float64 `json:"internal_weight"`
	// EdgeEndShare is a_c, the weighted fraction of edge ends in this category
	EdgeEndShare float64 `json:"edge_end_share"`
}

// Report is the outcome of one homophily analysis. Undefined statistics are
// nil and the matching reason field says why.
type Report struct {
	Attribute           string          `json:"attribute"`
	Assortativity       *float64        `json:"assortativity"`
	AssortativityReason string          `json:"assortativity_reason,omitempty"`
	EIIndex             *float64        `json:"ei_index"`
	EIIndexReason       string          `json:"ei_index_reason,omitempty"`
	InternalWeight      float64         `json:"internal_weight"`
	ExternalWeight      float64         `json:"external_weight"`
	KnownFraction       float64         `json:"known_fraction"`
	ExcludedUnknown     bool            `json:"excluded_unknown"`
	Vertices            int             `json:"vertices"`
	Edges               int             `json:"edges"`
	Categories          []CategoryStats `json:"categories"`
	// Mixing holds the weighted fraction of edges between each pair of
	// categories, symmetric, with each undirected edge split across both cells
	Mixing map[string]map[string]float64 `json:"mixing,omitempty"`
}

// Analyze computes homophily statistics of opts.Attribute over g.
//
// Nominal assortativity is r = (Σ e_cc − Σ a_c²) / (1 − Σ a_c²), where e_cc
// is the weighted fraction of edges inside category c and a_c the weighted
// fraction of edge ends in c. The E-I index is (E − I) / (E + I) over edge
// weight, an edge being internal when both ends share a category.
func Analyze(g *graph.Graph, opts Options) (*Report, error) {
	if opts.Attribute == "" {
		return nil, ErrNoAttribute
	}
	unknown := opts.UnknownLabel
	if unknown == "" {
		unknown = graph.UnknownCategory
	}

	category := func(h *graph.Graph, idx int) string {
		v := h.Category(idx, opts.Attribute)
		if v == graph.UnknownCategory || v == unknown {
			return unknown
		}
		return v
	}

	report := &Report{Attribute: opts.Attribute, ExcludedUnknown: opts.ExcludeUnknown}
	known := 0
	for idx := range g.Order() {
		if category(g, idx) != unknown {
			known++
		}
	}
	if g.Order() > 0 {
		report.KnownFraction = float64(known) / float64(g.Order())
	}

	target := g
	if opts.ExcludeUnknown {
		target = g.Subgraph(func(id string, attrs graph.Attributes) bool {
			v := attrs[opts.Attribute]
			return v != "" && v != graph.UnknownCategory && v != unknown
		})
	}
	report.Vertices = target.Order()
	report.Edges = target.Size()

	labels := make([]string, target.Order())
	byCategory := make(map[string]*CategoryStats)
	for idx := range labels {
		labels[idx] = category(target, idx)
		stats, ok := byCategory[labels[idx]]
		if !ok {
			stats = &CategoryStats{Category: labels[idx]}
			byCategory[labels[idx]] = stats
		}
		stats.Vertices++
	}

	mixing := make(map[string]map[string]float64)
	addMixing := func(a, b string, w float64) {
		if mixing[a] == nil {
			mixing[a] = make(map[string]float64)
		}
		mixing[a][b] += w
	}
	for _, e := range target.Edges() {
		cu, cv := labels[e.U], labels[e.V]
		if cu == cv {
			report.InternalWeight += e.Weight
			byCategory[cu].InternalWeight += e.Weight
		} else {
			report.ExternalWeight += e.Weight
		}
		addMixing(cu, cv, e.Weight/2)
		addMixing(cv, cu, e.Weight/2)
		byCategory[cu].EdgeEndShare += e.Weight
		byCategory[cv].EdgeEndShare += e.Weight
	}

	total := report.InternalWeight + report.ExternalWeight
	for _, name := range slices.Sorted(maps.Keys(byCategory)) {
		stats := byCategory[name]
		if total > 0 {
			stats.EdgeEndShare /= 2 * total
		}
		report.Categories = append(report.Categories, *stats)
	}

	switch {
	case report.Edges == 0:
		report.AssortativityReason = ReasonNoEdges
		report.EIIndexReason = ReasonNoEdges
		return report, nil
	case total == 0:
		report.AssortativityReason = ReasonNoEdgeWeight
		report.EIIndexReason = ReasonNoEdgeWeight
		return report, nil
	}

	for _, row := range mixing {
		for b := range row {
			row[b] /= total
		}
	}
	report.Mixing = mixing

	ei := (report.ExternalWeight - report.InternalWeight) / total
	report.EIIndex = &ei

	trace, sumSquares := 0.0, 0.0
	for _, stats := range report.Categories {
		trace += stats.InternalWeight / total
		sumSquares += stats.EdgeEndShare * stats.EdgeEndShare
	}
	if denom := 1 - sumSquares; denom > 1e-15 {
		r := (trace - sumSquares) / denom
		report.Assortativity = &r
	} else {
		report.AssortativityReason = ReasonSingleCategory
	}
	return report, nil
}

// String renders the headline figures
func (r *Report) String() string {
	return fmt.Sprintf("%s: r=%s E-I=%s internal=%g external=%g known=%.1f%%",
		r.Attribute, formatOptional(r.Assortativity), formatOptional(r.EIIndex),
		r.InternalWeight, r.ExternalWeight, 100*r.KnownFraction)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", *v)
}
