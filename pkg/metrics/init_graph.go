package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_graph_vertices",
			Help: "Number of vertices in the co-retweet graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_graph_edges",
			Help: "Number of edges in the co-retweet graph",
		},
	)

	r.GraphTotalWeight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_graph_total_weight",
			Help: "Sum of edge weights in the co-retweet graph",
		},
	)

	r.GraphComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_graph_components",
			Help: "Number of connected components",
		},
	)

	r.DuplicateVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_duplicate_vertices",
			Help: "Number of duplicate vertex ids dropped from the attribute table",
		},
	)

	r.UnresolvedVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_unresolved_vertices",
			Help: "Number of edge endpoints missing from the attribute table",
		},
	)

	r.UnresolvedLocations = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_unresolved_locations",
			Help: "Number of vertices whose location mapped to no region",
		},
	)
}
