package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.Communities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_communities",
			Help: "Number of detected communities",
		},
	)

	r.Modularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_modularity",
			Help: "Modularity of the detected partition",
		},
	)

	r.AlgorithmIterations = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coretweet_algorithm_iterations",
			Help: "Iterations used by the last run of an iterative algorithm",
		},
		[]string{"algorithm"}, // pagerank, eigenvector, louvain
	)

	r.NonConvergenceTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coretweet_nonconvergence_total",
			Help: "Total number of iterative runs that hit their iteration cap",
		},
		[]string{"algorithm"},
	)

	r.HomophilyStatistic = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coretweet_homophily",
			Help: "Homophily statistics per attribute; undefined values are not exported",
		},
		[]string{"attribute", "statistic"}, // assortativity, ei_index
	)

	r.HomophilyKnownFraction = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coretweet_homophily_known_fraction",
			Help: "Fraction of vertices with a known attribute value",
		},
		[]string{"attribute"},
	)
}
