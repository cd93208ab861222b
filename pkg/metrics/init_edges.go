package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEdgeMetrics() {
	r.InteractionRecordsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "coretweet_interaction_records_total",
			Help: "Total number of interaction records read",
		},
	)

	r.RetweetRecordsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "coretweet_retweet_records_total",
			Help: "Total number of interaction records that are retweets",
		},
	)

	r.RetainedAuthors = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_retained_authors",
			Help: "Number of authors kept by the top-K bound",
		},
	)

	r.PairIncrementsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "coretweet_pair_increments_total",
			Help: "Total number of author pair increments made during edge derivation",
		},
	)

	r.TruncatedRetweeters = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coretweet_truncated_retweeters",
			Help: "Number of retweeters whose author set was capped",
		},
	)
}
