// Package metrics exposes Prometheus collectors for the retrieval ladder.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LadderPagesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ladder_pages_served_total",
			Help: "Total competitor pages returned by the retrieval ladder",
		},
	)

	LadderTierAdvances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ladder_tier_advances_total",
			Help: "Total tier advancements, labeled by the tier advanced into",
		},
		[]string{"tier"},
	)

	LadderRangeWidens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ladder_range_widens_total",
			Help: "Total within-tier fetch-range widenings after full exclusion",
		},
	)

	LadderSafetyCapHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ladder_safety_cap_hits_total",
			Help: "Times the ladder hit its iteration ceiling and bailed out",
		},
	)
)
