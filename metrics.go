package placard

import "github.com/prometheus/client_golang/prometheus"

var (
	placardCardsServedCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placard_cards_served_total",
			Help: "Cards served by outcome",
		},
		[]string{"outcome"},
	)

	placardCardsInflightCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "placard_cards_inflight_count",
			Help: "Count of cards currently being built",
		},
	)

	placardLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placard_member_lookup_duration_seconds",
			Help:    "Duration of member/presence directory lookups",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Card outcomes reported on placard_cards_served_total.
const (
	outcomeOK         = "ok"
	outcomeNotInGuild = "not_in_guild"
	outcomeAPIError   = "api_error"
	outcomeUnexpected = "error"
)
