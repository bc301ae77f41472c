// Package metrics exposes Prometheus counters for the ad pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Ad request outcomes.
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeServed   = "served"
	OutcomeNoAds    = "no_ads"
	OutcomeSkipped  = "skipped"
)

var (
	adRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatads_ad_requests_total",
			Help: "Ad selection requests by outcome",
		},
		[]string{"outcome"},
	)
	impressions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatads_impressions_total",
			Help: "Ads surfaced to users by advertiser",
		},
		[]string{"advertiser"},
	)
	clicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatads_clicks_total",
			Help: "Ad clicks by advertiser",
		},
		[]string{"advertiser"},
	)
	adSourceErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatads_ad_source_errors_total",
			Help: "Failed requests to the ad network",
		},
	)
	chatTurns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatads_chat_turns_total",
			Help: "Chat turns handled",
		},
	)
)

var registerOnce sync.Once

// Init registers all collectors. Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(adRequests, impressions, clicks, adSourceErrors, chatTurns)
	})
}

// RecordAdRequest counts an ad selection request by outcome.
func RecordAdRequest(outcome string) {
	adRequests.WithLabelValues(outcome).Inc()
}

// RecordImpression counts an ad surfaced to a user.
func RecordImpression(advertiser string) {
	impressions.WithLabelValues(advertiser).Inc()
}

// RecordClick counts an ad click.
func RecordClick(advertiser string) {
	clicks.WithLabelValues(advertiser).Inc()
}

// RecordAdSourceError counts a failed ad network request.
func RecordAdSourceError() {
	adSourceErrors.Inc()
}

// RecordChatTurn counts a handled chat turn.
func RecordChatTurn() {
	chatTurns.Inc()
}
