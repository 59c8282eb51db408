package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripwise_upstream_retries_total",
			Help: "Number of upstream HTTP attempts that were retried.",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripwise_cache_lookups_total",
			Help: "Result cache lookups by domain and outcome (hit or miss).",
		},
		[]string{"domain", "result"},
	)

	CandidateOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripwise_candidate_outcomes_total",
			Help: "Fallback candidate attempts by domain, candidate and outcome.",
		},
		[]string{"domain", "candidate", "outcome"},
	)

	TokenExchanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripwise_token_exchanges_total",
			Help: "Client-credentials token exchanges by outcome.",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripwise_http_requests_total",
			Help: "Proxy server requests by route pattern and status code.",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripwise_http_request_duration_seconds",
			Help:    "Proxy server request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// ObserveCache records a cache hit or miss for a domain.
func ObserveCache(domain string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(domain, result).Inc()
}

// ObserveCandidate records how a fallback candidate ended: ok, skipped,
// status, transport or decode.
func ObserveCandidate(domain, candidate, outcome string) {
	CandidateOutcomes.WithLabelValues(domain, candidate, outcome).Inc()
}
