package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's prometheus collectors.
type Metrics struct {
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	ProviderRequestsTotal *prometheus.CounterVec
	ProviderFailuresTotal *prometheus.CounterVec

	RatesStoredTotal  prometheus.Counter
	RatesSkippedTotal prometheus.Counter
}

// NewMetrics registers the collectors with reg. Tests pass their own registry
// to avoid duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_cache_hits_total",
			Help: "Total number of rate lookups served from the local store",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_cache_misses_total",
			Help: "Total number of rate lookups that fell through to providers",
		}),
		ProviderRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of fetch attempts per provider",
		}, []string{"provider"}),
		ProviderFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_failures_total",
			Help: "Total number of failed or empty fetch attempts per provider",
		}, []string{"provider"}),
		RatesStoredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rates_stored_total",
			Help: "Total number of rate rows upserted by the write-back store",
		}),
		RatesSkippedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rates_skipped_total",
			Help: "Total number of provider rate entries skipped as unknown currencies",
		}),
	}
}
