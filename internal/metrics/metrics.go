package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels for upstream fetches.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeDegraded = "degraded"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	degradedQuotes   *prometheus.CounterVec
	historyFallbacks prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketdata_upstream_requests_total",
				Help: "Total upstream fetches by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketdata_upstream_request_duration_seconds",
				Help:    "Upstream fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		degradedQuotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketdata_degraded_quotes_total",
				Help: "Quotes collapsed to the zero sentinel, by asset type",
			},
			[]string{"type"},
		),

		historyFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "marketdata_history_fund_fallbacks_total",
				Help: "History requests served by the OTC fund net-value tier",
			},
		),
	}

	reg.MustRegister(r.upstreamRequests)
	reg.MustRegister(r.upstreamDuration)
	reg.MustRegister(r.degradedQuotes)
	reg.MustRegister(r.historyFallbacks)

	return r
}

// ObserveFetch records one upstream fetch.
func (r *Registry) ObserveFetch(provider, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.upstreamRequests.WithLabelValues(provider, outcome).Inc()
	r.upstreamDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// DegradedQuote records a quote collapsed to the zero sentinel.
func (r *Registry) DegradedQuote(assetType string) {
	if r == nil {
		return
	}
	r.degradedQuotes.WithLabelValues(assetType).Inc()
}

// FundFallback records a history request answered by the net-value tier.
func (r *Registry) FundFallback() {
	if r == nil {
		return
	}
	r.historyFallbacks.Inc()
}
