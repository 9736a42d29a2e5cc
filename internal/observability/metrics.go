package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequests counts backend calls by resource, method and outcome.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "termfolio_gateway_requests_total",
		Help: "Total number of backend API calls",
	}, []string{"resource", "method", "outcome"})

	// GatewayLatency records backend call latency by resource and method.
	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "termfolio_gateway_latency_seconds",
		Help:    "Backend API call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})

	// GatewayCacheHits counts GET responses served from the read cache.
	GatewayCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "termfolio_gateway_cache_hits_total",
		Help: "Total number of backend reads served from cache",
	}, []string{"resource"})

	// BootstrapOutcomes counts startup fetch results per collection.
	BootstrapOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "termfolio_bootstrap_outcomes_total",
		Help: "Startup fetch outcomes per collection",
	}, []string{"collection", "outcome"})

	// TerminalCommands counts interpreted terminal commands.
	TerminalCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "termfolio_terminal_commands_total",
		Help: "Total number of terminal commands by name",
	}, []string{"command"})
)

// TrackGateway returns a function that records a call's outcome and latency
// when called (e.g. defer).
func TrackGateway(resource, method string) func(err error) {
	start := time.Now()
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		GatewayRequests.WithLabelValues(resource, method, outcome).Inc()
		GatewayLatency.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	}
}
