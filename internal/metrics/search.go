package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gigdex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gigdex",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchStaleDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gigdex",
			Name:      "search_stale_drops_total",
			Help:      "Ranked ids dropped during hydration (deleted or hidden in between)",
		},
	)

	ExecutorCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gigdex",
			Name:      "executor_call_duration_seconds",
			Help:      "Query executor call duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"backend", "call"},
	)

	ExecutorErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gigdex",
			Name:      "executor_errors_total",
			Help:      "Total query executor errors",
		},
		[]string{"backend", "call"},
	)
)

func init() {
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchStaleDropsTotal)
	prometheus.MustRegister(ExecutorCallDuration)
	prometheus.MustRegister(ExecutorErrorsTotal)
}
