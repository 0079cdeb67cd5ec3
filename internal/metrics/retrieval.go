package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics. kind is "statutes" or "cases".
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawdex",
			Name:      "search_requests_total",
			Help:      "Total number of retrieval queries",
		},
		[]string{"kind", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawdex",
			Name:      "search_duration_seconds",
			Help:      "Retrieval query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawdex",
			Name:      "search_results",
			Help:      "Number of hits returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"kind"},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	retrievalMetricsRegistered = true
}
