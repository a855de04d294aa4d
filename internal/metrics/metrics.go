package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// TranslationRequestsTotal counts remote translation calls by provider and result.
	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clir",
			Name:      "translation_requests_total",
			Help:      "Total remote translation requests",
		},
		[]string{"provider", "result"},
	)

	// TranslationCacheTotal counts translation cache lookups by result (hit/miss).
	TranslationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clir",
			Name:      "translation_cache_total",
			Help:      "Translation cache lookups by result",
		},
		[]string{"result"},
	)

	// QueriesTotal counts end-to-end retrieval queries by outcome.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clir",
			Name:      "queries_total",
			Help:      "Cross-language queries by outcome",
		},
		[]string{"outcome"},
	)

	// RetrievalDuration observes time spent ranking a query against the corpus.
	RetrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clir",
			Name:      "retrieval_duration_seconds",
			Help:      "TF-IDF retrieval duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

// RegisterPipelineMetrics registers the translation and retrieval collectors.
// Called once from the composition root, not from init().
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		TranslationRequestsTotal,
		TranslationCacheTotal,
		QueriesTotal,
		RetrievalDuration,
	)
}
