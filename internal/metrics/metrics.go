// Package metrics holds the Prometheus collectors for matching and verification.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CandidatesScored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lostfound_candidates_scored_total",
			Help: "Total lost/found pairs passed through the similarity scorer",
		},
	)

	MatchesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lostfound_matches_created_total",
			Help: "Total matches created",
		},
		[]string{"source"},
	)

	SimilarityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lostfound_similarity_score",
			Help:    "Similarity scores of scored candidate pairs",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	VerificationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lostfound_verification_outcomes_total",
			Help: "Total answer submissions by resulting match status",
		},
		[]string{"result"},
	)

	StrategyFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lostfound_strategy_fallbacks_total",
			Help: "Total times the generative strategy failed and the template strategy was used",
		},
		[]string{"operation"},
	)

	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lostfound_notification_failures_total",
			Help: "Total notification deliveries that failed",
		},
		[]string{"sink"},
	)
)

var initOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(CandidatesScored)
		prometheus.MustRegister(MatchesCreated)
		prometheus.MustRegister(SimilarityScore)
		prometheus.MustRegister(VerificationOutcomes)
		prometheus.MustRegister(StrategyFallbacks)
		prometheus.MustRegister(NotificationFailures)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
