package fitness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // metrics are registered once with the default registry.
var (
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "macrofit_recommendations_total",
			Help: "Recommendation calls by kind and whether only fallbacks were returned.",
		},
		[]string{"kind", "fallback_only"},
	)

	recommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "macrofit_recommendation_duration_seconds",
			Help:    "Time spent loading the snapshot and running the engine.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"kind"},
	)

	customItemsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "macrofit_custom_items_skipped_total",
			Help: "Custom workouts left out of recommendations because they could not be decoded.",
		},
	)

	instructionWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "macrofit_instruction_writes_total",
			Help: "Custom workout instructions written, by writer and outcome.",
		},
		[]string{"writer", "outcome"},
	)
)
