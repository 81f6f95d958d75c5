// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests by outcome",
		},
		[]string{"outcome"}, // success|warning|error
	)

	PredictionRating = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_rating_total",
			Help: "Predicted star ratings served",
		},
		[]string{"rating"},
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "prediction_duration_seconds",
			Help: "Duration of the prediction pipeline in seconds",
		},
	)

	NarrativeCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_calls_total",
			Help: "Narrative generation calls by kind and source",
		},
		[]string{"kind", "source"}, // source: genai|fallback
	)

	GenAIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "genai_request_duration_seconds",
			Help: "Duration of text-generation round trips in seconds",
		},
		[]string{"provider"},
	)

	SessionStoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_store_errors_total",
			Help: "Session store read/write failures",
		},
	)
)
