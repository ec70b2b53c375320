// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_turns_total",
			Help: "Total number of chat turns by resolved intent",
		},
		[]string{"intent"},
	)

	ChatTurnErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_turn_errors_total",
			Help: "Total number of chat turns answered with the error reply",
		},
	)

	ChatTurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_turn_duration_seconds",
			Help:    "Duration of one chat turn in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	ChatFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_fallback_total",
			Help: "Degraded paths taken, by reason",
		},
		[]string{"reason"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_llm_requests_total",
			Help: "Remote response generation calls by provider and status",
		},
		[]string{"provider", "status"},
	)

	ActiveConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbot_active_conversations",
			Help: "Number of conversations held by the in-process store",
		},
	)

	AdvisoryPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_predictions_total",
			Help: "Advisory model predictions by model and status",
		},
		[]string{"model", "status"},
	)
)
