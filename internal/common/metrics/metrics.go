// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_processed_total",
			Help: "Total number of conversation turns processed, by intent",
		},
		[]string{"intent"},
	)

	ResponsesByKind = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_responses_total",
			Help: "Total number of responses produced, by response kind",
		},
		[]string{"kind"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_turn_duration_seconds",
			Help: "Duration of turn processing in seconds",
		},
		[]string{"intent"},
	)

	ComparisonDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "assistant_comparison_duration_seconds",
			Help: "Duration of provider price comparisons in seconds",
		},
	)

	CompletionFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_completion_fallbacks_total",
			Help: "Times the external completion call failed and the rule path was used",
		},
	)
)
