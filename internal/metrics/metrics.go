package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_calculations_total",
			Help: "Total number of retirement calculations by outcome",
		},
		[]string{"profile", "outcome"},
	)

	CalculationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_calculation_failures_total",
			Help: "Total number of failed calculations by message code",
		},
		[]string{"code"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_calculation_duration_seconds",
			Help:    "Duration of a retirement calculation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"profile"},
	)

	ShortfallRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planner_shortfall_ratio",
			Help:    "Shortfall as a fraction of the goal amount",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)
