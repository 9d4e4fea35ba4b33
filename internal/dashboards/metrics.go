package dashboards

import (
	"traffic-analytics/internal/shared/metrics"
)

var (
	metricTickTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDashboard,
			Name:      "tick_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricTickDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDashboard,
			Name:      "tick_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
