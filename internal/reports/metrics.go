package reports

import (
	"traffic-analytics/internal/shared/metrics"
)

const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
	outcomeSkipped   = "skipped"
)

var (
	metricJobsDueTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "jobs_due_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// outcome is completed, failed or skipped (already claimed by another worker).
	metricJobProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "job_processed_total",
		},
		[]string{metrics.FieldOutcome, metrics.FieldErrorCode},
	)

	metricJobDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "job_duration_seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{metrics.FieldOutcome},
	)

	metricJobCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "job_created_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
