package ingestors

import (
	"traffic-analytics/internal/shared/metrics"
)

const (
	outcomePersisted = "persisted"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

var (
	metricBatchConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batch_consumed_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRowsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "rows_total",
		},
		[]string{metrics.FieldOutcome, metrics.FieldErrorCode},
	)

	metricInsertDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "insert_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)

	metricEndToEndLatencySeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "end_to_end_latency_seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{},
	)
)
