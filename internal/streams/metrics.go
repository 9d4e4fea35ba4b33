package streams

import (
	"traffic-analytics/internal/shared/metrics"
)

const (
	ackCommitted = "committed"
	ackWithheld  = "withheld"
)

var (
	metricBatchFetchedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "batch_fetched_total",
		},
		[]string{"topic", metrics.FieldErrorCode},
	)

	metricBatchAckTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "batch_ack_total",
		},
		[]string{"topic", metrics.FieldOutcome},
	)

	metricEventPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "event_published_total",
		},
		[]string{"topic", metrics.FieldErrorCode},
	)

	metricLivePushDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "live_push_dropped_total",
		},
		[]string{"topic"},
	)
)
