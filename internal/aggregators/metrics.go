package aggregators

import (
	"time"

	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
)

// metricQueryDurationSeconds measures each aggregation, store round trips included.
// The operation label is the aggregator method, e.g. "fastest_growing_districts".
var (
	metricQueryDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "query_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"operation", metrics.FieldErrorCode},
	)
)

func observeQuery(operation string, start time.Time, err error) {
	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricQueryDurationSeconds.WithLabelValues(operation, code).Observe(time.Since(start).Seconds())
}
