package workerpools

import (
	"traffic-analytics/internal/shared/metrics"
)

const (
	outcomeQueued     = "queued"
	outcomeCallerRuns = "caller_runs"
	outcomeDiscarded  = "discarded"
	outcomePanicked   = "panicked"
)

var metricPoolTasksTotal = metrics.NewCounterVec(
	metrics.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.SubWorkerPool,
		Name:      "tasks_total",
	},
	[]string{"pool", metrics.FieldOutcome},
)
