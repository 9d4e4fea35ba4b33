package reports

import (
	"traffic-analytics/internal/shared/workerpools"
)

// taskSubmitter is the part of workerpools.Pool the scheduler needs.
type taskSubmitter interface {
	Submit(task workerpools.Task) error
}
