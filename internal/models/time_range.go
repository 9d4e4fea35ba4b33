package models

import (
	"fmt"
	"time"
)

// TimeRange is an instant range. Half-open ranges are [Start, End); trailing ranges
// are (Start, End], matching "the last N minutes up to now".
type TimeRange struct {
	Start    time.Time
	End      time.Time
	Trailing bool
}

func HalfOpen(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Trailing returns (end-d, end].
func Trailing(end time.Time, d time.Duration) TimeRange {
	return TimeRange{Start: end.Add(-d), End: end, Trailing: true}
}

func (r TimeRange) Contains(t time.Time) bool {
	if r.Trailing {
		return t.After(r.Start) && !t.After(r.End)
	}
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r TimeRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("time range bounds are required")
	}
	if !r.Start.Before(r.End) {
		return fmt.Errorf("time range start %s must be before end %s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	}
	return nil
}

// bounds returns the first and last instants inside the range.
func (r TimeRange) bounds() (time.Time, time.Time) {
	if r.Trailing {
		return r.Start.Add(time.Nanosecond), r.End
	}
	return r.Start, r.End.Add(-time.Nanosecond)
}
