package models

import (
	"fmt"
	"time"
)

type Granularity string

const (
	GranularityMinute Granularity = "minute"
	GranularityHour   Granularity = "hour"

	// MaxTimeSeriesBuckets bounds a dense series; one day at minute granularity.
	MaxTimeSeriesBuckets = 1440
)

func NewGranularityFromString(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityMinute, GranularityHour:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("invalid granularity: %q", s)
	}
}

func (g Granularity) Duration() time.Duration {
	switch g {
	case GranularityMinute:
		return time.Minute
	case GranularityHour:
		return time.Hour
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

// Truncate floors t to the start of its bucket as seen on the wall clock of loc.
// Zones with non-hour offsets are handled because the bucket is built from calendar fields.
func (g Granularity) Truncate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	switch g.Duration() {
	case time.Minute:
		return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), 0, 0, loc)
	default:
		return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	}
}

// FormatBucket renders a bucket start as a zone-local key, e.g. 2025-12-28T18:00:00.
func (g Granularity) FormatBucket(t time.Time, loc *time.Location) string {
	local := g.Truncate(t, loc)
	switch g.Duration() {
	case time.Minute:
		return local.Format("2006-01-02T15:04:00")
	default:
		return local.Format("2006-01-02T15:00:00")
	}
}

// Buckets returns every bucket start covering r, from the bucket holding the first
// instant of r to the bucket holding the last.
func (g Granularity) Buckets(r TimeRange, loc *time.Location) []time.Time {
	if !r.Start.Before(r.End) {
		return nil
	}
	step := g.Duration()
	first, last := r.bounds()
	var buckets []time.Time
	for b := g.Truncate(first, loc); !b.After(last); b = b.Add(step) {
		buckets = append(buckets, b)
	}
	return buckets
}

// BucketCount is len(Buckets(r, loc)) without allocating.
func (g Granularity) BucketCount(r TimeRange, loc *time.Location) int {
	if !r.Start.Before(r.End) {
		return 0
	}
	first, last := r.bounds()
	return int(g.Truncate(last, loc).Sub(g.Truncate(first, loc))/g.Duration()) + 1
}
