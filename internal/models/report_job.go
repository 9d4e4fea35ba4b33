package models

import (
	"fmt"
	"slices"
	"time"
)

type ReportJobStatus string

const (
	ReportJobPending   ReportJobStatus = "PENDING"
	ReportJobRunning   ReportJobStatus = "RUNNING"
	ReportJobCompleted ReportJobStatus = "COMPLETED"
	ReportJobFailed    ReportJobStatus = "FAILED"
)

// AllowedIntervalMinutes is the set of aggregation intervals a report may use.
var AllowedIntervalMinutes = []int{1, 5, 10, 15, 30, 60, 120, 240, 360, 720, 1440}

func IsAllowedInterval(minutes int) bool {
	return slices.Contains(AllowedIntervalMinutes, minutes)
}

func NewReportJobStatusFromString(s string) (ReportJobStatus, error) {
	status := ReportJobStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid report job status: %q", s)
	}
	return status, nil
}

func (s ReportJobStatus) IsValid() bool {
	switch s {
	case ReportJobPending, ReportJobRunning, ReportJobCompleted, ReportJobFailed:
		return true
	}
	return false
}

func (s ReportJobStatus) IsTerminal() bool {
	return s == ReportJobCompleted || s == ReportJobFailed
}

// CanTransitionTo allows PENDING -> RUNNING -> {COMPLETED, FAILED} only.
func (s ReportJobStatus) CanTransitionTo(next ReportJobStatus) bool {
	switch s {
	case ReportJobPending:
		return next == ReportJobRunning
	case ReportJobRunning:
		return next == ReportJobCompleted || next == ReportJobFailed
	default:
		return false
	}
}

// CreateReportRequest asks for a new report job. ExecuteAt defaults to the creation time.
type CreateReportRequest struct {
	Name            string     `json:"name" validate:"required,min=3,max=255"`
	StartTime       *time.Time `json:"startTime" validate:"required"`
	EndTime         *time.Time `json:"endTime" validate:"required"`
	IntervalMinutes *int       `json:"intervalMinutes" validate:"required,min=1,max=1440"`
	Districts       []string   `json:"districts"`
	Cameras         []string   `json:"cameras"`
	ExecuteAt       *time.Time `json:"executeAt"`
}

type ReportJob struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	IntervalMinutes int              `json:"intervalMinutes"`
	Districts       []string         `json:"districts"`
	Cameras         []string         `json:"cameras"`
	Status          ReportJobStatus  `json:"status"`
	FileURL         Optional[string] `json:"fileUrl"`
	FailureReason   string           `json:"failureReason,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	ExecuteAt       time.Time        `json:"executeAt"`
}

// Range is the half-open telemetry window the report covers.
func (j *ReportJob) Range() TimeRange {
	return HalfOpen(j.StartTime, j.EndTime)
}

// Filter selects by cameras when given, else by districts, else nothing.
func (j *ReportJob) Filter() EventFilter {
	if len(j.Cameras) > 0 {
		return EventFilter{CameraIDs: j.Cameras}
	}
	return EventFilter{Districts: j.Districts}
}

func (j *ReportJob) IsDue(now time.Time) bool {
	return j.Status == ReportJobPending && !j.ExecuteAt.After(now)
}
