package stores

import (
	"context"
	"testing"

	"traffic-analytics/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReportJobStore_Transition_RejectsIllegalMovesBeforeSQL(t *testing.T) {
	t.Parallel()

	// a nil *gorm.DB would panic if the store reached SQL
	store := &reportJobStore{}

	tests := []struct {
		name string
		from models.ReportJobStatus
		to   models.ReportJobStatus
	}{
		{name: "skip running", from: models.ReportJobPending, to: models.ReportJobCompleted},
		{name: "backward", from: models.ReportJobRunning, to: models.ReportJobPending},
		{name: "leave completed", from: models.ReportJobCompleted, to: models.ReportJobFailed},
		{name: "leave failed", from: models.ReportJobFailed, to: models.ReportJobRunning},
		{name: "self loop", from: models.ReportJobRunning, to: models.ReportJobRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			moved, err := store.Transition(context.Background(), 1, tt.from, tt.to, JobUpdate{})
			assert.False(t, moved)
			assert.ErrorIs(t, err, ErrIllegalTransition)
		})
	}
}

func TestReportJobRow_ToModel(t *testing.T) {
	t.Parallel()

	fileURL := "reports/2025/01/traffic_report_5.pdf"
	row := reportJobRow{
		ID:              5,
		Name:            "weekly",
		IntervalMinutes: 60,
		Districts:       []string{"D1"},
		Status:          "COMPLETED",
		FileURL:         &fileURL,
	}

	job := row.toModel()
	assert.Equal(t, int64(5), job.ID)
	assert.Equal(t, models.ReportJobCompleted, job.Status)
	assert.Equal(t, models.Some(fileURL), job.FileURL)
	assert.Equal(t, []string{"D1"}, job.Districts)
	assert.Empty(t, job.FailureReason)
}
