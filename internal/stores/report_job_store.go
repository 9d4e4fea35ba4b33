package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"traffic-analytics/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrReportJobNotFound = errors.New("report job not found")
	ErrIllegalTransition = errors.New("illegal report job status transition")
)

type reportJobRow struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	Name            string
	StartTime       time.Time
	EndTime         time.Time
	IntervalMinutes int
	Districts       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Cameras         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status          string
	FileURL         *string
	FailureReason   *string
	CreatedAt       time.Time
	ExecuteAt       time.Time
}

func (reportJobRow) TableName() string {
	return "report_jobs"
}

// JobUpdate carries the columns written together with a status transition.
type JobUpdate struct {
	FileURL       *string
	FailureReason *string
}

// ReportJobStore persists report jobs. Status changes go through Transition, a single
// conditional UPDATE, so two schedulers racing on one job cannot both move it.
//
//go:generate mockgen -source=report_job_store.go -destination=./mocks/report_job_store_mock.go -package=mocks
type ReportJobStore interface {
	Create(ctx context.Context, job *models.ReportJob) error
	Get(ctx context.Context, id int64) (*models.ReportJob, error)
	List(ctx context.Context, status models.Optional[models.ReportJobStatus]) ([]*models.ReportJob, error)
	Delete(ctx context.Context, id int64) error
	FindDue(ctx context.Context, now time.Time) ([]*models.ReportJob, error)
	// Transition moves the job from one status to another and reports whether the row moved.
	Transition(ctx context.Context, id int64, from, to models.ReportJobStatus, update JobUpdate) (bool, error)
	ClaimPending(ctx context.Context, id int64) (bool, error)
	MarkCompleted(ctx context.Context, id int64, fileURL string) (bool, error)
	MarkFailed(ctx context.Context, id int64, reason string) (bool, error)
}

type reportJobStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportJobStore(db *gorm.DB) ReportJobStore {
	return &reportJobStore{db: db, now: time.Now}
}

// Create inserts the job as PENDING and fills in its ID and creation time.
func (s *reportJobStore) Create(ctx context.Context, job *models.ReportJob) error {
	row := reportJobRow{
		Name:            job.Name,
		StartTime:       job.StartTime.UTC(),
		EndTime:         job.EndTime.UTC(),
		IntervalMinutes: job.IntervalMinutes,
		Districts:       datatypes.NewJSONSlice(nonNil(job.Districts)),
		Cameras:         datatypes.NewJSONSlice(nonNil(job.Cameras)),
		Status:          string(models.ReportJobPending),
		CreatedAt:       s.now().UTC(),
		ExecuteAt:       job.ExecuteAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*job = *row.toModel()
	return nil
}

func (s *reportJobStore) Get(ctx context.Context, id int64) (*models.ReportJob, error) {
	var row reportJobRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportJobNotFound
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (s *reportJobStore) List(ctx context.Context, status models.Optional[models.ReportJobStatus]) ([]*models.ReportJob, error) {
	query := s.db.WithContext(ctx).Model(&reportJobRow{})
	if value, ok := status.Get(); ok {
		query = query.Where("status = ?", string(value))
	}

	var rows []reportJobRow
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (s *reportJobStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&reportJobRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportJobNotFound
	}
	return nil
}

func (s *reportJobStore) FindDue(ctx context.Context, now time.Time) ([]*models.ReportJob, error) {
	var rows []reportJobRow
	err := s.db.WithContext(ctx).
		Where("status = ? AND execute_at <= ?", string(models.ReportJobPending), now.UTC()).
		Order("execute_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (s *reportJobStore) Transition(ctx context.Context, id int64, from, to models.ReportJobStatus, update JobUpdate) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	columns := map[string]any{"status": string(to)}
	if update.FileURL != nil {
		columns["file_url"] = *update.FileURL
	}
	if update.FailureReason != nil {
		columns["failure_reason"] = *update.FailureReason
	}

	result := s.db.WithContext(ctx).
		Model(&reportJobRow{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(columns)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *reportJobStore) ClaimPending(ctx context.Context, id int64) (bool, error) {
	return s.Transition(ctx, id, models.ReportJobPending, models.ReportJobRunning, JobUpdate{})
}

func (s *reportJobStore) MarkCompleted(ctx context.Context, id int64, fileURL string) (bool, error) {
	return s.Transition(ctx, id, models.ReportJobRunning, models.ReportJobCompleted, JobUpdate{FileURL: &fileURL})
}

func (s *reportJobStore) MarkFailed(ctx context.Context, id int64, reason string) (bool, error) {
	return s.Transition(ctx, id, models.ReportJobRunning, models.ReportJobFailed, JobUpdate{FailureReason: &reason})
}

func (row *reportJobRow) toModel() *models.ReportJob {
	job := &models.ReportJob{
		ID:              row.ID,
		Name:            row.Name,
		StartTime:       row.StartTime.UTC(),
		EndTime:         row.EndTime.UTC(),
		IntervalMinutes: row.IntervalMinutes,
		Districts:       []string(row.Districts),
		Cameras:         []string(row.Cameras),
		Status:          models.ReportJobStatus(row.Status),
		FileURL:         models.OptionalFromPtr(row.FileURL),
		CreatedAt:       row.CreatedAt.UTC(),
		ExecuteAt:       row.ExecuteAt.UTC(),
	}
	if row.FailureReason != nil {
		job.FailureReason = *row.FailureReason
	}
	return job
}

func toModels(rows []reportJobRow) []*models.ReportJob {
	jobs := make([]*models.ReportJob, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].toModel())
	}
	return jobs
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
