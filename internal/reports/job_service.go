package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/shared/validators"
	"traffic-analytics/internal/stores"
)

const maxReportRange = 90 * 24 * time.Hour

// JobService is the report job API: creation with synchronous validation, listing,
// lookup, deletion and document download.
//
//go:generate mockgen -source=job_service.go -destination=./mocks/job_service_mock.go -package=mocks
type JobService interface {
	Create(ctx context.Context, req *models.CreateReportRequest) (*models.ReportJob, error)
	List(ctx context.Context, status models.Optional[models.ReportJobStatus]) ([]*models.ReportJob, error)
	Get(ctx context.Context, id int64) (*models.ReportJob, error)
	Delete(ctx context.Context, id int64) error
	// Download opens the stored document of a COMPLETED job. The caller closes the reader.
	Download(ctx context.Context, id int64) (io.ReadCloser, error)
}

type jobService struct {
	jobStore       stores.ReportJobStore
	telemetryStore stores.TelemetryStore
	blobStore      stores.ReportBlobStore
	validate       *validators.Validate
	now            func() time.Time
}

func NewJobService(jobStore stores.ReportJobStore, telemetryStore stores.TelemetryStore, blobStore stores.ReportBlobStore) JobService {
	return newJobService(jobStore, telemetryStore, blobStore, time.Now)
}

func newJobService(jobStore stores.ReportJobStore, telemetryStore stores.TelemetryStore, blobStore stores.ReportBlobStore, now func() time.Time) *jobService {
	return &jobService{
		jobStore:       jobStore,
		telemetryStore: telemetryStore,
		blobStore:      blobStore,
		validate:       validators.New(),
		now:            now,
	}
}

func (s *jobService) Create(ctx context.Context, req *models.CreateReportRequest) (job *models.ReportJob, err error) {
	defer func() {
		code := metrics.ValueNoError
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
		metricJobCreatedTotal.WithLabelValues(code).Inc()
	}()

	job, err = s.newJob(req)
	if err != nil {
		return nil, err
	}
	if err := s.validateFilters(ctx, job.Districts, job.Cameras); err != nil {
		return nil, err
	}

	if err := s.jobStore.Create(ctx, job); err != nil {
		return nil, errInternalReportStoreFailed(err)
	}

	loggers.Ctx(ctx).Info().
		Int64(loggers.FieldJobID, job.ID).
		Time("execute_at", job.ExecuteAt).
		Msg("report job created")
	return job, nil
}

// newJob checks the request on its own, without touching any store.
func (s *jobService) newJob(req *models.CreateReportRequest) (*models.ReportJob, error) {
	if req == nil {
		return nil, errInvalidReportRequest("request body is required", nil)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, errInvalidReportRequest(describeValidationError(err), err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errInvalidReportRequest("name must not be blank", nil)
	}
	if !models.IsAllowedInterval(*req.IntervalMinutes) {
		return nil, errInvalidReportRequest(fmt.Sprintf("intervalMinutes must be one of %v", models.AllowedIntervalMinutes), nil)
	}

	start, end := req.StartTime.UTC(), req.EndTime.UTC()
	if !start.Before(end) {
		return nil, errInvalidReportRequest("startTime must be before endTime", nil)
	}
	if end.Sub(start) > maxReportRange {
		return nil, errInvalidReportRequest("report range must not exceed 90 days", nil)
	}

	districts := normalizeNames(req.Districts)
	cameras := normalizeNames(req.Cameras)
	if len(districts) == 0 && len(cameras) == 0 {
		return nil, errInvalidReportRequest("at least one district or camera is required", nil)
	}

	executeAt := s.now().UTC()
	if req.ExecuteAt != nil {
		executeAt = req.ExecuteAt.UTC()
	}
	if executeAt.Before(end) {
		return nil, errInvalidReportRequest("executeAt must not be before endTime", nil)
	}

	return &models.ReportJob{
		Name:            name,
		StartTime:       start,
		EndTime:         end,
		IntervalMinutes: *req.IntervalMinutes,
		Districts:       districts,
		Cameras:         cameras,
		Status:          models.ReportJobPending,
		ExecuteAt:       executeAt,
	}, nil
}

// validateFilters rejects districts and cameras never seen in telemetry, and cameras
// outside the requested districts when both filters are given.
func (s *jobService) validateFilters(ctx context.Context, districts, cameras []string) error {
	if len(districts) > 0 {
		known, err := s.telemetryStore.KnownDistricts(ctx, districts)
		if err != nil {
			return errInternalTelemetryStoreFailed(err)
		}
		if unknown := missing(districts, known); len(unknown) > 0 {
			return errInvalidReportRequest("invalid districts: "+strings.Join(unknown, ", "), nil)
		}
	}

	if len(cameras) == 0 {
		return nil
	}
	cameraDistricts, err := s.telemetryStore.CameraDistricts(ctx, cameras)
	if err != nil {
		return errInternalTelemetryStoreFailed(err)
	}
	knownCameras := make([]string, 0, len(cameraDistricts))
	for cameraID := range cameraDistricts {
		knownCameras = append(knownCameras, cameraID)
	}
	if unknown := missing(cameras, knownCameras); len(unknown) > 0 {
		return errInvalidReportRequest("invalid cameras: "+strings.Join(unknown, ", "), nil)
	}

	if len(districts) == 0 {
		return nil
	}
	var mismatched []string
	for _, cameraID := range cameras {
		if district := cameraDistricts[cameraID]; !slices.Contains(districts, district) {
			mismatched = append(mismatched, fmt.Sprintf("%s (district: %s)", cameraID, district))
		}
	}
	if len(mismatched) > 0 {
		slices.Sort(mismatched)
		return errInvalidReportRequest("cameras not in requested districts: "+strings.Join(mismatched, ", "), nil)
	}
	return nil
}

func (s *jobService) List(ctx context.Context, status models.Optional[models.ReportJobStatus]) ([]*models.ReportJob, error) {
	if value, ok := status.Get(); ok && !value.IsValid() {
		return nil, errInvalidReportRequest(fmt.Sprintf("invalid status: %q", value), nil)
	}
	jobs, err := s.jobStore.List(ctx, status)
	if err != nil {
		return nil, errInternalReportStoreFailed(err)
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id int64) (*models.ReportJob, error) {
	job, err := s.jobStore.Get(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrReportJobNotFound) {
			return nil, errReportNotFound(id, err)
		}
		return nil, errInternalReportStoreFailed(err)
	}
	return job, nil
}

// Delete removes the job and, best effort, its stored document.
func (s *jobService) Delete(ctx context.Context, id int64) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.jobStore.Delete(ctx, id); err != nil {
		if errors.Is(err, stores.ErrReportJobNotFound) {
			return errReportNotFound(id, err)
		}
		return errInternalReportStoreFailed(err)
	}

	if path, ok := job.FileURL.Get(); ok && path != "" {
		if err := s.blobStore.Delete(ctx, path); err != nil && !errors.Is(err, stores.ErrReportFileNotFound) {
			loggers.Ctx(ctx).Warn().Err(err).Int64(loggers.FieldJobID, id).Str("path", path).Msg("failed to delete report file")
		}
	}
	return nil
}

func (s *jobService) Download(ctx context.Context, id int64) (io.ReadCloser, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != models.ReportJobCompleted {
		return nil, errReportNotCompleted(job.Status)
	}
	path, ok := job.FileURL.Get()
	if !ok || path == "" {
		return nil, errReportFileNotFound(id, nil)
	}

	reader, err := s.blobStore.Open(ctx, path)
	if err != nil {
		if errors.Is(err, stores.ErrReportFileNotFound) {
			return nil, errReportFileNotFound(id, err)
		}
		return nil, errInternalBlobStoreFailed(err)
	}
	return reader, nil
}

// normalizeNames trims, drops blanks and removes duplicates, keeping first-seen order.
func normalizeNames(names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(result, name) {
			continue
		}
		result = append(result, name)
	}
	return result
}

// missing returns the sorted values of wanted absent from known.
func missing(wanted, known []string) []string {
	var result []string
	for _, value := range wanted {
		if !slices.Contains(known, value) {
			result = append(result, value)
		}
	}
	slices.Sort(result)
	return result
}

func describeValidationError(err error) string {
	validationErrors, ok := err.(validators.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid request"
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
