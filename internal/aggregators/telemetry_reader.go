package aggregators

import (
	"context"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/stores"
)

const latestReadingsLimit = 100

// TelemetryReader serves stored readings as they are: the newest ones, the camera and
// district catalog and per-camera peaks.
//
//go:generate mockgen -source=telemetry_reader.go -destination=./mocks/telemetry_reader_mock.go -package=mocks
type TelemetryReader interface {
	// Latest returns the newest readings, optionally of one district and one calendar day
	// of the reporting timezone. Each reading carries its camera's all-time maximum.
	Latest(ctx context.Context, district string, day models.Optional[time.Time]) ([]models.LatestReading, error)
	CameraLatest(ctx context.Context, cameraID string) (*models.TelemetryEvent, error)
	CameraPeak(ctx context.Context, cameraID string) (*models.PeakReading, error)
	Districts(ctx context.Context) ([]models.DistrictInfo, error)
	Cameras(ctx context.Context, district string) ([]models.CameraInfo, error)
}

type telemetryReader struct {
	store stores.TelemetryStore
	loc   *time.Location
}

func NewTelemetryReader(store stores.TelemetryStore, loc *time.Location) TelemetryReader {
	if loc == nil {
		loc = time.UTC
	}
	return &telemetryReader{store: store, loc: loc}
}

func (r *telemetryReader) Latest(ctx context.Context, district string, day models.Optional[time.Time]) (readings []models.LatestReading, err error) {
	defer func(start time.Time) { observeQuery("latest", start, err) }(time.Now())

	timeRange := models.None[models.TimeRange]()
	if date, ok := day.Get(); ok {
		midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.loc)
		timeRange = models.Some(models.HalfOpen(midnight, midnight.AddDate(0, 0, 1)))
	}

	events, err := r.store.LatestEvents(ctx, district, timeRange, latestReadingsLimit)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}
	if len(events) == 0 {
		return []models.LatestReading{}, nil
	}

	seen := make(map[string]struct{})
	cameraIDs := make([]string, 0)
	for _, event := range events {
		if _, ok := seen[event.CameraID]; !ok {
			seen[event.CameraID] = struct{}{}
			cameraIDs = append(cameraIDs, event.CameraID)
		}
	}
	maxCounts, err := r.store.MaxTotalCounts(ctx, cameraIDs)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}

	readings = make([]models.LatestReading, 0, len(events))
	for _, event := range events {
		readings = append(readings, models.LatestReading{TelemetryEvent: *event, MaxCount: maxCounts[event.CameraID]})
	}
	return readings, nil
}

func (r *telemetryReader) CameraLatest(ctx context.Context, cameraID string) (event *models.TelemetryEvent, err error) {
	defer func(start time.Time) { observeQuery("camera_latest", start, err) }(time.Now())

	latest, err := r.store.LatestEventByCamera(ctx, cameraID)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}
	event, ok := latest.Get()
	if !ok {
		return nil, errCameraNotFound(cameraID)
	}
	return event, nil
}

func (r *telemetryReader) CameraPeak(ctx context.Context, cameraID string) (peak *models.PeakReading, err error) {
	defer func(start time.Time) { observeQuery("camera_peak", start, err) }(time.Now())

	found, err := r.store.PeakEventByCamera(ctx, cameraID)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}
	event, ok := found.Get()
	if !ok {
		return nil, errCameraNotFound(cameraID)
	}
	return &models.PeakReading{
		CameraID:        event.CameraID,
		District:        event.District,
		MaxVehicleCount: event.TotalCount,
		Timestamp:       event.CapturedAt,
	}, nil
}

func (r *telemetryReader) Districts(ctx context.Context) (districts []models.DistrictInfo, err error) {
	defer func(start time.Time) { observeQuery("districts", start, err) }(time.Now())

	names, err := r.store.Districts(ctx)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}
	districts = make([]models.DistrictInfo, 0, len(names))
	for _, name := range names {
		districts = append(districts, models.DistrictInfo{DistrictName: name})
	}
	return districts, nil
}

func (r *telemetryReader) Cameras(ctx context.Context, district string) (cameras []models.CameraInfo, err error) {
	defer func(start time.Time) { observeQuery("cameras", start, err) }(time.Now())

	cameras, err = r.store.Cameras(ctx, district)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}
	if cameras == nil {
		cameras = []models.CameraInfo{}
	}
	return cameras, nil
}
