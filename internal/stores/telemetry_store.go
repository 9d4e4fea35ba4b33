package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"traffic-analytics/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TelemetryRow is one serialized reading as stored in traffic_metrics.
type TelemetryRow struct {
	ID                int64          `gorm:"primaryKey"`
	CameraID          string         `gorm:"not null"`
	CameraName        string
	District          string         `gorm:"not null"`
	AnnotatedImageURL *string
	Coordinates       datatypes.JSON `gorm:"type:jsonb"`
	DetectionDetails  datatypes.JSON `gorm:"type:jsonb"`
	TotalCount        int64          `gorm:"not null"`
	Timestamp         time.Time      `gorm:"not null"`
}

func (TelemetryRow) TableName() string {
	return "traffic_metrics"
}

//go:generate mockgen -source=telemetry_store.go -destination=./mocks/telemetry_store_mock.go -package=mocks
type TelemetryStore interface {
	// InsertBatch writes all rows in one transaction using multi-row INSERT statements.
	InsertBatch(ctx context.Context, rows []*TelemetryRow) error
	// FindEvents returns readings inside r that match filter, oldest first.
	FindEvents(ctx context.Context, r models.TimeRange, filter models.EventFilter) ([]*models.TelemetryEvent, error)
	// SumTotalCount sums total_count per district or camera inside r.
	SumTotalCount(ctx context.Context, kind models.EntityKind, r models.TimeRange) ([]models.EntityCount, error)
	// KnownDistricts returns the subset of districts that appear in stored telemetry.
	KnownDistricts(ctx context.Context, districts []string) ([]string, error)
	// CameraDistricts maps each known camera among cameraIDs to its district.
	CameraDistricts(ctx context.Context, cameraIDs []string) (map[string]string, error)
	// LatestEvents returns up to limit readings newest first. An empty district and an absent
	// range do not narrow the query.
	LatestEvents(ctx context.Context, district string, r models.Optional[models.TimeRange], limit int) ([]*models.TelemetryEvent, error)
	// LatestEventByCamera returns the newest reading of the camera, absent when it has none.
	LatestEventByCamera(ctx context.Context, cameraID string) (models.Optional[*models.TelemetryEvent], error)
	// PeakEventByCamera returns the camera's reading with the highest total count, earliest on ties.
	PeakEventByCamera(ctx context.Context, cameraID string) (models.Optional[*models.TelemetryEvent], error)
	// MaxTotalCounts returns the highest total count ever stored per camera.
	MaxTotalCounts(ctx context.Context, cameraIDs []string) (map[string]int64, error)
	// Districts returns every district with stored telemetry, sorted.
	Districts(ctx context.Context) ([]string, error)
	// Cameras lists cameras, optionally of one district, named after their newest reading and sorted by id.
	Cameras(ctx context.Context, district string) ([]models.CameraInfo, error)
}

type telemetryStore struct {
	db        *gorm.DB
	chunkSize int
}

func NewTelemetryStore(db *gorm.DB, chunkSize int) TelemetryStore {
	if chunkSize < 1 {
		chunkSize = 500
	}
	return &telemetryStore{db: db, chunkSize: chunkSize}
}

func (s *telemetryStore) InsertBatch(ctx context.Context, rows []*TelemetryRow) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, s.chunkSize).Error
	})
}

func (s *telemetryStore) FindEvents(ctx context.Context, r models.TimeRange, filter models.EventFilter) ([]*models.TelemetryEvent, error) {
	query := whereRange(s.db.WithContext(ctx).Model(&TelemetryRow{}), r)
	switch {
	case len(filter.CameraIDs) > 0:
		query = query.Where("camera_id IN ?", filter.CameraIDs)
	case len(filter.Districts) > 0:
		query = query.Where("district IN ?", filter.Districts)
	}

	var rows []TelemetryRow
	if err := query.Order("timestamp ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEvents(rows)
}

func (s *telemetryStore) SumTotalCount(ctx context.Context, kind models.EntityKind, r models.TimeRange) ([]models.EntityCount, error) {
	column := "district"
	if kind == models.EntityCamera {
		column = "camera_id"
	}

	var counts []models.EntityCount
	err := whereRange(s.db.WithContext(ctx).Model(&TelemetryRow{}), r).
		Select(column + " AS name, COALESCE(SUM(total_count), 0) AS count").
		Group(column).
		Order(column).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *telemetryStore) KnownDistricts(ctx context.Context, districts []string) ([]string, error) {
	if len(districts) == 0 {
		return nil, nil
	}
	var known []string
	err := s.db.WithContext(ctx).Model(&TelemetryRow{}).
		Distinct("district").
		Where("district IN ?", districts).
		Pluck("district", &known).Error
	return known, err
}

func (s *telemetryStore) CameraDistricts(ctx context.Context, cameraIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(cameraIDs))
	if len(cameraIDs) == 0 {
		return result, nil
	}

	var pairs []struct {
		CameraID string
		District string
	}
	err := s.db.WithContext(ctx).Model(&TelemetryRow{}).
		Distinct("camera_id", "district").
		Where("camera_id IN ?", cameraIDs).
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		result[pair.CameraID] = pair.District
	}
	return result, nil
}

func (s *telemetryStore) LatestEvents(ctx context.Context, district string, r models.Optional[models.TimeRange], limit int) ([]*models.TelemetryEvent, error) {
	query := s.db.WithContext(ctx).Model(&TelemetryRow{})
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if timeRange, ok := r.Get(); ok {
		query = whereRange(query, timeRange)
	}

	var rows []TelemetryRow
	if err := query.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEvents(rows)
}

func (s *telemetryStore) LatestEventByCamera(ctx context.Context, cameraID string) (models.Optional[*models.TelemetryEvent], error) {
	return s.firstByCamera(ctx, cameraID, "timestamp DESC", "id DESC")
}

func (s *telemetryStore) PeakEventByCamera(ctx context.Context, cameraID string) (models.Optional[*models.TelemetryEvent], error) {
	return s.firstByCamera(ctx, cameraID, "total_count DESC", "timestamp ASC", "id ASC")
}

func (s *telemetryStore) firstByCamera(ctx context.Context, cameraID string, orders ...string) (models.Optional[*models.TelemetryEvent], error) {
	query := s.db.WithContext(ctx).Model(&TelemetryRow{}).Where("camera_id = ?", cameraID)
	for _, order := range orders {
		query = query.Order(order)
	}

	var rows []TelemetryRow
	if err := query.Limit(1).Find(&rows).Error; err != nil {
		return models.None[*models.TelemetryEvent](), err
	}
	if len(rows) == 0 {
		return models.None[*models.TelemetryEvent](), nil
	}
	event, err := rows[0].toEvent()
	if err != nil {
		return models.None[*models.TelemetryEvent](), err
	}
	return models.Some(event), nil
}

func (s *telemetryStore) MaxTotalCounts(ctx context.Context, cameraIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(cameraIDs))
	if len(cameraIDs) == 0 {
		return result, nil
	}

	var counts []models.EntityCount
	err := s.db.WithContext(ctx).Model(&TelemetryRow{}).
		Select("camera_id AS name, MAX(total_count) AS count").
		Where("camera_id IN ?", cameraIDs).
		Group("camera_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, count := range counts {
		result[count.Name] = count.Count
	}
	return result, nil
}

func (s *telemetryStore) Districts(ctx context.Context) ([]string, error) {
	var districts []string
	err := s.db.WithContext(ctx).Model(&TelemetryRow{}).
		Distinct("district").
		Order("district").
		Pluck("district", &districts).Error
	return districts, err
}

func (s *telemetryStore) Cameras(ctx context.Context, district string) ([]models.CameraInfo, error) {
	query := s.db.WithContext(ctx).Model(&TelemetryRow{}).
		Select("DISTINCT ON (camera_id) camera_id, camera_name, district")
	if district != "" {
		query = query.Where("district = ?", district)
	}

	var cameras []models.CameraInfo
	if err := query.Order("camera_id").Order("timestamp DESC").Scan(&cameras).Error; err != nil {
		return nil, err
	}
	return cameras, nil
}

// whereRange applies the inclusive/exclusive bounds of r to the timestamp column.
func whereRange(query *gorm.DB, r models.TimeRange) *gorm.DB {
	if r.Trailing {
		return query.Where("timestamp > ? AND timestamp <= ?", r.Start, r.End)
	}
	return query.Where("timestamp >= ? AND timestamp < ?", r.Start, r.End)
}

func toEvents(rows []TelemetryRow) ([]*models.TelemetryEvent, error) {
	result := make([]*models.TelemetryEvent, 0, len(rows))
	for i := range rows {
		event, err := rows[i].toEvent()
		if err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, nil
}

func (row *TelemetryRow) toEvent() (*models.TelemetryEvent, error) {
	event := &models.TelemetryEvent{
		CameraID:          row.CameraID,
		CameraName:        row.CameraName,
		District:          row.District,
		TotalCount:        row.TotalCount,
		CapturedAt:        row.Timestamp.UTC(),
		AnnotatedImageURL: models.OptionalFromPtr(row.AnnotatedImageURL),
		VehicleCounts:     map[string]int64{},
	}
	if len(row.Coordinates) > 0 {
		if err := json.Unmarshal(row.Coordinates, &event.Coordinates); err != nil {
			return nil, fmt.Errorf("failed to decode coordinates of row %d: %w", row.ID, err)
		}
	}
	if len(row.DetectionDetails) > 0 {
		if err := json.Unmarshal(row.DetectionDetails, &event.VehicleCounts); err != nil {
			return nil, fmt.Errorf("failed to decode detection details of row %d: %w", row.ID, err)
		}
	}
	return event, nil
}
