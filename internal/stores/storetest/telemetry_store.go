// Package storetest provides in-memory stores for tests that depend on query semantics
// rather than on recorded calls.
package storetest

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"sync"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/stores"
)

// TelemetryStore keeps readings in memory and answers queries like the SQL store:
// range bounds follow the TimeRange kind and the camera filter wins over the district filter.
type TelemetryStore struct {
	mu     sync.RWMutex
	events []*models.TelemetryEvent

	// Err, when set, is returned by every query.
	Err error
}

var _ stores.TelemetryStore = (*TelemetryStore)(nil)

func NewTelemetryStore(events ...*models.TelemetryEvent) *TelemetryStore {
	return &TelemetryStore{events: events}
}

func (s *TelemetryStore) Add(events ...*models.TelemetryEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

func (s *TelemetryStore) InsertBatch(_ context.Context, rows []*stores.TelemetryRow) error {
	if s.Err != nil {
		return s.Err
	}
	events := make([]*models.TelemetryEvent, 0, len(rows))
	for _, row := range rows {
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
				return err
			}
		}
		if len(row.DetectionDetails) > 0 {
			if err := json.Unmarshal(row.DetectionDetails, &event.VehicleCounts); err != nil {
				return err
			}
		}
		events = append(events, event)
	}
	s.Add(events...)
	return nil
}

func (s *TelemetryStore) FindEvents(_ context.Context, r models.TimeRange, filter models.EventFilter) ([]*models.TelemetryEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.TelemetryEvent
	for _, event := range s.events {
		if r.Contains(event.CapturedAt) && filter.Matches(event) {
			result = append(result, event)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CapturedAt.Before(result[j].CapturedAt)
	})
	return result, nil
}

func (s *TelemetryStore) SumTotalCount(_ context.Context, kind models.EntityKind, r models.TimeRange) ([]models.EntityCount, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[string]int64)
	for _, event := range s.events {
		if r.Contains(event.CapturedAt) {
			sums[kind.Key(event)] += event.TotalCount
		}
	}
	result := make([]models.EntityCount, 0, len(sums))
	for name, count := range sums {
		result = append(result, models.EntityCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *TelemetryStore) KnownDistricts(_ context.Context, districts []string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var known []string
	for _, event := range s.events {
		if slices.Contains(districts, event.District) && !slices.Contains(known, event.District) {
			known = append(known, event.District)
		}
	}
	return known, nil
}

func (s *TelemetryStore) CameraDistricts(_ context.Context, cameraIDs []string) (map[string]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(cameraIDs))
	for _, event := range s.events {
		if slices.Contains(cameraIDs, event.CameraID) {
			result[event.CameraID] = event.District
		}
	}
	return result, nil
}

func (s *TelemetryStore) LatestEvents(_ context.Context, district string, r models.Optional[models.TimeRange], limit int) ([]*models.TelemetryEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.TelemetryEvent
	for _, event := range s.events {
		if district != "" && event.District != district {
			continue
		}
		if timeRange, ok := r.Get(); ok && !timeRange.Contains(event.CapturedAt) {
			continue
		}
		result = append(result, event)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CapturedAt.After(result[j].CapturedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *TelemetryStore) LatestEventByCamera(_ context.Context, cameraID string) (models.Optional[*models.TelemetryEvent], error) {
	return s.firstByCamera(cameraID, func(candidate, best *models.TelemetryEvent) bool {
		return candidate.CapturedAt.After(best.CapturedAt)
	})
}

func (s *TelemetryStore) PeakEventByCamera(_ context.Context, cameraID string) (models.Optional[*models.TelemetryEvent], error) {
	return s.firstByCamera(cameraID, func(candidate, best *models.TelemetryEvent) bool {
		if candidate.TotalCount != best.TotalCount {
			return candidate.TotalCount > best.TotalCount
		}
		return candidate.CapturedAt.Before(best.CapturedAt)
	})
}

func (s *TelemetryStore) firstByCamera(cameraID string, better func(candidate, best *models.TelemetryEvent) bool) (models.Optional[*models.TelemetryEvent], error) {
	if s.Err != nil {
		return models.None[*models.TelemetryEvent](), s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *models.TelemetryEvent
	for _, event := range s.events {
		if event.CameraID == cameraID && (best == nil || better(event, best)) {
			best = event
		}
	}
	if best == nil {
		return models.None[*models.TelemetryEvent](), nil
	}
	return models.Some(best), nil
}

func (s *TelemetryStore) MaxTotalCounts(_ context.Context, cameraIDs []string) (map[string]int64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]int64, len(cameraIDs))
	for _, event := range s.events {
		if !slices.Contains(cameraIDs, event.CameraID) {
			continue
		}
		if current, ok := result[event.CameraID]; !ok || event.TotalCount > current {
			result[event.CameraID] = event.TotalCount
		}
	}
	return result, nil
}

func (s *TelemetryStore) Districts(_ context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var districts []string
	for _, event := range s.events {
		if !slices.Contains(districts, event.District) {
			districts = append(districts, event.District)
		}
	}
	slices.Sort(districts)
	return districts, nil
}

func (s *TelemetryStore) Cameras(_ context.Context, district string) ([]models.CameraInfo, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	newest := make(map[string]*models.TelemetryEvent)
	for _, event := range s.events {
		if district != "" && event.District != district {
			continue
		}
		if current, ok := newest[event.CameraID]; !ok || event.CapturedAt.After(current.CapturedAt) {
			newest[event.CameraID] = event
		}
	}
	cameras := make([]models.CameraInfo, 0, len(newest))
	for _, event := range newest {
		cameras = append(cameras, models.CameraInfo{CameraID: event.CameraID, CameraName: event.CameraName, District: event.District})
	}
	sort.Slice(cameras, func(i, j int) bool { return cameras[i].CameraID < cameras[j].CameraID })
	return cameras, nil
}
