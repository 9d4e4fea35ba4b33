package ingestors

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/stores"
)

// BulkPersister writes a batch of readings in one transaction. Rows that cannot be
// serialized are skipped with a reason; the remaining rows are still written.
//
//go:generate mockgen -source=bulk_persister.go -destination=./mocks/bulk_persister_mock.go -package=mocks
type BulkPersister interface {
	Persist(ctx context.Context, batchID string, events []*models.TelemetryEvent) *models.BatchOutcome
}

type bulkPersister struct {
	store stores.TelemetryStore
	now   func() time.Time
}

func NewBulkPersister(store stores.TelemetryStore) BulkPersister {
	return &bulkPersister{store: store, now: time.Now}
}

func (p *bulkPersister) Persist(ctx context.Context, batchID string, events []*models.TelemetryEvent) *models.BatchOutcome {
	logger := loggers.Ctx(ctx)
	outcome := models.NewBatchOutcome(batchID, len(events))

	rows := make([]*stores.TelemetryRow, 0, len(events))
	for i, event := range events {
		row, svcErr := toTelemetryRow(event)
		if svcErr != nil {
			cameraID := ""
			if event != nil {
				cameraID = event.CameraID
			}
			outcome.Skip(i, cameraID, svcErr.Message)
			metricRowsTotal.WithLabelValues(outcomeSkipped, svcErr.Code).Inc()
			logger.Warn().
				Str(loggers.FieldErrorCode, svcErr.Code).
				Err(svcErr.Cause).
				Msgf("skipping row %d of batch (camera_id=%s): %s", i, cameraID, svcErr.Message)
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return outcome
	}

	start := p.now()
	err := p.store.InsertBatch(ctx, rows)
	outcome.InsertDuration = p.now().Sub(start)

	if err != nil {
		svcErr := errInternalTelemetryStoreFailed(err)
		outcome.Err = svcErr
		metricInsertDurationSeconds.WithLabelValues(svcErr.Code).Observe(outcome.InsertDuration.Seconds())
		metricRowsTotal.WithLabelValues(outcomeFailed, svcErr.Code).Add(float64(len(rows)))
		logger.Error().
			Err(err).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Int(loggers.FieldBatchSize, len(events)).
			Int("rows", len(rows)).
			Msg("bulk insert failed, batch rows are lost")
		return outcome
	}

	outcome.Queued = len(rows)
	metricInsertDurationSeconds.WithLabelValues(metrics.ValueNoError).Observe(outcome.InsertDuration.Seconds())
	metricRowsTotal.WithLabelValues(outcomePersisted, metrics.ValueNoError).Add(float64(len(rows)))
	return outcome
}

// toTelemetryRow serializes the structured columns of a reading.
func toTelemetryRow(event *models.TelemetryEvent) (*stores.TelemetryRow, *svcerrors.ServiceError) {
	if event == nil {
		return nil, errInvalidRow("nil event", nil)
	}
	if event.TotalCount < 0 {
		return nil, errInvalidRow(fmt.Sprintf("total_count must not be negative: %d", event.TotalCount), nil)
	}
	for label, count := range event.VehicleCounts {
		if count < 0 {
			return nil, errInvalidRow(fmt.Sprintf("detection count for %q must not be negative: %d", label, count), nil)
		}
	}
	for _, coordinate := range event.Coordinates {
		if math.IsNaN(coordinate) || math.IsInf(coordinate, 0) {
			return nil, errInvalidRow("coordinates must be finite numbers", nil)
		}
	}

	coordinates, err := json.Marshal(event.Coordinates)
	if err != nil {
		return nil, errInvalidRow("failed to serialize coordinates", err)
	}
	details := event.VehicleCounts
	if details == nil {
		details = map[string]int64{}
	}
	detectionDetails, err := json.Marshal(details)
	if err != nil {
		return nil, errInvalidRow("failed to serialize detection details", err)
	}

	return &stores.TelemetryRow{
		CameraID:          event.CameraID,
		CameraName:        event.CameraName,
		District:          event.District,
		AnnotatedImageURL: event.AnnotatedImageURL.Ptr(),
		Coordinates:       coordinates,
		DetectionDetails:  detectionDetails,
		TotalCount:        event.TotalCount,
		Timestamp:         event.CapturedAt.UTC(),
	}, nil
}
