package ingestors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/validators"
)

const maxPayloadBytes = 256 * 1024

//go:generate mockgen -source=telemetry_decoder.go -destination=./mocks/telemetry_decoder_mock.go -package=mocks
type TelemetryDecoder interface {
	// Decode parses one queue record into a reading. Errors are ServiceErrors with code ING_1000.
	Decode(raw *models.RawTelemetry) (*models.TelemetryEvent, error)
}

type telemetryDecoder struct {
	validate *validators.Validate
}

func NewTelemetryDecoder() TelemetryDecoder {
	return &telemetryDecoder{validate: validators.New()}
}

func (d *telemetryDecoder) Decode(raw *models.RawTelemetry) (*models.TelemetryEvent, error) {
	if raw == nil || len(bytes.TrimSpace(raw.Value)) == 0 {
		return nil, errMalformedPayload("empty payload", nil)
	}
	if len(raw.Value) > maxPayloadBytes {
		return nil, errMalformedPayload(fmt.Sprintf("payload too large: must be <= %d bytes", maxPayloadBytes), nil)
	}

	var payload models.TelemetryPayload
	if err := json.Unmarshal(raw.Value, &payload); err != nil {
		return nil, errMalformedPayload("invalid json", err)
	}

	if err := d.validate.Struct(&payload); err != nil {
		return nil, errMalformedPayload(describeValidationError(err), err)
	}

	cameraID := strings.TrimSpace(*payload.CameraID)
	district := strings.TrimSpace(*payload.District)
	if cameraID == "" {
		return nil, errMalformedPayload("camera_id must not be blank", nil)
	}
	if district == "" {
		return nil, errMalformedPayload("district must not be blank", nil)
	}

	event := &models.TelemetryEvent{
		CameraID:          cameraID,
		District:          district,
		Coordinates:       payload.Coordinates,
		VehicleCounts:     payload.DetectionDetails,
		TotalCount:        *payload.TotalCount,
		CapturedAt:        time.UnixMilli(*payload.Timestamp).UTC(),
		AnnotatedImageURL: models.OptionalFromPtr(payload.AnnotatedImageURL),
	}
	if payload.CameraName != nil {
		event.CameraName = strings.TrimSpace(*payload.CameraName)
	}
	if event.VehicleCounts == nil {
		event.VehicleCounts = map[string]int64{}
	}
	return event, nil
}

func describeValidationError(err error) string {
	validationErrors, ok := err.(validators.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid payload"
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
	}
	return "invalid payload: " + strings.Join(fields, ", ")
}
