package ingestors_test

import (
	"strings"
	"testing"
	"time"

	"traffic-analytics/internal/ingestors"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(value string) *models.RawTelemetry {
	return &models.RawTelemetry{Value: []byte(value), Topic: "traffic-metrics"}
}

func TestTelemetryDecoder_Decode(t *testing.T) {
	t.Parallel()

	decoder := ingestors.NewTelemetryDecoder()
	event, err := decoder.Decode(raw(`{
		"camera_id": " cam-01 ",
		"camera_name": "Nguyen Hue - Le Loi",
		"district": "Quan 1",
		"coordinates": [106.7009, 10.7769],
		"detection_details": {"car": 7, "motorcycle": 25, "person": 3},
		"total_count": 35,
		"timestamp": 1766944980000,
		"annotated_image_url": "https://cdn.example.com/cam-01/1766944980000.jpg"
	}`))

	require.NoError(t, err)
	assert.Equal(t, "cam-01", event.CameraID)
	assert.Equal(t, "Nguyen Hue - Le Loi", event.CameraName)
	assert.Equal(t, "Quan 1", event.District)
	assert.Equal(t, []float64{106.7009, 10.7769}, event.Coordinates)
	assert.Equal(t, map[string]int64{"car": 7, "motorcycle": 25, "person": 3}, event.VehicleCounts)
	assert.Equal(t, int64(35), event.TotalCount)
	assert.Equal(t, time.UnixMilli(1766944980000).UTC(), event.CapturedAt)
	assert.Equal(t, time.UTC, event.CapturedAt.Location())
	assert.Equal(t, models.Some("https://cdn.example.com/cam-01/1766944980000.jpg"), event.AnnotatedImageURL)
}

func TestTelemetryDecoder_Decode_OptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	decoder := ingestors.NewTelemetryDecoder()
	event, err := decoder.Decode(raw(`{"camera_id":"cam-02","district":"Quan 3","total_count":0,"timestamp":1766944980000}`))

	require.NoError(t, err)
	assert.Equal(t, int64(0), event.TotalCount)
	assert.False(t, event.AnnotatedImageURL.Present)
	assert.NotNil(t, event.VehicleCounts)
	assert.Empty(t, event.VehicleCounts)
}

func TestTelemetryDecoder_Decode_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     *models.RawTelemetry
		message string
	}{
		{name: "nil record", raw: nil, message: "empty payload"},
		{name: "empty payload", raw: raw("  "), message: "empty payload"},
		{name: "oversized payload", raw: raw(`{"camera_id":"` + strings.Repeat("x", 300*1024) + `"}`), message: "payload too large"},
		{name: "invalid json", raw: raw(`{camera_id:`), message: "invalid json"},
		{name: "missing camera id", raw: raw(`{"district":"D1","total_count":1,"timestamp":1}`), message: "camera_id (required)"},
		{name: "missing total count", raw: raw(`{"camera_id":"c","district":"D1","timestamp":1}`), message: "total_count (required)"},
		{name: "non-positive timestamp", raw: raw(`{"camera_id":"c","district":"D1","total_count":1,"timestamp":0}`), message: "timestamp (gt)"},
		{name: "blank district", raw: raw(`{"camera_id":"c","district":"   ","total_count":1,"timestamp":1}`), message: "district must not be blank"},
		{name: "wrong count type", raw: raw(`{"camera_id":"c","district":"D1","total_count":"many","timestamp":1}`), message: "invalid json"},
	}

	decoder := ingestors.NewTelemetryDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			event, err := decoder.Decode(tt.raw)

			require.Error(t, err)
			assert.Nil(t, event)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "ING_1000", svcErr.Code)
			assert.Equal(t, "invalid_argument", svcErr.Category)
			assert.Contains(t, svcErr.Message, tt.message)
		})
	}
}
