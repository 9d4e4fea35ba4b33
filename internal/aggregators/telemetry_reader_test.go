package aggregators

import (
	"context"
	"errors"
	"testing"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/stores/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogStore() *storetest.TelemetryStore {
	return storetest.NewTelemetryStore(
		reading("cam-01", "D1", 40, at(16, 30, 0), nil),
		reading("cam-01", "D1", 90, at(10, 0, 0), nil),
		reading("cam-02", "D2", 15, at(18, 5, 0), nil),
		reading("cam-01", "D1", 25, at(18, 6, 0), nil),
		reading("cam-03", "D1", 90, at(9, 0, 0), nil),
		reading("cam-01", "D1", 90, at(12, 0, 0), nil),
	)
}

func capturedTimes(readings []models.LatestReading) []time.Time {
	result := make([]time.Time, 0, len(readings))
	for _, r := range readings {
		result = append(result, r.CapturedAt)
	}
	return result
}

func TestTelemetryReader_Latest(t *testing.T) {
	t.Parallel()

	reader := NewTelemetryReader(catalogStore(), ictZone)

	readings, err := reader.Latest(context.Background(), "", models.None[time.Time]())

	require.NoError(t, err)
	assert.Equal(t, []time.Time{at(18, 6, 0), at(18, 5, 0), at(16, 30, 0), at(12, 0, 0), at(10, 0, 0), at(9, 0, 0)}, capturedTimes(readings))
	assert.Equal(t, int64(90), readings[0].MaxCount)
	assert.Equal(t, int64(15), readings[1].MaxCount)
	assert.Equal(t, int64(90), readings[5].MaxCount)
}

func TestTelemetryReader_Latest_DistrictAndDay(t *testing.T) {
	t.Parallel()

	reader := NewTelemetryReader(catalogStore(), ictZone)
	// 2025-12-28 in ICT runs from 2025-12-27T17:00Z to 2025-12-28T17:00Z.
	day := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)

	readings, err := reader.Latest(context.Background(), "D1", models.Some(day))

	require.NoError(t, err)
	assert.Equal(t, []time.Time{at(16, 30, 0), at(12, 0, 0), at(10, 0, 0), at(9, 0, 0)}, capturedTimes(readings))
	for _, r := range readings {
		assert.Equal(t, "D1", r.District)
	}
}

func TestTelemetryReader_Latest_Empty(t *testing.T) {
	t.Parallel()

	reader := NewTelemetryReader(catalogStore(), ictZone)

	readings, err := reader.Latest(context.Background(), "D9", models.None[time.Time]())

	require.NoError(t, err)
	assert.NotNil(t, readings)
	assert.Empty(t, readings)
}

func TestTelemetryReader_CameraLatestAndPeak(t *testing.T) {
	t.Parallel()

	reader := NewTelemetryReader(catalogStore(), ictZone)
	ctx := context.Background()

	latest, err := reader.CameraLatest(ctx, "cam-01")
	require.NoError(t, err)
	assert.Equal(t, at(18, 6, 0), latest.CapturedAt)

	peak, err := reader.CameraPeak(ctx, "cam-01")
	require.NoError(t, err)
	assert.Equal(t, &models.PeakReading{CameraID: "cam-01", District: "D1", MaxVehicleCount: 90, Timestamp: at(10, 0, 0)}, peak)

	_, err = reader.CameraLatest(ctx, "cam-x")
	requireCode(t, err, codeCameraNotFound)
	_, err = reader.CameraPeak(ctx, "cam-x")
	requireCode(t, err, codeCameraNotFound)
}

func TestTelemetryReader_Catalog(t *testing.T) {
	t.Parallel()

	reader := NewTelemetryReader(catalogStore(), ictZone)
	ctx := context.Background()

	districts, err := reader.Districts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DistrictInfo{{DistrictName: "D1"}, {DistrictName: "D2"}}, districts)

	tests := []struct {
		district string
		expected []string
	}{
		{district: "", expected: []string{"cam-01", "cam-02", "cam-03"}},
		{district: "D1", expected: []string{"cam-01", "cam-03"}},
		{district: "D9", expected: []string{}},
	}
	for _, tt := range tests {
		cameras, err := reader.Cameras(ctx, tt.district)
		require.NoError(t, err)
		ids := make([]string, 0, len(cameras))
		for _, camera := range cameras {
			ids = append(ids, camera.CameraID)
		}
		assert.Equal(t, tt.expected, ids, "district=%q", tt.district)
	}
}

func TestTelemetryReader_StoreFailure(t *testing.T) {
	t.Parallel()

	store := storetest.NewTelemetryStore()
	store.Err = errors.New("connection reset")
	reader := NewTelemetryReader(store, ictZone)
	ctx := context.Background()

	_, err := reader.Latest(ctx, "", models.None[time.Time]())
	requireCode(t, err, codeInternalTelemetryStoreFailed)
	_, err = reader.CameraPeak(ctx, "cam-01")
	requireCode(t, err, codeInternalTelemetryStoreFailed)
	_, err = reader.Districts(ctx)
	requireCode(t, err, codeInternalTelemetryStoreFailed)
	_, err = reader.Cameras(ctx, "")
	requireCode(t, err, codeInternalTelemetryStoreFailed)
}
