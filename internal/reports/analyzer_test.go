package reports

import (
	"testing"
	"time"

	"traffic-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ictZone = time.FixedZone("ICT", 7*60*60)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 1, hour, minute, 0, 0, time.UTC)
}

func reading(cameraID, district string, capturedAt time.Time, total int64, counts map[string]int64, image string) *models.TelemetryEvent {
	event := &models.TelemetryEvent{
		CameraID:      cameraID,
		CameraName:    "Camera " + cameraID,
		District:      district,
		VehicleCounts: counts,
		TotalCount:    total,
		CapturedAt:    capturedAt,
	}
	if image != "" {
		event.AnnotatedImageURL = models.Some(image)
	}
	return event
}

func sampleReadings() []*models.TelemetryEvent {
	return []*models.TelemetryEvent{
		reading("cam-01", "D1", at(0, 10), 100, map[string]int64{"car": 80, "motorcycle": 20}, "http://img/1a"),
		reading("cam-02", "D1", at(0, 20), 10, map[string]int64{"car": 10}, ""),
		reading("cam-01", "D1", at(1, 10), 300, map[string]int64{"car": 200, "truck": 100}, "http://img/1b"),
		reading("cam-03", "D2", at(1, 30), 20, map[string]int64{"motorcycle": 20}, ""),
		reading("cam-04", "D2", at(2, 5), 70, map[string]int64{"car": 70}, "http://img/4"),
	}
}

func sampleJob() *models.ReportJob {
	return &models.ReportJob{
		ID:              42,
		Name:            "Morning report",
		StartTime:       at(0, 0),
		EndTime:         at(3, 0),
		IntervalMinutes: 60,
		Districts:       []string{"D1", "D2"},
		Status:          models.ReportJobRunning,
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	analysis := NewAnalyzer(ictZone).Analyze(sampleJob(), sampleReadings())

	require.NotNil(t, analysis)
	assert.Equal(t, "Morning report", analysis.ReportTitle)
	assert.Equal(t, 60, analysis.IntervalMinutes)
	assert.Equal(t, 4, analysis.TotalCameras)
	assert.Equal(t, 4, analysis.ActiveCameras)
	assert.Zero(t, analysis.OfflineCameras)

	assert.Equal(t, int64(500), analysis.TotalVehicles)
	assert.Equal(t, 125.0, analysis.AvgVehiclesPerCamera)
	assert.Equal(t, "D1", analysis.BusiestDistrict)
	assert.Equal(t, "D2", analysis.QuietestDistrict)
	assert.Equal(t, "cam-01", analysis.BusiestCamera)
	assert.Equal(t, "cam-02", analysis.QuietestCamera)

	assert.Equal(t, []models.DistrictAnalysis{
		{DistrictName: "D1", TotalVehicles: 410, Percentage: 82, ActiveCameras: 2, AvgVehiclesPerCamera: 205},
		{DistrictName: "D2", TotalVehicles: 90, Percentage: 18, ActiveCameras: 2, AvgVehiclesPerCamera: 45},
	}, analysis.DistrictAnalyses)

	assert.Equal(t, []models.EntityCount{{Name: "car", Count: 360}, {Name: "truck", Count: 100}, {Name: "motorcycle", Count: 40}}, analysis.VehicleTypeCounts)
	assert.Equal(t, map[string]float64{"car": 72, "truck": 20, "motorcycle": 8}, analysis.VehicleTypePercentages)

	assert.Equal(t, at(1, 0), analysis.PeakHour)
	assert.Equal(t, int64(320), analysis.PeakHourVolume)
	assert.Equal(t, at(2, 0), analysis.OffPeakHour)
	assert.Equal(t, int64(70), analysis.OffPeakHourVolume)
}

func TestAnalyzer_Analyze_CameraAnomalies(t *testing.T) {
	t.Parallel()

	analysis := NewAnalyzer(time.UTC).Analyze(sampleJob(), sampleReadings())

	// System average of per-reading averages: (200 + 10 + 20 + 70) / 4 = 75.
	cameraOrder := make([]string, 0, len(analysis.CameraAnalyses))
	anomalyTypes := make(map[string]string)
	for _, camera := range analysis.CameraAnalyses {
		cameraOrder = append(cameraOrder, camera.CameraID)
		anomalyTypes[camera.CameraID] = camera.AnomalyType
	}
	assert.Equal(t, []string{"cam-01", "cam-04", "cam-03", "cam-02"}, cameraOrder)
	assert.Equal(t, map[string]string{
		"cam-01": models.CameraAnomalySurge,
		"cam-02": models.CameraAnomalyDrop,
		"cam-03": models.CameraAnomalyDrop,
		"cam-04": "",
	}, anomalyTypes)
	assert.Equal(t, 2, analysis.CameraAnalyses[0].Readings)
	assert.Equal(t, 200.0, analysis.CameraAnalyses[0].AvgVehicles)
	assert.True(t, analysis.CameraAnalyses[0].HasAnomaly)
	assert.False(t, analysis.CameraAnalyses[1].HasAnomaly)

	require.Len(t, analysis.Anomalies, 3)
	surge := analysis.Anomalies[0]
	assert.Equal(t, "cam-01", surge.CameraID)
	assert.Equal(t, models.AnomalyTrafficSurge, surge.Type)
	assert.Equal(t, "traffic 167% above the system average", surge.Description)
	assert.Equal(t, 0.89, surge.Severity)
	assert.Equal(t, at(1, 10), surge.DetectedAt)

	assert.Equal(t, "cam-02", analysis.Anomalies[1].CameraID)
	assert.Equal(t, models.AnomalyTrafficDrop, analysis.Anomalies[1].Type)
	assert.Equal(t, 0.87, analysis.Anomalies[1].Severity)
	assert.Equal(t, "cam-03", analysis.Anomalies[2].CameraID)
	assert.Equal(t, 0.73, analysis.Anomalies[2].Severity)
}

func TestAnalyzer_Analyze_Timeline(t *testing.T) {
	t.Parallel()

	analysis := NewAnalyzer(time.UTC).Analyze(sampleJob(), sampleReadings())

	require.Len(t, analysis.Timeline, 3)
	assert.Equal(t, models.TimelineEntry{
		Timestamp:     at(0, 0),
		TotalVehicles: 110,
		ByDistrict:    map[string]int64{"D1": 110},
		ByVehicleType: map[string]int64{"car": 90, "motorcycle": 20},
	}, analysis.Timeline[0])
	assert.Equal(t, at(1, 0), analysis.Timeline[1].Timestamp)
	assert.Equal(t, int64(320), analysis.Timeline[1].TotalVehicles)
	assert.Equal(t, map[string]int64{"D1": 300, "D2": 20}, analysis.Timeline[1].ByDistrict)
	assert.Equal(t, at(2, 0), analysis.Timeline[2].Timestamp)
}

func TestTimeline_EpochAlignedIntervals(t *testing.T) {
	t.Parallel()

	events := []*models.TelemetryEvent{
		reading("cam-01", "D1", at(0, 29), 5, nil, ""),
		reading("cam-01", "D1", at(0, 14), 3, nil, ""),
		reading("cam-01", "D1", at(0, 15), 4, nil, ""),
	}

	entries := timeline(events, 15)

	require.Len(t, entries, 2)
	assert.Equal(t, at(0, 0), entries[0].Timestamp)
	assert.Equal(t, int64(3), entries[0].TotalVehicles)
	assert.Equal(t, at(0, 15), entries[1].Timestamp)
	assert.Equal(t, int64(9), entries[1].TotalVehicles)
}

func TestPeakHours_HalfHourOffsetZone(t *testing.T) {
	t.Parallel()

	kolkata := time.FixedZone("IST", 5*60*60+30*60)
	events := []*models.TelemetryEvent{
		// 06:10 and 06:50 local share the 06:00 IST hour, which starts at 00:30 UTC.
		reading("cam-01", "D1", at(0, 40), 40, nil, ""),
		reading("cam-01", "D1", at(1, 20), 50, nil, ""),
		reading("cam-01", "D1", at(1, 40), 30, nil, ""),
	}

	peak, offPeak := peakHours(events, kolkata)

	assert.Equal(t, at(0, 30), peak.hour)
	assert.Equal(t, int64(90), peak.count)
	assert.Equal(t, at(1, 30), offPeak.hour)
	assert.Equal(t, int64(30), offPeak.count)

	utcPeak, _ := peakHours(events, time.UTC)
	assert.Equal(t, at(1, 0), utcPeak.hour)
	assert.Equal(t, int64(80), utcPeak.count)
}

func TestAnalyzer_Analyze_AnnotatedImages(t *testing.T) {
	t.Parallel()

	analysis := NewAnalyzer(time.UTC).Analyze(sampleJob(), sampleReadings())

	assert.Equal(t, []models.AnnotatedImage{
		{CameraID: "cam-01", CameraName: "Camera cam-01", ImageURL: "http://img/1b", Timestamp: at(1, 10), VehicleCount: 300},
		{CameraID: "cam-04", CameraName: "Camera cam-04", ImageURL: "http://img/4", Timestamp: at(2, 5), VehicleCount: 70},
	}, analysis.AnnotatedImages)
}

func TestAnalyzer_Analyze_AnnotatedImagesCapped(t *testing.T) {
	t.Parallel()

	var events []*models.TelemetryEvent
	for i := 0; i < 20; i++ {
		events = append(events, reading(string(rune('a'+i)), "D1", at(0, i), int64(i+1), nil, "http://img"))
	}

	analysis := NewAnalyzer(time.UTC).Analyze(sampleJob(), events)

	require.Len(t, analysis.AnnotatedImages, maxAnnotatedImages)
	assert.Equal(t, int64(20), analysis.AnnotatedImages[0].VehicleCount)
	assert.Equal(t, int64(9), analysis.AnnotatedImages[maxAnnotatedImages-1].VehicleCount)
}

func TestAnalyzer_Analyze_Conclusions(t *testing.T) {
	t.Parallel()

	analysis := NewAnalyzer(ictZone).Analyze(sampleJob(), sampleReadings())

	assert.Equal(t, []string{
		"A total of 500 vehicles were recorded between 2025-01-01 07:00 and 2025-01-01 10:00.",
		"D1 had the highest traffic with 410 vehicles (82.0% of total traffic). Closer monitoring and better traffic routing are recommended.",
		"Peak hour was 2025-01-01 08:00 with 320 vehicles. Additional traffic coordination is recommended for this time slot.",
		"The most common vehicle type was car at 72.0% of total traffic.",
		"Each camera recorded 125 vehicles on average. The system is seeing low traffic.",
		"1 cameras showed a traffic surge and should be watched for congestion.",
		"2 cameras showed an unusual traffic drop and should be checked for incidents.",
	}, analysis.Conclusions)
}

func TestAnalyzer_Analyze_SingleReading(t *testing.T) {
	t.Parallel()

	job := sampleJob()
	job.Name = ""
	events := []*models.TelemetryEvent{reading("cam-01", "D1", at(0, 30), 0, map[string]int64{}, "")}

	analysis := NewAnalyzer(time.UTC).Analyze(job, events)

	assert.Equal(t, defaultReportTitle, analysis.ReportTitle)
	assert.Empty(t, analysis.Anomalies)
	assert.Empty(t, analysis.AnnotatedImages)
	assert.Empty(t, analysis.VehicleTypePercentages)
	assert.Equal(t, analysis.PeakHour, analysis.OffPeakHour)
	assert.Equal(t, []string{
		"A total of 0 vehicles were recorded between 2025-01-01 00:00 and 2025-01-01 03:00.",
		"Each camera recorded 0 vehicles on average. The system recorded very low traffic and should be checked.",
	}, analysis.Conclusions)
}

func TestRankCounts_TieBreaksByName(t *testing.T) {
	t.Parallel()

	ranked := rankCounts(map[string]int64{"b": 5, "a": 5, "c": 9, "d": 5})

	assert.Equal(t, []models.EntityCount{{Name: "c", Count: 9}, {Name: "a", Count: 5}, {Name: "b", Count: 5}, {Name: "d", Count: 5}}, ranked)
	assert.Equal(t, "c", busiestName(ranked))
	assert.Equal(t, "a", quietestName(ranked))
	assert.Equal(t, notAvailable, busiestName(nil))
	assert.Equal(t, notAvailable, quietestName(nil))
}

func TestLoadStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		avg      float64
		expected string
	}{
		{avg: 2500, expected: "is running under high load"},
		{avg: 1500, expected: "is running steadily"},
		{avg: 700, expected: "is running normally"},
		{avg: 101, expected: "is seeing low traffic"},
		{avg: 100, expected: "recorded very low traffic and should be checked"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, loadStatus(tt.avg), "avg=%v", tt.avg)
	}
}
