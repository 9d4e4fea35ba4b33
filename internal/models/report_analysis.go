package models

import "time"

const (
	CameraAnomalySurge = "SURGE"
	CameraAnomalyDrop  = "DROP"

	AnomalyTrafficSurge = "TRAFFIC_SURGE"
	AnomalyTrafficDrop  = "TRAFFIC_DROP"
)

// ReportAnalysis is the document handed to the renderer for one report job.
type ReportAnalysis struct {
	ReportTitle     string    `json:"reportTitle"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	IntervalMinutes int       `json:"intervalMinutes"`
	TotalCameras    int       `json:"totalCameras"`
	ActiveCameras   int       `json:"activeCameras"`
	OfflineCameras  int       `json:"offlineCameras"`

	TotalVehicles          int64              `json:"totalVehicles"`
	AvgVehiclesPerCamera   float64            `json:"avgVehiclesPerCamera"`
	VehicleTypePercentages map[string]float64 `json:"vehicleTypePercentages"`
	BusiestDistrict        string             `json:"busiestDistrict"`
	QuietestDistrict       string             `json:"quietestDistrict"`
	BusiestCamera          string             `json:"busiestCamera"`
	QuietestCamera         string             `json:"quietestCamera"`

	DistrictAnalyses []DistrictAnalysis `json:"districtAnalyses"`
	CameraAnalyses   []CameraAnalysis   `json:"cameraAnalyses"`

	Timeline          []TimelineEntry `json:"timeline"`
	PeakHour          time.Time       `json:"peakHour"`
	PeakHourVolume    int64           `json:"peakHourVolume"`
	OffPeakHour       time.Time       `json:"offPeakHour"`
	OffPeakHourVolume int64           `json:"offPeakHourVolume"`

	VehicleTypeCounts []EntityCount    `json:"vehicleTypeCounts"`
	Anomalies         []AnomalyEvent   `json:"anomalies"`
	AnnotatedImages   []AnnotatedImage `json:"annotatedImages"`
	Conclusions       []string         `json:"conclusions"`
}

type DistrictAnalysis struct {
	DistrictName         string  `json:"districtName"`
	TotalVehicles        int64   `json:"totalVehicles"`
	Percentage           float64 `json:"percentage"`
	ActiveCameras        int     `json:"activeCameras"`
	AvgVehiclesPerCamera float64 `json:"avgVehiclesPerCamera"`
}

type CameraAnalysis struct {
	CameraID      string  `json:"cameraId"`
	CameraName    string  `json:"cameraName"`
	District      string  `json:"district"`
	TotalVehicles int64   `json:"totalVehicles"`
	Readings      int     `json:"readings"`
	AvgVehicles   float64 `json:"avgVehicles"`
	HasAnomaly    bool    `json:"hasAnomaly"`
	AnomalyType   string  `json:"anomalyType,omitempty"`
}

type TimelineEntry struct {
	Timestamp     time.Time        `json:"timestamp"`
	TotalVehicles int64            `json:"totalVehicles"`
	ByDistrict    map[string]int64 `json:"byDistrict"`
	ByVehicleType map[string]int64 `json:"byVehicleType"`
}

type AnomalyEvent struct {
	CameraID    string    `json:"cameraId"`
	CameraName  string    `json:"cameraName"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	DetectedAt  time.Time `json:"detectedAt"`
	Severity    float64   `json:"severity"` // 0.0 - 1.0
}

type AnnotatedImage struct {
	CameraID     string    `json:"cameraId"`
	CameraName   string    `json:"cameraName"`
	ImageURL     string    `json:"imageUrl"`
	Timestamp    time.Time `json:"timestamp"`
	VehicleCount int64     `json:"vehicleCount"`
}
