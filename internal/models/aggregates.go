package models

import "time"

// EntityCount is a district or camera with its summed total count.
type EntityCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DistrictGrowth struct {
	District      string  `json:"district"`
	GrowthRate    float64 `json:"growthRate"`
	CurrentCount  int64   `json:"currentCount"`
	PreviousCount int64   `json:"previousCount"`
}

type VehicleTypeRatio struct {
	VehicleType string  `json:"vehicleType"`
	Count       int64   `json:"count"`
	Percentage  float64 `json:"percentage"`
}

// TopTraffic is an entity with its per-minute rate over the sliding window.
type TopTraffic struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type TimeSeriesPoint struct {
	Bucket     time.Time `json:"bucket"`
	Label      string    `json:"label"`
	TotalCount int64     `json:"totalCount"`
}

type TimeSeries struct {
	Granularity Granularity       `json:"granularity"`
	Points      []TimeSeriesPoint `json:"points"`
}

// HourlyDistrictSummary counts vehicles of one district within one bucket.
// TotalCount is recomputed from detections with pedestrians removed.
type HourlyDistrictSummary struct {
	District                string           `json:"district"`
	Bucket                  time.Time        `json:"bucket"`
	Hour                    int              `json:"hour"`
	TotalCount              int64            `json:"totalCount"`
	DetectionDetailsSummary map[string]int64 `json:"detectionDetailsSummary"`
}

type DistrictSummary struct {
	District                string           `json:"district"`
	TotalCount              int64            `json:"totalCount"`
	DetectionDetailsSummary map[string]int64 `json:"detectionDetailsSummary"`
}

type TrafficFlow struct {
	CameraID          string  `json:"cameraId"`
	TotalVehicles     int64   `json:"totalVehicles"`
	Minutes           float64 `json:"minutes"`
	VehiclesPerMinute float64 `json:"vehiclesPerMinute"`
}

// DashboardSnapshot is the composite view pushed to dashboard clients each tick.
type DashboardSnapshot struct {
	HourlySummary    []HourlyDistrictSummary `json:"hourlySummary"`
	FastestGrowing   []DistrictGrowth        `json:"fastestGrowing"`
	VehicleRatio     []VehicleTypeRatio      `json:"vehicleRatio"`
	BusiestDistricts []TopTraffic            `json:"busiestDistricts"`
	BusiestCameras   []TopTraffic            `json:"busiestCameras"`
	Timestamp        int64                   `json:"timestamp"`
}

// LatestReading is a stored reading with the highest total count its camera ever reported.
type LatestReading struct {
	TelemetryEvent
	MaxCount int64 `json:"maxCount"`
}

type CameraInfo struct {
	CameraID   string `json:"cameraId"`
	CameraName string `json:"cameraName"`
	District   string `json:"district"`
}

type DistrictInfo struct {
	DistrictName string `json:"districtName"`
}

// PeakReading is the single reading with the highest total count of one camera.
type PeakReading struct {
	CameraID        string    `json:"cameraId"`
	District        string    `json:"district"`
	MaxVehicleCount int64     `json:"maxVehicleCount"`
	Timestamp       time.Time `json:"timestamp"`
}

// EntityRanking answers a busiest or quietest query. Entity is null when the range is empty.
type EntityRanking struct {
	Kind   EntityKind            `json:"kind"`
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
	Entity Optional[EntityCount] `json:"entity"`
}
