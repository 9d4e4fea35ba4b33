package models

import "time"

// VehicleLabelPerson is a detector label for pedestrians; it is never counted as a vehicle.
const VehicleLabelPerson = "person"

// RawTelemetry is one undecoded record as delivered by the queue.
type RawTelemetry struct {
	Value      []byte
	Topic      string
	Partition  int
	Offset     int64
	ReceivedAt time.Time
}

// TelemetryPayload is the inbound wire form of one camera reading.
// Pointer fields distinguish "absent" from "zero"; presence is checked by the decoder.
type TelemetryPayload struct {
	CameraID          *string          `json:"camera_id" validate:"required"`
	CameraName        *string          `json:"camera_name"`
	District          *string          `json:"district" validate:"required"`
	LiveviewURL       *string          `json:"liveview_url"`
	Coordinates       []float64        `json:"coordinates"`
	TotalCount        *int64           `json:"total_count" validate:"required"`
	DetectionDetails  map[string]int64 `json:"detection_details"`
	Timestamp         *int64           `json:"timestamp" validate:"required,gt=0"`
	TimestampVN       *string          `json:"timestamp_vn"`
	AnnotatedImageURL *string          `json:"annotated_image_url"`
}

// TelemetryEvent is one camera reading. TotalCount is authoritative and may disagree
// with the sum of VehicleCounts.
type TelemetryEvent struct {
	CameraID          string           `json:"cameraId"`
	CameraName        string           `json:"cameraName"`
	District          string           `json:"district"`
	Coordinates       []float64        `json:"coordinates"`
	VehicleCounts     map[string]int64 `json:"vehicleCounts"`
	TotalCount        int64            `json:"totalCount"`
	CapturedAt        time.Time        `json:"capturedAt"`
	AnnotatedImageURL Optional[string] `json:"annotatedImageUrl"`
}
