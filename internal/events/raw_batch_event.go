package events

import (
	"encoding/json"
	"time"
)

// RawBatchEvent carries a consumed telemetry batch, untouched, to live dashboard clients.
// It is published before the batch is persisted, so clients may see a reading
// fractionally before it is durable.
//
// Example JSON:
//
//	{
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "receivedAt": "2025-12-28T18:03:01Z",
//	  "events": [
//	    {"camera_id": "cam-01", "district": "Quan 1", "total_count": 12, "timestamp": 1766944980000, ...}
//	  ]
//	}
type RawBatchEvent struct {
	BatchID    string            `json:"batchId"`
	ReceivedAt time.Time         `json:"receivedAt"`
	Events     []json.RawMessage `json:"events"`
}

func (e *RawBatchEvent) Key() string {
	return e.BatchID
}
