package models

import "time"

// RowResult describes one row of a batch that was not persisted.
type RowResult struct {
	Position int    `json:"position"`
	CameraID string `json:"cameraId,omitempty"`
	Reason   string `json:"reason"`
}

// BatchOutcome is the per-batch result of decoding and persisting telemetry.
// Err is set when the batch-level write failed; rows listed in Skipped never reached the store.
type BatchOutcome struct {
	BatchID        string
	Size           int
	Queued         int
	Skipped        []RowResult
	InsertDuration time.Duration
	Err            error
}

func NewBatchOutcome(batchID string, size int) *BatchOutcome {
	return &BatchOutcome{BatchID: batchID, Size: size}
}

func (o *BatchOutcome) Skip(position int, cameraID, reason string) {
	o.Skipped = append(o.Skipped, RowResult{Position: position, CameraID: cameraID, Reason: reason})
}

// Merge folds the outcome of a sub-batch into o. positions maps sub-batch row
// indexes back to their position in o.
func (o *BatchOutcome) Merge(sub *BatchOutcome, positions []int) {
	if sub == nil {
		return
	}
	o.Queued += sub.Queued
	o.InsertDuration += sub.InsertDuration
	for _, row := range sub.Skipped {
		if row.Position >= 0 && row.Position < len(positions) {
			row.Position = positions[row.Position]
		}
		o.Skipped = append(o.Skipped, row)
	}
	if sub.Err != nil && o.Err == nil {
		o.Err = sub.Err
	}
}

func (o *BatchOutcome) Succeeded() bool {
	return o.Err == nil
}
