package events

import (
	"strconv"

	"traffic-analytics/internal/models"
)

// ReportStatusEvent announces that a report job finished and where to download it.
//
// Example JSON:
//
//	{"reportId": 42, "status": "COMPLETED", "downloadPath": "/api/reports/42/download"}
type ReportStatusEvent struct {
	ReportID     int64                  `json:"reportId"`
	Status       models.ReportJobStatus `json:"status"`
	DownloadPath string                 `json:"downloadPath"`
}

func (e *ReportStatusEvent) Key() string {
	return strconv.FormatInt(e.ReportID, 10)
}
