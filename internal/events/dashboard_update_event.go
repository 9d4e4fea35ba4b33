package events

import "traffic-analytics/internal/models"

const dashboardUpdateKey = "dashboard"

// DashboardUpdateEvent is the once-per-tick composite snapshot. All snapshots share
// one key so consumers receive them in tick order.
type DashboardUpdateEvent struct {
	models.DashboardSnapshot
}

func (e *DashboardUpdateEvent) Key() string {
	return dashboardUpdateKey
}
