package models

import (
	"fmt"
	"slices"
)

type EntityKind string

const (
	EntityDistrict EntityKind = "district"
	EntityCamera   EntityKind = "camera"
)

func NewEntityKindFromString(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case EntityDistrict, EntityCamera:
		return EntityKind(s), nil
	default:
		return "", fmt.Errorf("invalid entity kind: %q", s)
	}
}

// Key returns the grouping key of the event for this entity kind.
func (k EntityKind) Key(event *TelemetryEvent) string {
	if k == EntityCamera {
		return event.CameraID
	}
	return event.District
}

// EventFilter narrows a telemetry query. When CameraIDs is set Districts is ignored.
type EventFilter struct {
	CameraIDs []string
	Districts []string
}

func (f EventFilter) IsEmpty() bool {
	return len(f.CameraIDs) == 0 && len(f.Districts) == 0
}

func (f EventFilter) Matches(event *TelemetryEvent) bool {
	switch {
	case len(f.CameraIDs) > 0:
		return slices.Contains(f.CameraIDs, event.CameraID)
	case len(f.Districts) > 0:
		return slices.Contains(f.Districts, event.District)
	default:
		return true
	}
}
