package aggregators

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidQuery   = "AGG_1000"
	codeCameraNotFound = "AGG_1001"

	codeInternalTelemetryStoreFailed = "AGG_9000"
)

// errInvalidQuery returns an error for a query whose range, granularity or entity is unusable.
func errInvalidQuery(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQuery, msg, cause)
}

func errCameraNotFound(cameraID string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeCameraNotFound, fmt.Sprintf("camera %q has no telemetry", cameraID), nil)
}

// errInternalTelemetryStoreFailed returns an error when reading telemetry fails.
func errInternalTelemetryStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalTelemetryStoreFailed, fmt.Errorf("telemetryStoreFailed: %w", cause))
}
