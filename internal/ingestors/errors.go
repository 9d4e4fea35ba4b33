package ingestors

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

const (
	codeMalformedPayload = "ING_1000"
	codeInvalidRow       = "ING_1001"

	codeInternalTelemetryStoreFailed = "ING_9000"
)

// errMalformedPayload returns an error for a queue record that cannot be decoded into a reading.
func errMalformedPayload(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedPayload, msg, cause)
}

// errInvalidRow returns an error for a decoded reading that cannot be serialized into a row.
func errInvalidRow(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRow, msg, cause)
}

// errInternalTelemetryStoreFailed returns an error when the batched insert fails.
func errInternalTelemetryStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalTelemetryStoreFailed, fmt.Errorf("telemetryStoreFailed: %w", cause))
}
