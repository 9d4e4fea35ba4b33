package reports

import (
	"fmt"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidReportRequest = "RPT_1000"
	codeReportNotFound       = "RPT_1001"
	codeReportNotCompleted   = "RPT_1002"
	codeNoData               = "RPT_1003"

	codeInternalReportStoreFailed    = "RPT_9000"
	codeInternalTelemetryStoreFailed = "RPT_9001"
	codeInternalBlobStoreFailed      = "RPT_9002"
	codeInternalRenderFailed         = "RPT_9003"
	codeInternalJobNotRunning        = "RPT_9004"
)

// errInvalidReportRequest returns an error for a report request rejected at creation time.
func errInvalidReportRequest(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidReportRequest, msg, cause)
}

// errReportNotFound returns an error when no report job has the given id.
func errReportNotFound(id int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("report job %d not found", id), cause)
}

// errReportFileNotFound returns an error when a completed job has no stored document.
func errReportFileNotFound(id int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("report file for job %d not found", id), cause)
}

// errReportNotCompleted returns an error when a document is requested before the job completed.
func errReportNotCompleted(status models.ReportJobStatus) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeReportNotCompleted, fmt.Sprintf("report is not completed yet, current status: %s", status), nil)
}

// errNoData returns an error when the report window holds no telemetry.
func errNoData(r models.TimeRange) *svcerrors.ServiceError {
	msg := fmt.Sprintf("no data between %s and %s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	return svcerrors.NewNotFoundError(codeNoData, msg, nil)
}

// errInternalReportStoreFailed returns an error when reading or writing report jobs fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}

// errInternalTelemetryStoreFailed returns an error when reading telemetry fails.
func errInternalTelemetryStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalTelemetryStoreFailed, fmt.Errorf("telemetryStoreFailed: %w", cause))
}

// errInternalBlobStoreFailed returns an error when the rendered document cannot be stored or read.
func errInternalBlobStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalBlobStoreFailed, fmt.Errorf("blobStoreFailed: %w", cause))
}

// errInternalRenderFailed returns an error when the document cannot be rendered.
func errInternalRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRenderFailed, fmt.Errorf("renderFailed: %w", cause))
}

// errInternalJobNotRunning returns an error when the job left RUNNING while it was being processed.
func errInternalJobNotRunning(id int64) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalJobNotRunning, fmt.Errorf("jobNotRunning id=%d", id))
}
