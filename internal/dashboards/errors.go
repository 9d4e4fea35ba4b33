package dashboards

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

const (
	codeInternalSnapshotFailed = "DSH_9000"
	codeInternalPublishFailed  = "DSH_9001"
)

// errInternalSnapshotFailed returns an error when one of the snapshot views cannot be computed.
func errInternalSnapshotFailed(view string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSnapshotFailed, fmt.Errorf("snapshotFailed view=%s: %w", view, cause))
}

// errInternalPublishFailed returns an error when the snapshot cannot be published.
func errInternalPublishFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPublishFailed, fmt.Errorf("publishFailed: %w", cause))
}
