package streams

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

const (
	codeInternalFetchFailed   = "STR_9000"
	codeInternalCommitFailed  = "STR_9001"
	codeInternalPublishFailed = "STR_9002"
	codeInternalEncodeFailed  = "STR_9003"
)

func errInternalFetchFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalFetchFailed, fmt.Errorf("fetchFailed: %w", cause))
}

func errInternalCommitFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCommitFailed, fmt.Errorf("commitFailed: %w", cause))
}

func errInternalPublishFailed(topic string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPublishFailed, fmt.Errorf("publishFailed topic=%s: %w", topic, cause))
}

func errInternalEncodeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEncodeFailed, fmt.Errorf("encodeFailed: %w", cause))
}
