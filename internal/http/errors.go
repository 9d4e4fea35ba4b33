package http

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidRequestBody = "HTTP_1000"
	codeInvalidParameter   = "HTTP_1001"
	codeUnsupportedMedia   = "HTTP_1002"
)

func errInvalidRequestBody(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRequestBody, "request body is not valid JSON", cause)
}

func errInvalidParameter(name, value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidParameter, fmt.Sprintf("invalid %s: %q", name, value), cause)
}

func errMissingParameter(name string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidParameter, fmt.Sprintf("%s is required", name), nil)
}

func errUnsupportedContentType(ct string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnsupportedMedia, fmt.Sprintf("unsupported content type %q, expected %s", ct, contentTypeJSON), nil)
}
