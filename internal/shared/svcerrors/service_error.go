package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryInvalidArgument  = "invalid_argument"
	categoryNotFound         = "not_found"
	categoryResourceConflict = "resource_conflict"
	categoryInternal         = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

const internalMessage = "internal server error"

func newServiceError(category string, status int, code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       category,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: status,
	}
}

// NewInvalidArgumentError rejects caller input; maps to 400.
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryInvalidArgument, http.StatusBadRequest, code, message, cause)
}

func NewNotFoundError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryNotFound, http.StatusNotFound, code, message, cause)
}

// NewResourceConflictError reports a request that is valid but clashes with the resource's current state.
func NewResourceConflictError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryResourceConflict, http.StatusConflict, code, message, cause)
}

// NewInternalError hides the cause behind a generic message; the cause is only logged.
func NewInternalError(code string, cause error) *ServiceError {
	return newServiceError(categoryInternal, http.StatusInternalServerError, code, internalMessage, cause)
}

func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError is the error shape every handler boundary understands. Code is stable
// across releases; Message is safe to show to API clients.
type ServiceError struct {
	Category       string // invalid_argument, not_found, resource_conflict or internal
	Code           string // service-owned stable code (e.g. RPT_1000)
	Message        string // client-safe, human-readable
	Cause          error  // wrapped underlying error
	HttpStatusCode int    // HTTP status code
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

func (e *ServiceError) IsNotFound() bool {
	return e.Category == categoryNotFound
}

// Reason returns the most specific human-readable description: the cause for internal
// errors, the client message otherwise.
func (e *ServiceError) Reason() string {
	if e.IsInternalError() && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}
