package http

import (
	"net/http"

	"traffic-analytics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the status and the service error of a response for the middleware chain.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// responseStatus returns the written status, 200 when a handler wrote a body without one.
func responseStatus(w http.ResponseWriter) int {
	if appWriter, ok := w.(*appResponseWriter); ok && appWriter.Status() != 0 {
		return appWriter.Status()
	}
	return http.StatusOK
}

func responseErrorCode(w http.ResponseWriter) string {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return appWriter.ErrorCode()
	}
	return ""
}
