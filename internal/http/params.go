package http

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
)

const maxRequestBodyBytes = 1 << 20

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidParameter("id", raw, err)
	}
	return id, nil
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, errMissingParameter(name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errInvalidParameter(name, raw, err)
	}
	return t, nil
}

// queryRange reads the half-open [start, end) range of a traffic query.
func queryRange(r *http.Request) (models.TimeRange, error) {
	start, err := queryTime(r, "start")
	if err != nil {
		return models.TimeRange{}, err
	}
	end, err := queryTime(r, "end")
	if err != nil {
		return models.TimeRange{}, err
	}
	return models.HalfOpen(start, end), nil
}

// queryList splits repeated and comma-separated values of a query parameter.
func queryList(r *http.Request, name string) []string {
	var values []string
	for _, raw := range r.URL.Query()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := contentType(r); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != contentTypeJSON {
			return errUnsupportedContentType(ct)
		}
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return errInvalidRequestBody(err)
	}
	return nil
}

// writeJSON writes a success body. Once the status is sent an encode failure can only be logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Msg("write response body failed")
	}
}
