package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/reports"
	"traffic-analytics/internal/shared/loggers"
)

type createReportHandler struct {
	jobService reports.JobService
}

func NewCreateReportHandler(jobService reports.JobService) AppHttpHandler {
	return &createReportHandler{jobService: jobService}
}

// Handle processes POST /api/reports.
func (h *createReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateReportRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return err
	}

	job, err := h.jobService.Create(r.Context(), &req)
	if err != nil {
		return err
	}

	w.Header().Set("Location", fmt.Sprintf("/api/reports/%d", job.ID))
	writeJSON(w, r, http.StatusCreated, job)
	return nil
}

type listReportsHandler struct {
	jobService reports.JobService
}

func NewListReportsHandler(jobService reports.JobService) AppHttpHandler {
	return &listReportsHandler{jobService: jobService}
}

// Handle processes GET /api/reports?status=.
func (h *listReportsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	status := models.None[models.ReportJobStatus]()
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status = models.Some(models.ReportJobStatus(strings.ToUpper(raw)))
	}

	jobs, err := h.jobService.List(r.Context(), status)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []*models.ReportJob{}
	}

	writeJSON(w, r, http.StatusOK, jobs)
	return nil
}

type getReportHandler struct {
	jobService reports.JobService
}

func NewGetReportHandler(jobService reports.JobService) AppHttpHandler {
	return &getReportHandler{jobService: jobService}
}

// Handle processes GET /api/reports/{id}.
func (h *getReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	job, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, job)
	return nil
}

type deleteReportHandler struct {
	jobService reports.JobService
}

func NewDeleteReportHandler(jobService reports.JobService) AppHttpHandler {
	return &deleteReportHandler{jobService: jobService}
}

// Handle processes DELETE /api/reports/{id}.
func (h *deleteReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.jobService.Delete(r.Context(), id); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

type downloadReportHandler struct {
	jobService reports.JobService
}

func NewDownloadReportHandler(jobService reports.JobService) AppHttpHandler {
	return &downloadReportHandler{jobService: jobService}
}

// Handle processes GET /api/reports/{id}/download and streams the stored document.
func (h *downloadReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	document, err := h.jobService.Download(r.Context(), id)
	if err != nil {
		return err
	}
	defer document.Close()

	w.Header().Set(headerContentType, contentTypeOctetStream)
	w.Header().Set(headerContentDisposition, fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("traffic_report_%d.pdf", id)))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, document); err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Int64(loggers.FieldJobID, id).Msg("report download interrupted")
	}
	return nil
}
