package http

import (
	"net/http"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/reports"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	jobService reports.JobService,
	aggregator aggregators.WindowAggregator,
	reader aggregators.TelemetryReader,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Route("/api/reports", func(r chi.Router) {
		r.Post("/", errorHandlingAdapter(NewCreateReportHandler(jobService)))
		r.Get("/", errorHandlingAdapter(NewListReportsHandler(jobService)))
		r.Get("/{id}", errorHandlingAdapter(NewGetReportHandler(jobService)))
		r.Delete("/{id}", errorHandlingAdapter(NewDeleteReportHandler(jobService)))
		r.Get("/{id}/download", errorHandlingAdapter(NewDownloadReportHandler(jobService)))
	})

	router.Route("/api/traffic", func(r chi.Router) {
		r.Get("/timeseries", errorHandlingAdapter(NewTimeSeriesHandler(aggregator)))
		r.Get("/districts/summary", errorHandlingAdapter(NewDistrictSummaryHandler(aggregator)))
		r.Get("/busiest", errorHandlingAdapter(NewBusiestHandler(aggregator)))
		r.Get("/quietest", errorHandlingAdapter(NewQuietestHandler(aggregator)))
		r.Get("/latest", errorHandlingAdapter(NewLatestReadingsHandler(reader)))
		r.Get("/districts", errorHandlingAdapter(NewDistrictsHandler(reader)))
		r.Get("/cameras", errorHandlingAdapter(NewCamerasHandler(reader)))
		r.Get("/cameras/{id}/latest", errorHandlingAdapter(NewCameraLatestHandler(reader)))
		r.Get("/cameras/{id}/peak", errorHandlingAdapter(NewCameraPeakHandler(reader)))
		r.Get("/cameras/{id}/flow", errorHandlingAdapter(NewTrafficFlowHandler(aggregator)))
	})

	router.Get("/metrics", metrics.Handler().ServeHTTP)

	return router
}
