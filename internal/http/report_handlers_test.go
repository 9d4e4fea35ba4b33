package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	aggregatormocks "traffic-analytics/internal/aggregators/mocks"
	"traffic-analytics/internal/models"
	reportmocks "traffic-analytics/internal/reports/mocks"
	"traffic-analytics/internal/shared/svcerrors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (http.Handler, *reportmocks.MockJobService, *aggregatormocks.MockWindowAggregator) {
	t.Helper()

	router, jobService, aggregator, _ := newTestRouterWithReader(t)
	return router, jobService, aggregator
}

func newTestRouterWithReader(t *testing.T) (http.Handler, *reportmocks.MockJobService, *aggregatormocks.MockWindowAggregator, *aggregatormocks.MockTelemetryReader) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jobService := reportmocks.NewMockJobService(ctrl)
	aggregator := aggregatormocks.NewMockWindowAggregator(ctrl)
	reader := aggregatormocks.NewMockTelemetryReader(ctrl)
	return NewRouter(jobService, aggregator, reader, zerolog.Nop()), jobService, aggregator, reader
}

func serve(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	return errorResponse
}

func completedJob() *models.ReportJob {
	return &models.ReportJob{
		ID:              7,
		Name:            "Morning report",
		StartTime:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC),
		IntervalMinutes: 60,
		Districts:       []string{"D1"},
		Status:          models.ReportJobCompleted,
		FileURL:         models.Some("reports/2025/01/traffic_report_7.pdf"),
		CreatedAt:       time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC),
		ExecuteAt:       time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC),
	}
}

const createReportBody = `{
	"name": "Morning report",
	"startTime": "2025-01-01T00:00:00Z",
	"endTime": "2025-01-01T03:00:00Z",
	"intervalMinutes": 60,
	"districts": ["D1"]
}`

func TestCreateReportHandler_Created(t *testing.T) {
	t.Parallel()

	router, jobService, _ := newTestRouter(t)

	jobService.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.CreateReportRequest) (*models.ReportJob, error) {
			assert.Equal(t, "Morning report", req.Name)
			require.NotNil(t, req.StartTime)
			assert.True(t, req.StartTime.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
			require.NotNil(t, req.IntervalMinutes)
			assert.Equal(t, 60, *req.IntervalMinutes)
			assert.Equal(t, []string{"D1"}, req.Districts)
			assert.Nil(t, req.ExecuteAt)

			job := completedJob()
			job.Status = models.ReportJobPending
			job.FileURL = models.None[string]()
			return job, nil
		})

	rr := serve(router, http.MethodPost, "/api/reports", createReportBody, map[string]string{headerContentType: "application/json; charset=utf-8"})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/reports/7", rr.Header().Get("Location"))
	assert.Equal(t, contentTypeJSON, rr.Header().Get(headerContentType))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "PENDING", body["status"])
	assert.Nil(t, body["fileUrl"])
}

func TestCreateReportHandler_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		contentType  string
		expectedCode string
	}{
		{name: "malformed json", body: `{"name":`, contentType: "application/json", expectedCode: codeInvalidRequestBody},
		{name: "wrong field type", body: `{"intervalMinutes":"sixty"}`, expectedCode: codeInvalidRequestBody},
		{name: "form content type", body: "name=x", contentType: "application/x-www-form-urlencoded", expectedCode: codeUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, _, _ := newTestRouter(t)
			headers := map[string]string{}
			if tt.contentType != "" {
				headers[headerContentType] = tt.contentType
			}

			rr := serve(router, http.MethodPost, "/api/reports", tt.body, headers)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			errorResponse := decodeError(t, rr)
			assert.Equal(t, tt.expectedCode, errorResponse.ErrorCode)
			assert.Equal(t, "invalid_argument", errorResponse.ErrorCategory)
		})
	}
}

func TestCreateReportHandler_ServiceError(t *testing.T) {
	t.Parallel()

	router, jobService, _ := newTestRouter(t)
	jobService.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("RPT_1000", "invalid districts: D9", nil))

	rr := serve(router, http.MethodPost, "/api/reports", createReportBody, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	errorResponse := decodeError(t, rr)
	assert.Equal(t, "RPT_1000", errorResponse.ErrorCode)
	assert.Equal(t, "invalid districts: D9", errorResponse.ErrorDescription)
}

func TestListReportsHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		status   models.Optional[models.ReportJobStatus]
		jobs     []*models.ReportJob
		expected int
	}{
		{name: "all jobs", target: "/api/reports", status: models.None[models.ReportJobStatus](), jobs: []*models.ReportJob{completedJob()}, expected: 1},
		{name: "status filter is case insensitive", target: "/api/reports?status=completed", status: models.Some(models.ReportJobCompleted), jobs: []*models.ReportJob{completedJob()}, expected: 1},
		{name: "empty list", target: "/api/reports?status=FAILED", status: models.Some(models.ReportJobFailed), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, jobService, _ := newTestRouter(t)
			jobService.EXPECT().List(gomock.Any(), tt.status).Return(tt.jobs, nil)

			rr := serve(router, http.MethodGet, tt.target, "", nil)

			require.Equal(t, http.StatusOK, rr.Code)
			var jobs []map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jobs))
			assert.NotNil(t, jobs)
			assert.Len(t, jobs, tt.expected)
		})
	}
}

func TestGetReportHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		setup          func(jobService *reportmocks.MockJobService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "found",
			target: "/api/reports/7",
			setup: func(jobService *reportmocks.MockJobService) {
				jobService.EXPECT().Get(gomock.Any(), int64(7)).Return(completedJob(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not found",
			target: "/api/reports/8",
			setup: func(jobService *reportmocks.MockJobService) {
				jobService.EXPECT().Get(gomock.Any(), int64(8)).
					Return(nil, svcerrors.NewNotFoundError("RPT_1001", "report job 8 not found", nil))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "RPT_1001",
		},
		{
			name:           "non numeric id",
			target:         "/api/reports/abc",
			setup:          func(*reportmocks.MockJobService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   codeInvalidParameter,
		},
		{
			name:           "zero id",
			target:         "/api/reports/0",
			setup:          func(*reportmocks.MockJobService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   codeInvalidParameter,
		},
		{
			name:   "store failure",
			target: "/api/reports/7",
			setup: func(jobService *reportmocks.MockJobService) {
				jobService.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "SYS_9001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, jobService, _ := newTestRouter(t)
			tt.setup(jobService)

			rr := serve(router, http.MethodGet, tt.target, "", nil)

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedCode == "" {
				var job map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &job))
				assert.Equal(t, "reports/2025/01/traffic_report_7.pdf", job["fileUrl"])
				return
			}
			assert.Equal(t, tt.expectedCode, decodeError(t, rr).ErrorCode)
		})
	}
}

func TestDeleteReportHandler(t *testing.T) {
	t.Parallel()

	router, jobService, _ := newTestRouter(t)
	jobService.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)

	rr := serve(router, http.MethodDelete, "/api/reports/7", "", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestDownloadReportHandler_StreamsDocument(t *testing.T) {
	t.Parallel()

	router, jobService, _ := newTestRouter(t)
	jobService.EXPECT().Download(gomock.Any(), int64(7)).
		Return(io.NopCloser(strings.NewReader(`{"job":{"id":7}}`)), nil)

	rr := serve(router, http.MethodGet, "/api/reports/7/download", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, contentTypeOctetStream, rr.Header().Get(headerContentType))
	assert.Equal(t, `attachment; filename="traffic_report_7.pdf"`, rr.Header().Get(headerContentDisposition))
	assert.Equal(t, `{"job":{"id":7}}`, rr.Body.String())
}

func TestDownloadReportHandler_NotCompleted(t *testing.T) {
	t.Parallel()

	router, jobService, _ := newTestRouter(t)
	jobService.EXPECT().Download(gomock.Any(), int64(7)).
		Return(nil, svcerrors.NewResourceConflictError("RPT_1002", "report is RUNNING, not COMPLETED", nil))

	rr := serve(router, http.MethodGet, "/api/reports/7/download", "", nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "RPT_1002", decodeError(t, rr).ErrorCode)
}
