package reports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"traffic-analytics/internal/events"
	"traffic-analytics/internal/models"
	reportmocks "traffic-analytics/internal/reports/mocks"
	"traffic-analytics/internal/shared/filestorages"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/stores"
	storemocks "traffic-analytics/internal/stores/mocks"
	"traffic-analytics/internal/stores/storetest"
	streammocks "traffic-analytics/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var completedAt = time.Date(2025, 1, 15, 4, 0, 0, 0, time.UTC)

type orchestratorFixture struct {
	orchestrator *orchestrator
	jobStore     *storemocks.MockReportJobStore
	publisher    *streammocks.MockPublisher
	tempDir      string
}

func newOrchestratorFixture(t *testing.T, ctrl *gomock.Controller, telemetry stores.TelemetryStore, blobStore stores.ReportBlobStore, renderer DocumentRenderer) *orchestratorFixture {
	t.Helper()

	fixture := &orchestratorFixture{
		jobStore:  storemocks.NewMockReportJobStore(ctrl),
		publisher: streammocks.NewMockPublisher(ctrl),
		tempDir:   t.TempDir(),
	}
	fixture.orchestrator = NewOrchestrator(telemetry, fixture.jobStore, blobStore, NewAnalyzer(ictZone), renderer, fixture.publisher,
		OrchestratorOptions{Topic: "report-status", TempDir: fixture.tempDir}).(*orchestrator)
	fixture.orchestrator.now = func() time.Time { return completedAt }
	return fixture
}

func newFileBlobStore(t *testing.T) stores.ReportBlobStore {
	t.Helper()
	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return stores.NewReportBlobStore(fileStorage)
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp report files must be removed")
}

func TestOrchestrator_Process_CompletesAndDownloads(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	blobStore := newFileBlobStore(t)
	fixture := newOrchestratorFixture(t, ctrl, storetest.NewTelemetryStore(sampleReadings()...), blobStore, NewJSONDocumentRenderer())

	job := sampleJob()
	const path = "reports/2025/01/traffic_report_42.pdf"

	gomock.InOrder(
		fixture.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), path).Return(true, nil),
		fixture.publisher.EXPECT().Publish(gomock.Any(), "report-status", &events.ReportStatusEvent{
			ReportID:     42,
			Status:       models.ReportJobCompleted,
			DownloadPath: "/api/reports/42/download",
		}).Return(nil),
	)

	require.NoError(t, fixture.orchestrator.Process(context.Background(), job))
	assertEmptyDir(t, fixture.tempDir)

	// The stored document is served back through the job service.
	service, jobStore, _ := newTestJobService(ctrl, storetest.NewTelemetryStore())
	service.blobStore = blobStore
	completed := *job
	completed.Status = models.ReportJobCompleted
	completed.FileURL = models.Some(path)
	jobStore.EXPECT().Get(gomock.Any(), int64(42)).Return(&completed, nil)

	reader, err := service.Download(context.Background(), 42)
	require.NoError(t, err)
	defer reader.Close()

	var document struct {
		Job      models.ReportJob      `json:"job"`
		Analysis models.ReportAnalysis `json:"analysis"`
	}
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &document))
	assert.Equal(t, int64(42), document.Job.ID)
	assert.Equal(t, "Morning report", document.Analysis.ReportTitle)
	assert.Equal(t, int64(500), document.Analysis.TotalVehicles)
	assert.Equal(t, "D1", document.Analysis.BusiestDistrict)
}

func TestOrchestrator_Process_NoData(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	blobStore := storemocks.NewMockReportBlobStore(ctrl)
	renderer := reportmocks.NewMockDocumentRenderer(ctrl)
	// D1 has telemetry, just none inside the report window.
	telemetry := storetest.NewTelemetryStore(reading("cam-01", "D1", at(5, 0), 12, nil, ""))
	fixture := newOrchestratorFixture(t, ctrl, telemetry, blobStore, renderer)

	err := fixture.orchestrator.Process(context.Background(), sampleJob())

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeNoData, svcErr.Code)
	assert.Contains(t, svcErr.Reason(), "no data")
}

func TestOrchestrator_Process_UsesCameraFilterFirst(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	telemetry := storemocks.NewMockTelemetryStore(ctrl)
	fixture := newOrchestratorFixture(t, ctrl, telemetry, storemocks.NewMockReportBlobStore(ctrl), reportmocks.NewMockDocumentRenderer(ctrl))

	job := sampleJob()
	job.Cameras = []string{"cam-01"}
	telemetry.EXPECT().FindEvents(gomock.Any(), job.Range(), models.EventFilter{CameraIDs: []string{"cam-01"}}).Return(nil, nil)

	err := fixture.orchestrator.Process(context.Background(), job)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeNoData, svcErr.Code)
}

func TestOrchestrator_Process_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(f *orchestratorFixture, blobStore *storemocks.MockReportBlobStore, renderer *reportmocks.MockDocumentRenderer)
		code  string
	}{
		{
			name: "render fails",
			setup: func(_ *orchestratorFixture, _ *storemocks.MockReportBlobStore, renderer *reportmocks.MockDocumentRenderer) {
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("font missing"))
			},
			code: codeInternalRenderFailed,
		},
		{
			name: "upload fails",
			setup: func(_ *orchestratorFixture, blobStore *storemocks.MockReportBlobStore, renderer *reportmocks.MockDocumentRenderer) {
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				blobStore.EXPECT().Upload(gomock.Any(), int64(42), completedAt, gomock.Any()).Return("", stores.ErrReportFileAlreadyExists)
			},
			code: codeInternalBlobStoreFailed,
		},
		{
			name: "mark completed fails",
			setup: func(f *orchestratorFixture, blobStore *storemocks.MockReportBlobStore, renderer *reportmocks.MockDocumentRenderer) {
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				blobStore.EXPECT().Upload(gomock.Any(), int64(42), completedAt, gomock.Any()).Return("reports/2025/01/traffic_report_42.pdf", nil)
				f.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), gomock.Any()).Return(false, errors.New("deadlock detected"))
				blobStore.EXPECT().Delete(gomock.Any(), "reports/2025/01/traffic_report_42.pdf").Return(nil)
			},
			code: codeInternalReportStoreFailed,
		},
		{
			name: "job no longer running",
			setup: func(f *orchestratorFixture, blobStore *storemocks.MockReportBlobStore, renderer *reportmocks.MockDocumentRenderer) {
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				blobStore.EXPECT().Upload(gomock.Any(), int64(42), completedAt, gomock.Any()).Return("reports/2025/01/traffic_report_42.pdf", nil)
				f.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), gomock.Any()).Return(false, nil)
				blobStore.EXPECT().Delete(gomock.Any(), "reports/2025/01/traffic_report_42.pdf").Return(nil)
			},
			code: codeInternalJobNotRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			blobStore := storemocks.NewMockReportBlobStore(ctrl)
			renderer := reportmocks.NewMockDocumentRenderer(ctrl)
			fixture := newOrchestratorFixture(t, ctrl, storetest.NewTelemetryStore(sampleReadings()...), blobStore, renderer)
			tt.setup(fixture, blobStore, renderer)

			err := fixture.orchestrator.Process(context.Background(), sampleJob())

			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError, got %v", err)
			assert.Equal(t, tt.code, svcErr.Code)
			assertEmptyDir(t, fixture.tempDir)
		})
	}
}

func TestOrchestrator_Process_MarkCompletedFailureRemovesDocument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	blobStore := newFileBlobStore(t)
	fixture := newOrchestratorFixture(t, ctrl, storetest.NewTelemetryStore(sampleReadings()...), blobStore, NewJSONDocumentRenderer())

	var uploaded string
	fixture.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, path string) (bool, error) {
			uploaded = path
			return false, errors.New("deadlock detected")
		})

	err := fixture.orchestrator.Process(context.Background(), sampleJob())

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInternalReportStoreFailed, svcErr.Code)
	require.NotEmpty(t, uploaded)
	_, err = blobStore.Open(context.Background(), uploaded)
	assert.ErrorIs(t, err, stores.ErrReportFileNotFound)
}

func TestOrchestrator_Process_DiscardFailureKeepsOriginalError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	blobStore := storemocks.NewMockReportBlobStore(ctrl)
	renderer := reportmocks.NewMockDocumentRenderer(ctrl)
	fixture := newOrchestratorFixture(t, ctrl, storetest.NewTelemetryStore(sampleReadings()...), blobStore, renderer)

	path := "reports/2025/01/traffic_report_42.pdf"
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	blobStore.EXPECT().Upload(gomock.Any(), int64(42), completedAt, gomock.Any()).Return(path, nil)
	fixture.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), path).Return(false, nil)
	blobStore.EXPECT().Delete(gomock.Any(), path).Return(errors.New("permission denied"))

	err := fixture.orchestrator.Process(context.Background(), sampleJob())

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInternalJobNotRunning, svcErr.Code)
}

func TestOrchestrator_Process_TelemetryStoreFails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	telemetry := storetest.NewTelemetryStore()
	telemetry.Err = errors.New("connection reset")
	fixture := newOrchestratorFixture(t, ctrl, telemetry, storemocks.NewMockReportBlobStore(ctrl), reportmocks.NewMockDocumentRenderer(ctrl))

	err := fixture.orchestrator.Process(context.Background(), sampleJob())

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInternalTelemetryStoreFailed, svcErr.Code)
	assert.Contains(t, svcErr.Reason(), "connection reset")
}

func TestOrchestrator_Process_PublishFailureKeepsJobCompleted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fixture := newOrchestratorFixture(t, ctrl, storetest.NewTelemetryStore(sampleReadings()...), newFileBlobStore(t), NewJSONDocumentRenderer())

	fixture.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	fixture.publisher.EXPECT().Publish(gomock.Any(), "report-status", gomock.Any()).Return(errors.New("broker unavailable"))

	assert.NoError(t, fixture.orchestrator.Process(context.Background(), sampleJob()))
	assertEmptyDir(t, fixture.tempDir)
}

func TestOrchestrator_Process_RendersIntoUploadedFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	blobStore := storemocks.NewMockReportBlobStore(ctrl)
	renderer := reportmocks.NewMockDocumentRenderer(ctrl)
	fixture := newOrchestratorFixture(t, ctrl, storetest.NewTelemetryStore(sampleReadings()...), blobStore, renderer)

	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *models.ReportJob, analysis *models.ReportAnalysis, w io.Writer) error {
			assert.Equal(t, int64(42), job.ID)
			assert.Equal(t, int64(500), analysis.TotalVehicles)
			_, err := io.WriteString(w, "%PDF-1.4 rendered")
			return err
		})
	blobStore.EXPECT().Upload(gomock.Any(), int64(42), completedAt, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ time.Time, r io.Reader) (string, error) {
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.4 rendered", string(content))
			return "reports/2025/01/traffic_report_42.pdf", nil
		})
	fixture.jobStore.EXPECT().MarkCompleted(gomock.Any(), int64(42), "reports/2025/01/traffic_report_42.pdf").Return(true, nil)
	fixture.publisher.EXPECT().Publish(gomock.Any(), "report-status", gomock.Any()).Return(nil)

	require.NoError(t, fixture.orchestrator.Process(context.Background(), sampleJob()))
}
