package reports

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"traffic-analytics/internal/events"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/stores"
	"traffic-analytics/internal/streams"
)

// Orchestrator runs the pipeline of one claimed (RUNNING) job: fetch, analyze, render,
// upload, complete and notify. A returned error means the job must be marked FAILED.
//
//go:generate mockgen -source=orchestrator.go -destination=./mocks/orchestrator_mock.go -package=mocks
type Orchestrator interface {
	Process(ctx context.Context, job *models.ReportJob) error
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	// Topic receives one ReportStatusEvent per completed job.
	Topic string
	// TempDir holds rendered documents until upload; empty means os.TempDir.
	TempDir string
}

type orchestrator struct {
	telemetryStore stores.TelemetryStore
	jobStore       stores.ReportJobStore
	blobStore      stores.ReportBlobStore
	analyzer       Analyzer
	renderer       DocumentRenderer
	publisher      streams.Publisher
	opts           OrchestratorOptions
	now            func() time.Time
}

func NewOrchestrator(
	telemetryStore stores.TelemetryStore,
	jobStore stores.ReportJobStore,
	blobStore stores.ReportBlobStore,
	analyzer Analyzer,
	renderer DocumentRenderer,
	publisher streams.Publisher,
	opts OrchestratorOptions,
) Orchestrator {
	return &orchestrator{
		telemetryStore: telemetryStore,
		jobStore:       jobStore,
		blobStore:      blobStore,
		analyzer:       analyzer,
		renderer:       renderer,
		publisher:      publisher,
		opts:           opts,
		now:            time.Now,
	}
}

func (o *orchestrator) Process(ctx context.Context, job *models.ReportJob) error {
	logger := loggers.Ctx(ctx)

	readings, err := o.telemetryStore.FindEvents(ctx, job.Range(), job.Filter())
	if err != nil {
		return errInternalTelemetryStoreFailed(err)
	}
	if len(readings) == 0 {
		return errNoData(job.Range())
	}
	logger.Info().Int("readings", len(readings)).Msg("report data collected")

	analysis := o.analyzer.Analyze(job, readings)

	path, err := o.renderAndUpload(ctx, job, analysis)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("report document uploaded")

	moved, err := o.jobStore.MarkCompleted(ctx, job.ID, path)
	if err != nil {
		o.discardDocument(ctx, path)
		return errInternalReportStoreFailed(err)
	}
	if !moved {
		o.discardDocument(ctx, path)
		return errInternalJobNotRunning(job.ID)
	}

	// The job is already COMPLETED here, so a lost notification does not fail it.
	notification := &events.ReportStatusEvent{
		ReportID:     job.ID,
		Status:       models.ReportJobCompleted,
		DownloadPath: downloadPath(job.ID),
	}
	if err := o.publisher.Publish(ctx, o.opts.Topic, notification); err != nil {
		logger.Warn().Err(err).Msg("failed to publish report completion")
	}
	return nil
}

// renderAndUpload renders into a temp file and uploads it. The temp file is removed on every path.
func (o *orchestrator) renderAndUpload(ctx context.Context, job *models.ReportJob, analysis *models.ReportAnalysis) (string, error) {
	file, err := os.CreateTemp(o.opts.TempDir, fmt.Sprintf("traffic_report_%d_*.pdf", job.ID))
	if err != nil {
		return "", errInternalRenderFailed(err)
	}
	defer func() {
		_ = file.Close()
		if err := os.Remove(file.Name()); err != nil && !os.IsNotExist(err) {
			loggers.Ctx(ctx).Warn().Err(err).Str("path", file.Name()).Msg("failed to remove temp report file")
		}
	}()

	if err := o.renderer.Render(ctx, job, analysis, file); err != nil {
		return "", errInternalRenderFailed(err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", errInternalRenderFailed(err)
	}

	path, err := o.blobStore.Upload(ctx, job.ID, o.now(), file)
	if err != nil {
		return "", errInternalBlobStoreFailed(err)
	}
	return path, nil
}

// discardDocument removes an uploaded document whose job did not reach COMPLETED.
func (o *orchestrator) discardDocument(ctx context.Context, path string) {
	if err := o.blobStore.Delete(ctx, path); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to discard report document")
	}
}

func downloadPath(id int64) string {
	return fmt.Sprintf("/api/reports/%d/download", id)
}
