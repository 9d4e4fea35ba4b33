package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/dashboards"
	internalhttp "traffic-analytics/internal/http"
	"traffic-analytics/internal/ingestors"
	"traffic-analytics/internal/reports"
	"traffic-analytics/internal/shared/configs"
	"traffic-analytics/internal/shared/filestorages"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/workerpools"
	"traffic-analytics/internal/stores"
	"traffic-analytics/internal/streams"

	"gorm.io/gorm"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	db                 *gorm.DB
	eventPublisher     streams.Publisher
	livePushPool       *workerpools.Pool
	reportPool         *workerpools.Pool
	batchReader        streams.BatchReader
	dashboardPublisher dashboards.Publisher
	reportScheduler    reports.Scheduler

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "traffic-analytics").
		Logger()

	loc, err := time.LoadLocation(config.Aggregation.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", config.Aggregation.Timezone, err)
	}
	ackPolicy, err := streams.NewAckPolicyFromString(config.Ingestion.AckMode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ack policy: %w", err)
	}

	// Initialize stores
	db, err := stores.OpenDatabase(config.Database, appLogger)
	if err != nil {
		return nil, err
	}
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		_ = stores.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	telemetryStore := stores.NewTelemetryStore(db, config.Database.InsertChunkSize)
	reportJobStore := stores.NewReportJobStore(db)
	reportBlobStore := stores.NewReportBlobStore(fileStorage)

	// Initialize outbound pub/sub and owned worker pools
	eventPublisher := streams.NewKafkaPublisher(config.PubSub)
	livePushPool := workerpools.New(workerpools.Options{
		Name:          "live_push",
		Workers:       config.Ingestion.LivePushWorkers,
		QueueCapacity: config.Ingestion.LivePushQueue,
		Policy:        workerpools.Discard,
	}, appLogger)
	reportPool := workerpools.New(workerpools.Options{
		Name:          "report",
		Workers:       config.Reports.Workers,
		QueueCapacity: config.Reports.QueueCapacity,
		Policy:        workerpools.CallerRuns,
	}, appLogger)

	// Initialize ingestion
	batchConsumer := ingestors.NewBatchConsumer(
		ingestors.NewTelemetryDecoder(),
		ingestors.NewBulkPersister(telemetryStore),
		streams.NewLivePusher(livePushPool, eventPublisher, config.PubSub.RawBatchTopic),
	)
	batchReader := streams.NewKafkaBatchReader(config.Kafka, ackPolicy, batchConsumer, appLogger)

	// Initialize aggregation and the live dashboard
	aggregator := aggregators.NewWindowAggregator(telemetryStore, aggregators.Options{
		Location: loc,
		Window:   config.Aggregation.SlidingWindow,
		TopN:     config.Aggregation.TopN,
	})
	telemetryReader := aggregators.NewTelemetryReader(telemetryStore, loc)
	dashboardPublisher := dashboards.NewPublisher(aggregator, eventPublisher, dashboards.Options{
		Topic:    config.PubSub.DashboardTopic,
		Interval: config.Dashboard.Interval,
		Lag:      config.Dashboard.Lag,
	}, appLogger)

	// Initialize reports
	orchestrator := reports.NewOrchestrator(
		telemetryStore,
		reportJobStore,
		reportBlobStore,
		reports.NewAnalyzer(loc),
		reports.NewJSONDocumentRenderer(),
		eventPublisher,
		reports.OrchestratorOptions{Topic: config.PubSub.ReportTopic, TempDir: config.Reports.TempDir},
	)
	reportScheduler := reports.NewScheduler(reportJobStore, orchestrator, reportPool, config.Reports.PollInterval, appLogger)
	jobService := reports.NewJobService(reportJobStore, telemetryStore, reportBlobStore)

	// Initialize http router
	httpLogger := loggers.Component(appLogger, "http")
	router := internalhttp.NewRouter(jobService, aggregator, telemetryReader, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:             config,
		appLogger:          appLogger,
		server:             server,
		db:                 db,
		eventPublisher:     eventPublisher,
		livePushPool:       livePushPool,
		reportPool:         reportPool,
		batchReader:        batchReader,
		dashboardPublisher: dashboardPublisher,
		reportScheduler:    reportScheduler,
	}, nil
}

// Start starts the background activities, then the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting traffic-analytics service on port %d (log_level=%s, telemetry_topic=%s, ack_mode=%s, file_storage_root_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Kafka.TelemetryTopic,
			app.config.Ingestion.AckMode,
			app.config.FileStorage.RootDir)

	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.batchReader.Start(app.backgroundCtx)
	app.dashboardPublisher.Start(app.backgroundCtx)
	app.reportScheduler.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown stops intake first, then drains the pools, then releases the publisher and database.
func (app *App) Shutdown(ctx context.Context) error {
	var errs []error

	// 1) Stop accepting requests
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Stop the background activities; in-flight batches finish and are acknowledged
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.batchReader.Stop()
	app.dashboardPublisher.Stop()
	app.reportScheduler.Stop()
	app.appLogger.Info().Msg("Background activities stopped")

	// 3) Drain the worker pools
	if err := app.livePushPool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("live push pool shutdown failed: %w", err))
	}
	if err := app.reportPool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("report pool shutdown failed: %w", err))
	}

	// 4) Release outbound connections
	if err := app.eventPublisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("publisher close failed: %w", err))
	}
	if err := stores.CloseDatabase(app.db); err != nil {
		errs = append(errs, fmt.Errorf("database close failed: %w", err))
	}
	app.appLogger.Info().Msg("Shutdown complete")

	return errors.Join(errs...)
}
