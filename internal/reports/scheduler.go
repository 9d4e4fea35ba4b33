package reports

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/shared/workerpools"
	"traffic-analytics/internal/stores"
)

const defaultPollInterval = time.Minute

// Scheduler polls for due jobs with a fixed delay between polls and runs each one on
// the worker pool. A job is processed only by the worker whose claim moved it to RUNNING.
//
//go:generate mockgen -source=scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
}

type scheduler struct {
	jobStore     stores.ReportJobStore
	orchestrator Orchestrator
	pool         taskSubmitter
	pollInterval time.Duration
	now          func() time.Time

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

// NewScheduler submits jobs to pool. The caller owns the pool and shuts it down after Stop.
func NewScheduler(jobStore stores.ReportJobStore, orchestrator Orchestrator, pool *workerpools.Pool, pollInterval time.Duration, logger loggers.Logger) Scheduler {
	return newScheduler(jobStore, orchestrator, pool, pollInterval, time.Now, logger)
}

func newScheduler(jobStore stores.ReportJobStore, orchestrator Orchestrator, pool taskSubmitter, pollInterval time.Duration, now func() time.Time, logger loggers.Logger) *scheduler {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &scheduler{
		jobStore:     jobStore,
		orchestrator: orchestrator,
		pool:         pool,
		pollInterval: pollInterval,
		now:          now,
		stopCh:       make(chan struct{}),
		logger:       logger.With().Str(loggers.FieldComponent, "report_scheduler").Logger(),
	}
}

// Start polls once right away, then pollInterval after each poll finishes.
func (s *scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(0)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-timer.C:
				s.poll(ctx)
				timer.Reset(s.pollInterval)
			}
		}
	}()
}

// Stop ends the poll loop. Jobs already submitted keep running on the pool.
func (s *scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *scheduler) poll(ctx context.Context) {
	jobs, err := s.jobStore.FindDue(ctx, s.now())
	if err != nil {
		svcErr := errInternalReportStoreFailed(err)
		metricJobsDueTotal.WithLabelValues(svcErr.Code).Inc()
		s.logger.Error().Err(err).Str(loggers.FieldErrorCode, svcErr.Code).Msg("failed to find due report jobs")
		return
	}
	metricJobsDueTotal.WithLabelValues(metrics.ValueNoError).Add(float64(len(jobs)))
	if len(jobs) == 0 {
		return
	}
	s.logger.Info().Int("jobs", len(jobs)).Msg("due report jobs found")

	for _, job := range jobs {
		err := s.pool.Submit(func(taskCtx context.Context) {
			s.runJob(taskCtx, job)
		})
		if err != nil {
			// The job stays PENDING and is picked up by a later poll.
			s.logger.Warn().Err(err).Int64(loggers.FieldJobID, job.ID).Msg("failed to submit report job")
			return
		}
	}
}

func (s *scheduler) runJob(ctx context.Context, job *models.ReportJob) {
	start := time.Now()
	logger := s.logger.With().Int64(loggers.FieldJobID, job.ID).Logger()
	ctx = logger.WithContext(ctx)

	claimed, err := s.jobStore.ClaimPending(ctx, job.ID)
	if err != nil {
		svcErr := errInternalReportStoreFailed(err)
		metricJobProcessedTotal.WithLabelValues(outcomeSkipped, svcErr.Code).Inc()
		logger.Error().Err(err).Str(loggers.FieldErrorCode, svcErr.Code).Msg("failed to claim report job")
		return
	}
	if !claimed {
		metricJobProcessedTotal.WithLabelValues(outcomeSkipped, metrics.ValueNoError).Inc()
		logger.Info().Msg("report job already claimed")
		return
	}

	running := *job
	running.Status = models.ReportJobRunning
	logger.Info().Str(loggers.FieldJobStatus, string(running.Status)).Msg("report job started")

	err = s.processSafely(ctx, &running)
	if err == nil {
		metricJobProcessedTotal.WithLabelValues(outcomeCompleted, metrics.ValueNoError).Inc()
		metricJobDurationSeconds.WithLabelValues(outcomeCompleted).Observe(time.Since(start).Seconds())
		logger.Info().
			Str(loggers.FieldJobStatus, string(models.ReportJobCompleted)).
			Dur(loggers.FieldDuration, time.Since(start)).
			Msg("report job completed")
		return
	}

	code, reason := failureOf(err)
	metricJobProcessedTotal.WithLabelValues(outcomeFailed, code).Inc()
	metricJobDurationSeconds.WithLabelValues(outcomeFailed).Observe(time.Since(start).Seconds())

	moved, markErr := s.jobStore.MarkFailed(ctx, job.ID, reason)
	if markErr != nil {
		logger.Error().Err(markErr).Msg("failed to mark report job as failed")
	} else if !moved {
		logger.Warn().Msg("report job left RUNNING before it could be marked as failed")
	}
	logger.Error().
		Err(err).
		Str(loggers.FieldErrorCode, code).
		Str(loggers.FieldJobStatus, string(models.ReportJobFailed)).
		Dur(loggers.FieldDuration, time.Since(start)).
		Msg("report job failed")
}

func (s *scheduler) processSafely(ctx context.Context, job *models.ReportJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("report job panic recovered")
			err = svcerrors.NewInternalErrorPanic(fmt.Errorf("%v", r))
		}
	}()
	return s.orchestrator.Process(ctx, job)
}

// failureOf returns the error code and the reason stored on the FAILED job.
func failureOf(err error) (string, string) {
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.Code, svcErr.Reason()
	}
	return svcerrors.NewInternalErrorUndefined(err).Code, err.Error()
}
