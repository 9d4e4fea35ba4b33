package dashboards

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/events"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/shared/ulid"
	"traffic-analytics/internal/streams"
)

const (
	defaultInterval = time.Minute
	defaultLag      = 2 * time.Minute
)

// Publisher pushes one composite dashboard snapshot per tick. A failed tick is
// logged and skipped; the next tick starts from scratch.
//
//go:generate mockgen -source=publisher.go -destination=./mocks/publisher_mock.go -package=mocks
type Publisher interface {
	Start(ctx context.Context)
	Stop()
}

// Options configures a Publisher.
type Options struct {
	Topic    string
	Interval time.Duration
	// Lag shifts the per-district slice back so late readings are included; 2 minutes by default.
	Lag time.Duration
}

type publisher struct {
	aggregator aggregators.WindowAggregator
	events     streams.Publisher
	opts       Options
	now        func() time.Time

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewPublisher(aggregator aggregators.WindowAggregator, eventPublisher streams.Publisher, opts Options, logger loggers.Logger) Publisher {
	return newPublisher(aggregator, eventPublisher, opts, time.Now, logger)
}

func newPublisher(aggregator aggregators.WindowAggregator, eventPublisher streams.Publisher, opts Options, now func() time.Time, logger loggers.Logger) *publisher {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Lag <= 0 {
		opts.Lag = defaultLag
	}
	return &publisher{
		aggregator: aggregator,
		events:     eventPublisher,
		opts:       opts,
		now:        now,
		stopCh:     make(chan struct{}),
		logger:     logger.With().Str(loggers.FieldComponent, "dashboard_publisher").Logger(),
	}
}

// Start runs the ticker loop on its own goroutine.
func (p *publisher) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.opts.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case <-ticker.C:
				p.runTick(ctx)
			}
		}
	}()
}

// Stop ends the loop and waits for a running tick to finish.
func (p *publisher) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *publisher) runTick(ctx context.Context) {
	start := time.Now()
	logger := p.logger.With().Str(loggers.FieldRequestID, ulid.NewULID()).Logger()
	ctx = logger.WithContext(ctx)

	code := metrics.ValueNoError
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("dashboard tick panic recovered")
			code = svcerrors.NewInternalErrorPanic(fmt.Errorf("%v", r)).Code
		}
		metricTickTotal.WithLabelValues(code).Inc()
		metricTickDurationSeconds.WithLabelValues(code).Observe(time.Since(start).Seconds())
	}()

	if err := p.tick(ctx); err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
		logger.Error().Err(err).Str(loggers.FieldErrorCode, code).Msg("dashboard tick skipped")
		return
	}
	logger.Info().Dur(loggers.FieldDuration, time.Since(start)).Msg("dashboard snapshot published")
}

func (p *publisher) tick(ctx context.Context) error {
	snapshot, err := p.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := p.events.Publish(ctx, p.opts.Topic, &events.DashboardUpdateEvent{DashboardSnapshot: *snapshot}); err != nil {
		return errInternalPublishFailed(err)
	}
	return nil
}

// snapshot builds every view of one tick. Any failing view fails the tick.
func (p *publisher) snapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	now := p.now()

	// Latest whole minute that ended at least Lag ago.
	sliceEnd := now.Add(-p.opts.Lag).Truncate(time.Minute)
	hourly, err := p.aggregator.HourlyDistrictSummary(ctx, models.GranularityMinute, models.HalfOpen(sliceEnd.Add(-time.Minute), sliceEnd))
	if err != nil {
		return nil, errInternalSnapshotFailed("hourly_summary", err)
	}
	growth, err := p.aggregator.FastestGrowingDistricts(ctx)
	if err != nil {
		return nil, errInternalSnapshotFailed("fastest_growing", err)
	}
	ratio, err := p.aggregator.VehicleTypeRatio(ctx)
	if err != nil {
		return nil, errInternalSnapshotFailed("vehicle_ratio", err)
	}
	districts, err := p.aggregator.TopBusiest(ctx, models.EntityDistrict)
	if err != nil {
		return nil, errInternalSnapshotFailed("busiest_districts", err)
	}
	cameras, err := p.aggregator.TopBusiest(ctx, models.EntityCamera)
	if err != nil {
		return nil, errInternalSnapshotFailed("busiest_cameras", err)
	}

	return &models.DashboardSnapshot{
		HourlySummary:    hourly,
		FastestGrowing:   growth,
		VehicleRatio:     ratio,
		BusiestDistricts: districts,
		BusiestCameras:   cameras,
		Timestamp:        p.now().UnixMilli(),
	}, nil
}
