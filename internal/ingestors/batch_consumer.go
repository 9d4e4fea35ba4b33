package ingestors

import (
	"context"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/shared/ulid"
	"traffic-analytics/internal/streams"
)

// BatchConsumer handles one batch delivered by the queue: live push first, then
// decode and persist. It never decides acknowledgment; the caller does that from
// the returned outcome.
//
//go:generate mockgen -source=batch_consumer.go -destination=./mocks/batch_consumer_mock.go -package=mocks
type BatchConsumer interface {
	Consume(ctx context.Context, batch []*models.RawTelemetry) *models.BatchOutcome
}

type batchConsumer struct {
	decoder    TelemetryDecoder
	persister  BulkPersister
	livePusher streams.LivePusher
	now        func() time.Time
}

func NewBatchConsumer(decoder TelemetryDecoder, persister BulkPersister, livePusher streams.LivePusher) BatchConsumer {
	return &batchConsumer{
		decoder:    decoder,
		persister:  persister,
		livePusher: livePusher,
		now:        time.Now,
	}
}

func (c *batchConsumer) Consume(ctx context.Context, batch []*models.RawTelemetry) *models.BatchOutcome {
	batchID := ulid.NewULID()
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldBatchID, batchID).
		Int(loggers.FieldBatchSize, len(batch)).
		Logger()
	ctx = logger.WithContext(ctx)

	outcome := models.NewBatchOutcome(batchID, len(batch))
	if len(batch) == 0 {
		return outcome
	}

	// 1) live push never waits on persistence
	c.livePusher.Push(ctx, batchID, batch)

	// 2) decode
	events := make([]*models.TelemetryEvent, 0, len(batch))
	positions := make([]int, 0, len(batch))
	for i, raw := range batch {
		event, err := c.decoder.Decode(raw)
		if err != nil {
			code := codeMalformedPayload
			reason := err.Error()
			if svcErr, ok := svcerrors.AsServiceError(err); ok {
				code = svcErr.Code
				reason = svcErr.Message
			}
			outcome.Skip(i, "", reason)
			metricRowsTotal.WithLabelValues(outcomeSkipped, code).Inc()
			logger.Warn().
				Err(err).
				Str(loggers.FieldErrorCode, code).
				Msgf("skipping malformed record %d of batch", i)
			continue
		}
		events = append(events, event)
		positions = append(positions, i)
	}

	// 3) persist synchronously
	if len(events) > 0 {
		outcome.Merge(c.persister.Persist(ctx, batchID, events), positions)
	}

	c.report(logger, outcome, events)
	return outcome
}

// report emits the single per-batch log line and the batch counters.
func (c *batchConsumer) report(logger loggers.Logger, outcome *models.BatchOutcome, events []*models.TelemetryEvent) {
	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(outcome.Err); ok {
		code = svcErr.Code
	}
	metricBatchConsumedTotal.WithLabelValues(code).Inc()

	entry := logger.Info()
	if outcome.Err != nil {
		entry = logger.Error().Err(outcome.Err).Str(loggers.FieldErrorCode, code)
	}
	entry = entry.
		Int("persisted", outcome.Queued).
		Int("skipped", len(outcome.Skipped)).
		Int64("insert_ms", outcome.InsertDuration.Milliseconds())

	if len(events) > 0 {
		latency := c.now().Sub(events[0].CapturedAt)
		metricEndToEndLatencySeconds.WithLabelValues().Observe(latency.Seconds())
		entry = entry.Int64("latency_ms", latency.Milliseconds())
	}
	entry.Msg("telemetry batch consumed")
}
