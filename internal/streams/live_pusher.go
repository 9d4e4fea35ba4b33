package streams

import (
	"context"
	"encoding/json"
	"time"

	"traffic-analytics/internal/events"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/workerpools"
)

// LivePusher forwards consumed batches to dashboard clients without waiting on the publish.
// Overflow and publish failures are logged and dropped.
//
//go:generate mockgen -source=live_pusher.go -destination=./mocks/live_pusher_mock.go -package=mocks
type LivePusher interface {
	Push(ctx context.Context, batchID string, batch []*models.RawTelemetry)
}

type livePusher struct {
	pool      taskSubmitter
	publisher Publisher
	topic     string
}

func NewLivePusher(pool *workerpools.Pool, publisher Publisher, topic string) LivePusher {
	return newLivePusher(pool, publisher, topic)
}

func newLivePusher(pool taskSubmitter, publisher Publisher, topic string) *livePusher {
	return &livePusher{pool: pool, publisher: publisher, topic: topic}
}

func (p *livePusher) Push(ctx context.Context, batchID string, batch []*models.RawTelemetry) {
	logger := loggers.Ctx(ctx)
	event := &events.RawBatchEvent{
		BatchID:    batchID,
		ReceivedAt: time.Now().UTC(),
		Events:     make([]json.RawMessage, 0, len(batch)),
	}
	for _, raw := range batch {
		// Undecodable records are left to the decoder to report.
		if raw == nil || !json.Valid(raw.Value) {
			continue
		}
		event.Events = append(event.Events, json.RawMessage(raw.Value))
	}
	if len(event.Events) == 0 {
		return
	}

	err := p.pool.Submit(func(taskCtx context.Context) {
		taskCtx = logger.WithContext(taskCtx)
		if err := p.publisher.Publish(taskCtx, p.topic, event); err != nil {
			metricLivePushDroppedTotal.WithLabelValues(p.topic).Inc()
			logger.Warn().
				Err(err).
				Str(loggers.FieldBatchID, batchID).
				Str(loggers.FieldTopic, p.topic).
				Int(loggers.FieldBatchSize, len(event.Events)).
				Msg("live push publish failed")
		}
	})
	if err != nil {
		metricLivePushDroppedTotal.WithLabelValues(p.topic).Inc()
		logger.Warn().
			Err(err).
			Str(loggers.FieldBatchID, batchID).
			Str(loggers.FieldTopic, p.topic).
			Int(loggers.FieldBatchSize, len(batch)).
			Msg("live push dropped")
	}
}
