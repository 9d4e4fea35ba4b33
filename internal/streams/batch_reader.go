package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/configs"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"

	"github.com/segmentio/kafka-go"
)

const (
	fetchBackoffMin = time.Second
	fetchBackoffMax = 10 * time.Second
)

// BatchHandler processes one batch of queue records and reports what happened to it.
type BatchHandler interface {
	Consume(ctx context.Context, batch []*models.RawTelemetry) *models.BatchOutcome
}

// BatchReaderOptions configures the consumer loops of a BatchReader.
type BatchReaderOptions struct {
	Topic        string
	Consumers    int
	MaxBatchSize int
	MaxWait      time.Duration
	AckPolicy    AckPolicy
}

//go:generate mockgen -source=batch_reader.go -destination=./mocks/batch_reader_mock.go -package=mocks
type BatchReader interface {
	Start(ctx context.Context)
	Stop()
}

type batchReader struct {
	opts      BatchReaderOptions
	handler   BatchHandler
	newReader func(consumerID int) messageReader

	backoffMin time.Duration
	backoffMax time.Duration

	wg          sync.WaitGroup
	stopOnce    sync.Once
	cancelFetch context.CancelFunc

	logger loggers.Logger
}

// NewKafkaBatchReader returns a BatchReader with one group member per consumer.
// Members of the same group share the topic's partitions between them.
func NewKafkaBatchReader(cfg configs.KafkaConfig, ackPolicy AckPolicy, handler BatchHandler, logger loggers.Logger) BatchReader {
	opts := BatchReaderOptions{
		Topic:        cfg.TelemetryTopic,
		Consumers:    cfg.Consumers,
		MaxBatchSize: cfg.MaxBatchSize,
		MaxWait:      cfg.MaxWait,
		AckPolicy:    ackPolicy,
	}
	return newBatchReader(opts, handler, func(int) messageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     cfg.GroupID,
			Topic:       cfg.TelemetryTopic,
			StartOffset: kafka.FirstOffset,
			MinBytes:    1,
			MaxBytes:    10e6,
			MaxWait:     cfg.MaxWait,
		})
	}, logger)
}

func newBatchReader(opts BatchReaderOptions, handler BatchHandler, newReader func(consumerID int) messageReader, logger loggers.Logger) *batchReader {
	if opts.Consumers < 1 {
		opts.Consumers = 1
	}
	if opts.MaxBatchSize < 1 {
		opts.MaxBatchSize = 1
	}
	if opts.AckPolicy == "" {
		opts.AckPolicy = AckLossy
	}
	return &batchReader{
		opts:       opts,
		handler:    handler,
		newReader:  newReader,
		backoffMin: fetchBackoffMin,
		backoffMax: fetchBackoffMax,
		logger: logger.With().
			Str(loggers.FieldComponent, "batch_reader").
			Str(loggers.FieldTopic, opts.Topic).
			Logger(),
	}
}

// Start spawns the consumer loops. Fetching stops on Stop or when ctx is done;
// a batch already handed to the handler is finished and acknowledged first.
func (r *batchReader) Start(ctx context.Context) {
	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancelFetch = cancel

	for consumerID := 0; consumerID < r.opts.Consumers; consumerID++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.runConsumer(ctx, fetchCtx, consumerID)
		}()
	}
	r.logger.Info().
		Int("consumers", r.opts.Consumers).
		Str("ack_mode", string(r.opts.AckPolicy)).
		Msg("batch reader started")
}

// Stop cancels fetching and waits for in-flight batches to finish.
func (r *batchReader) Stop() {
	r.stopOnce.Do(func() {
		if r.cancelFetch != nil {
			r.cancelFetch()
		}
	})
	r.wg.Wait()
}

func (r *batchReader) runConsumer(ctx, fetchCtx context.Context, consumerID int) {
	logger := r.logger.With().Str(loggers.FieldConsumerID, strconv.Itoa(consumerID)).Logger()
	ctx = logger.WithContext(ctx)

	reader := r.newReader(consumerID)
	defer func() {
		if reader != nil {
			closeReader(logger, reader)
		}
	}()

	backoff := r.backoffMin
	for {
		msgs, err := r.collect(fetchCtx, reader)
		if len(msgs) == 0 {
			if fetchCtx.Err() != nil {
				return
			}
			svcErr := errInternalFetchFailed(err)
			metricBatchFetchedTotal.WithLabelValues(r.opts.Topic, svcErr.Code).Inc()
			logger.Warn().
				Err(err).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Dur("backoff", backoff).
				Msg("fetch failed, backing off")
			if !sleepContext(fetchCtx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, r.backoffMax)
			continue
		}
		backoff = r.backoffMin
		metricBatchFetchedTotal.WithLabelValues(r.opts.Topic, metrics.ValueNoError).Inc()

		if r.handle(ctx, reader, msgs) {
			continue
		}

		// Withheld batch: reopen the reader so delivery resumes from the last committed offset.
		closeReader(logger, reader)
		reader = nil
		if !sleepContext(fetchCtx, r.backoffMin) {
			return
		}
		reader = r.newReader(consumerID)
	}
}

// collect blocks for the first message, then keeps fetching until the batch is
// full or MaxWait has elapsed since the first message arrived.
func (r *batchReader) collect(ctx context.Context, reader messageReader) ([]kafka.Message, error) {
	first, err := reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	msgs := make([]kafka.Message, 0, r.opts.MaxBatchSize)
	msgs = append(msgs, first)

	if r.opts.MaxWait <= 0 {
		return msgs, nil
	}
	waitCtx, cancel := context.WithTimeout(ctx, r.opts.MaxWait)
	defer cancel()
	for len(msgs) < r.opts.MaxBatchSize {
		msg, err := reader.FetchMessage(waitCtx)
		if err != nil {
			break
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// handle runs the handler over one batch and acknowledges it per the ack policy.
// It reports false when the batch was withheld and must be redelivered.
func (r *batchReader) handle(ctx context.Context, reader messageReader, msgs []kafka.Message) bool {
	logger := loggers.Ctx(ctx)
	outcome := r.consumeSafely(ctx, toRawTelemetry(msgs))

	if !r.opts.AckPolicy.ShouldCommit(outcome) {
		metricBatchAckTotal.WithLabelValues(r.opts.Topic, ackWithheld).Inc()
		logger.Warn().
			Str(loggers.FieldBatchID, outcome.BatchID).
			Int(loggers.FieldBatchSize, len(msgs)).
			Msg("batch not acknowledged, awaiting redelivery")
		return false
	}

	if err := reader.CommitMessages(ctx, msgs...); err != nil {
		svcErr := errInternalCommitFailed(err)
		logger.Error().
			Err(err).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Str(loggers.FieldBatchID, outcome.BatchID).
			Msg("commit failed")
		return true
	}
	metricBatchAckTotal.WithLabelValues(r.opts.Topic, ackCommitted).Inc()
	return true
}

func (r *batchReader) consumeSafely(ctx context.Context, batch []*models.RawTelemetry) (outcome *models.BatchOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("batch handler panic recovered")

			var panicErr error
			if err, ok := rec.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", rec)
			}
			outcome = models.NewBatchOutcome("", len(batch))
			outcome.Err = svcerrors.NewInternalErrorPanic(panicErr)
		}
	}()

	outcome = r.handler.Consume(ctx, batch)
	if outcome == nil {
		outcome = models.NewBatchOutcome("", len(batch))
	}
	return outcome
}

func toRawTelemetry(msgs []kafka.Message) []*models.RawTelemetry {
	receivedAt := time.Now().UTC()
	batch := make([]*models.RawTelemetry, 0, len(msgs))
	for _, msg := range msgs {
		batch = append(batch, &models.RawTelemetry{
			Value:      msg.Value,
			Topic:      msg.Topic,
			Partition:  msg.Partition,
			Offset:     msg.Offset,
			ReceivedAt: receivedAt,
		})
	}
	return batch
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func closeReader(logger loggers.Logger, reader messageReader) {
	if err := reader.Close(); err != nil {
		logger.Warn().Err(err).Msg("closing queue reader")
	}
}
