package streams

import (
	"context"
	"encoding/json"
	"time"

	"traffic-analytics/internal/events"
	"traffic-analytics/internal/shared/configs"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"

	"github.com/segmentio/kafka-go"
)

// Publisher sends notification events to pub/sub topics as JSON.
//
//go:generate mockgen -source=publisher.go -destination=./mocks/publisher_mock.go -package=mocks
type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
	Close() error
}

type publisher struct {
	writer       kafkaMessageWriter
	writeTimeout time.Duration
}

// NewKafkaPublisher returns a Publisher backed by one kafka.Writer shared by all topics.
func NewKafkaPublisher(cfg configs.PubSubConfig) Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Compression:            compressionCodec(cfg.Compression),
		AllowAutoTopicCreation: true,
	}
	return newPublisherWithWriter(writer, time.Duration(cfg.WriteTimeoutSec)*time.Second)
}

func newPublisherWithWriter(writer kafkaMessageWriter, writeTimeout time.Duration) *publisher {
	return &publisher{writer: writer, writeTimeout: writeTimeout}
}

func (p *publisher) Publish(ctx context.Context, topic string, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		svcErr := errInternalEncodeFailed(err)
		metricEventPublishedTotal.WithLabelValues(topic, svcErr.Code).Inc()
		return svcErr
	}

	if p.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.writeTimeout)
		defer cancel()
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(event.Key()),
		Value: payload,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		svcErr := errInternalPublishFailed(topic, err)
		metricEventPublishedTotal.WithLabelValues(topic, svcErr.Code).Inc()
		loggers.Ctx(ctx).Warn().
			Err(err).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Str(loggers.FieldTopic, topic).
			Msg("event publish failed")
		return svcErr
	}
	metricEventPublishedTotal.WithLabelValues(topic, metrics.ValueNoError).Inc()
	return nil
}

func (p *publisher) Close() error {
	return p.writer.Close()
}
