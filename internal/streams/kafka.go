package streams

import (
	"context"
	"strings"

	"traffic-analytics/internal/shared/workerpools"

	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the batch loop depends on.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaMessageWriter is the part of *kafka.Writer the publisher depends on.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// taskSubmitter is satisfied by *workerpools.Pool.
type taskSubmitter interface {
	Submit(task workerpools.Task) error
}

func compressionCodec(name string) kafka.Compression {
	switch strings.ToLower(name) {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return 0
	}
}
