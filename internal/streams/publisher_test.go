package streams

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"traffic-analytics/internal/events"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/svcerrors"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	deadline bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, w.deadline = ctx.Deadline()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	pub := newPublisherWithWriter(writer, 5*time.Second)

	event := &events.ReportStatusEvent{
		ReportID:     42,
		Status:       models.ReportJobCompleted,
		DownloadPath: "reports/2025/12/traffic_report_42.pdf",
	}
	require.NoError(t, pub.Publish(context.Background(), "report-status", event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "report-status", msg.Topic)
	assert.Equal(t, "42", string(msg.Key))
	assert.True(t, writer.deadline, "write should be bounded by the configured timeout")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "COMPLETED", decoded["status"])
	assert.Equal(t, "reports/2025/12/traffic_report_42.pdf", decoded["downloadPath"])
}

func TestPublisher_Publish_WriterError(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{err: errors.New("leader not available")}
	pub := newPublisherWithWriter(writer, 0)

	err := pub.Publish(context.Background(), "dashboard", &events.DashboardUpdateEvent{})
	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, codeInternalPublishFailed, svcErr.Code)
	assert.False(t, writer.deadline)
}

func TestCompressionCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want kafka.Compression
	}{
		{"", 0},
		{"none", 0},
		{"gzip", kafka.Gzip},
		{"SNAPPY", kafka.Snappy},
		{"lz4", kafka.Lz4},
		{"zstd", kafka.Zstd},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compressionCodec(tt.name), tt.name)
	}
}
