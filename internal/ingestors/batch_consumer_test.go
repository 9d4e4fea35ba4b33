package ingestors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"traffic-analytics/internal/ingestors"
	ingestormocks "traffic-analytics/internal/ingestors/mocks"
	"traffic-analytics/internal/models"
	streammocks "traffic-analytics/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func telemetryRecord(cameraID string, total int) *models.RawTelemetry {
	return raw(fmt.Sprintf(`{"camera_id":%q,"district":"D1","total_count":%d,"timestamp":1766944980000}`, cameraID, total))
}

func TestBatchConsumer_Consume(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persister := ingestormocks.NewMockBulkPersister(ctrl)
	livePusher := streammocks.NewMockLivePusher(ctrl)
	consumer := ingestors.NewBatchConsumer(ingestors.NewTelemetryDecoder(), persister, livePusher)

	batch := []*models.RawTelemetry{
		telemetryRecord("cam-01", 10),
		raw(`{"camera_id":`),
		telemetryRecord("cam-02", 20),
		telemetryRecord("cam-03", 5),
	}

	var batchID string
	gomock.InOrder(
		livePusher.EXPECT().Push(gomock.Any(), gomock.Any(), batch).
			Do(func(_ context.Context, id string, _ []*models.RawTelemetry) { batchID = id }),
		persister.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Len(3)).
			DoAndReturn(func(_ context.Context, id string, events []*models.TelemetryEvent) *models.BatchOutcome {
				assert.Equal(t, batchID, id, "persist and live push share the batch id")
				assert.Equal(t, []string{"cam-01", "cam-02", "cam-03"}, []string{events[0].CameraID, events[1].CameraID, events[2].CameraID})

				sub := models.NewBatchOutcome(id, len(events))
				sub.Queued = 2
				sub.Skip(2, "cam-03", "coordinates must be finite numbers")
				return sub
			}),
	)

	outcome := consumer.Consume(context.Background(), batch)

	require.NotNil(t, outcome)
	assert.NoError(t, outcome.Err)
	assert.NotEmpty(t, outcome.BatchID)
	assert.Equal(t, batchID, outcome.BatchID)
	assert.Equal(t, 4, outcome.Size)
	assert.Equal(t, 2, outcome.Queued)
	require.Len(t, outcome.Skipped, 2)
	assert.Equal(t, 1, outcome.Skipped[0].Position)
	assert.Equal(t, "invalid json", outcome.Skipped[0].Reason)
	assert.Equal(t, models.RowResult{Position: 3, CameraID: "cam-03", Reason: "coordinates must be finite numbers"}, outcome.Skipped[1])
}

func TestBatchConsumer_Consume_AllMalformed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persister := ingestormocks.NewMockBulkPersister(ctrl)
	livePusher := streammocks.NewMockLivePusher(ctrl)
	consumer := ingestors.NewBatchConsumer(ingestors.NewTelemetryDecoder(), persister, livePusher)

	livePusher.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any())

	outcome := consumer.Consume(context.Background(), []*models.RawTelemetry{raw(``), raw(`[]`)})

	assert.NoError(t, outcome.Err)
	assert.Zero(t, outcome.Queued)
	assert.Len(t, outcome.Skipped, 2)
}

func TestBatchConsumer_Consume_EmptyBatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	consumer := ingestors.NewBatchConsumer(
		ingestormocks.NewMockTelemetryDecoder(ctrl),
		ingestormocks.NewMockBulkPersister(ctrl),
		streammocks.NewMockLivePusher(ctrl),
	)

	outcome := consumer.Consume(context.Background(), nil)

	assert.Zero(t, outcome.Size)
	assert.True(t, outcome.Succeeded())
}

func TestBatchConsumer_Consume_PersistFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	decoder := ingestormocks.NewMockTelemetryDecoder(ctrl)
	persister := ingestormocks.NewMockBulkPersister(ctrl)
	livePusher := streammocks.NewMockLivePusher(ctrl)
	consumer := ingestors.NewBatchConsumer(decoder, persister, livePusher)

	insertErr := errors.New("insert failed")
	decoder.EXPECT().Decode(gomock.Any()).Return(telemetryEvent("cam-01", "D1", 10), nil).Times(2)
	livePusher.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any())
	persister.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, id string, events []*models.TelemetryEvent) *models.BatchOutcome {
			sub := models.NewBatchOutcome(id, len(events))
			sub.Err = insertErr
			return sub
		})

	outcome := consumer.Consume(context.Background(), []*models.RawTelemetry{telemetryRecord("a", 1), telemetryRecord("b", 2)})

	assert.ErrorIs(t, outcome.Err, insertErr)
	assert.False(t, outcome.Succeeded())
	assert.Zero(t, outcome.Queued)
}
