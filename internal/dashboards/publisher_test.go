package dashboards

import (
	"context"
	"errors"
	"testing"
	"time"

	aggregatormocks "traffic-analytics/internal/aggregators/mocks"
	"traffic-analytics/internal/events"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/svcerrors"
	streammocks "traffic-analytics/internal/streams/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var tickAt = time.Date(2025, 12, 28, 18, 10, 30, 0, time.UTC)

func newTestPublisher(ctrl *gomock.Controller, interval time.Duration) (*publisher, *aggregatormocks.MockWindowAggregator, *streammocks.MockPublisher) {
	aggregator := aggregatormocks.NewMockWindowAggregator(ctrl)
	eventPublisher := streammocks.NewMockPublisher(ctrl)
	p := newPublisher(aggregator, eventPublisher, Options{Topic: "dashboard-update", Interval: interval, Lag: 2 * time.Minute},
		func() time.Time { return tickAt }, zerolog.Nop())
	return p, aggregator, eventPublisher
}

func TestPublisher_Tick(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	p, aggregator, eventPublisher := newTestPublisher(ctrl, time.Minute)

	slice := models.HalfOpen(
		time.Date(2025, 12, 28, 18, 7, 0, 0, time.UTC),
		time.Date(2025, 12, 28, 18, 8, 0, 0, time.UTC),
	)
	hourly := []models.HourlyDistrictSummary{{District: "D1", TotalCount: 9}}
	growth := []models.DistrictGrowth{{District: "D1", GrowthRate: 100}}
	ratio := []models.VehicleTypeRatio{{VehicleType: "car", Count: 3, Percentage: 100}}
	districts := []models.TopTraffic{{Name: "D1", Count: 7}}
	cameras := []models.TopTraffic{{Name: "cam-01", Count: 4}}

	aggregator.EXPECT().HourlyDistrictSummary(gomock.Any(), models.GranularityMinute, slice).Return(hourly, nil)
	aggregator.EXPECT().FastestGrowingDistricts(gomock.Any()).Return(growth, nil)
	aggregator.EXPECT().VehicleTypeRatio(gomock.Any()).Return(ratio, nil)
	aggregator.EXPECT().TopBusiest(gomock.Any(), models.EntityDistrict).Return(districts, nil)
	aggregator.EXPECT().TopBusiest(gomock.Any(), models.EntityCamera).Return(cameras, nil)

	var published *events.DashboardUpdateEvent
	eventPublisher.EXPECT().Publish(gomock.Any(), "dashboard-update", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, event events.Event) error {
			published = event.(*events.DashboardUpdateEvent)
			return nil
		})

	require.NoError(t, p.tick(context.Background()))

	require.NotNil(t, published)
	assert.Equal(t, models.DashboardSnapshot{
		HourlySummary:    hourly,
		FastestGrowing:   growth,
		VehicleRatio:     ratio,
		BusiestDistricts: districts,
		BusiestCameras:   cameras,
		Timestamp:        tickAt.UnixMilli(),
	}, published.DashboardSnapshot)
}

func TestPublisher_Tick_FailedViewSkipsPublish(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	p, aggregator, _ := newTestPublisher(ctrl, time.Minute)

	aggregator.EXPECT().HourlyDistrictSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	aggregator.EXPECT().FastestGrowingDistricts(gomock.Any()).Return(nil, errors.New("statement timeout"))

	err := p.tick(context.Background())

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, codeInternalSnapshotFailed, svcErr.Code)
}

func TestPublisher_Tick_PublishFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	p, aggregator, eventPublisher := newTestPublisher(ctrl, time.Minute)

	aggregator.EXPECT().HourlyDistrictSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	aggregator.EXPECT().FastestGrowingDistricts(gomock.Any()).Return(nil, nil)
	aggregator.EXPECT().VehicleTypeRatio(gomock.Any()).Return(nil, nil)
	aggregator.EXPECT().TopBusiest(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	eventPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	err := p.tick(context.Background())

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, codeInternalPublishFailed, svcErr.Code)
}

func TestPublisher_StartStop_KeepsTickingAfterFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	p, aggregator, eventPublisher := newTestPublisher(ctrl, 5*time.Millisecond)

	published := make(chan struct{}, 16)
	gomock.InOrder(
		aggregator.EXPECT().HourlyDistrictSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")),
		aggregator.EXPECT().HourlyDistrictSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes(),
	)
	aggregator.EXPECT().FastestGrowingDistricts(gomock.Any()).Return(nil, nil).AnyTimes()
	aggregator.EXPECT().VehicleTypeRatio(gomock.Any()).Return(nil, nil).AnyTimes()
	aggregator.EXPECT().TopBusiest(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	eventPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, events.Event) error {
			select {
			case published <- struct{}{}:
			default:
			}
			return nil
		}).AnyTimes()

	p.Start(context.Background())

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after a failed tick")
	}
	p.Stop()
	p.Stop()
}
