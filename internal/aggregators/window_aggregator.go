package aggregators

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/stores"
)

const (
	vehicleGroupCar        = "car"
	vehicleGroupMotorcycle = "motorcycle"
	vehicleGroupTruck      = "truck"
	vehicleGroupOther      = "other"
)

// WindowAggregator computes rankings, ratios and series over telemetry in the store.
// It holds no state between calls; every call reads the store again.
//
//go:generate mockgen -source=window_aggregator.go -destination=./mocks/window_aggregator_mock.go -package=mocks
type WindowAggregator interface {
	// Busiest returns the entity with the highest summed count in r, or absent when r has no events.
	Busiest(ctx context.Context, kind models.EntityKind, r models.TimeRange) (models.Optional[models.EntityCount], error)
	// Quietest returns the entity with the lowest summed count in r, or absent when r has no events.
	Quietest(ctx context.Context, kind models.EntityKind, r models.TimeRange) (models.Optional[models.EntityCount], error)
	// FastestGrowingDistricts compares the trailing window with the one before it.
	FastestGrowingDistricts(ctx context.Context) ([]models.DistrictGrowth, error)
	// VehicleTypeRatio returns each vehicle type's share of the trailing window, pedestrians excluded.
	VehicleTypeRatio(ctx context.Context) ([]models.VehicleTypeRatio, error)
	// TopBusiest returns the entities with the highest per-minute count over the trailing window.
	TopBusiest(ctx context.Context, kind models.EntityKind) ([]models.TopTraffic, error)
	// TimeSeries returns one point per bucket of r, zero-filled.
	TimeSeries(ctx context.Context, granularity models.Granularity, r models.TimeRange, filter models.EventFilter) (*models.TimeSeries, error)
	// HourlyDistrictSummary returns vehicle counts per district per bucket of r, zero-filled.
	HourlyDistrictSummary(ctx context.Context, granularity models.Granularity, r models.TimeRange) ([]models.HourlyDistrictSummary, error)
	// DistrictSummary returns total counts and raw detection sums per district over r.
	DistrictSummary(ctx context.Context, r models.TimeRange) ([]models.DistrictSummary, error)
	// TrafficFlow returns the vehicles-per-minute rate of one camera over r.
	TrafficFlow(ctx context.Context, cameraID string, r models.TimeRange) (*models.TrafficFlow, error)
}

// Options configures a WindowAggregator.
type Options struct {
	// Location is the reporting timezone buckets are truncated in.
	Location *time.Location
	// Window is the length of the trailing window, 5 minutes by default.
	Window time.Duration
	// TopN caps ranked results, 5 by default.
	TopN int
}

type windowAggregator struct {
	store  stores.TelemetryStore
	loc    *time.Location
	window time.Duration
	topN   int
	now    func() time.Time
}

func NewWindowAggregator(store stores.TelemetryStore, opts Options) WindowAggregator {
	return newWindowAggregator(store, opts, time.Now)
}

func newWindowAggregator(store stores.TelemetryStore, opts Options, now func() time.Time) *windowAggregator {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Window <= 0 {
		opts.Window = 5 * time.Minute
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	return &windowAggregator{
		store:  store,
		loc:    opts.Location,
		window: opts.Window,
		topN:   opts.TopN,
		now:    now,
	}
}

func (a *windowAggregator) Busiest(ctx context.Context, kind models.EntityKind, r models.TimeRange) (result models.Optional[models.EntityCount], err error) {
	defer func(start time.Time) { observeQuery("busiest", start, err) }(time.Now())
	return a.extreme(ctx, kind, r, func(candidate, best models.EntityCount) bool {
		return candidate.Count > best.Count
	})
}

func (a *windowAggregator) Quietest(ctx context.Context, kind models.EntityKind, r models.TimeRange) (result models.Optional[models.EntityCount], err error) {
	defer func(start time.Time) { observeQuery("quietest", start, err) }(time.Now())
	return a.extreme(ctx, kind, r, func(candidate, best models.EntityCount) bool {
		return candidate.Count < best.Count
	})
}

// extreme picks the entity preferred by better. Ties go to the lexically smallest name.
func (a *windowAggregator) extreme(ctx context.Context, kind models.EntityKind, r models.TimeRange, better func(candidate, best models.EntityCount) bool) (models.Optional[models.EntityCount], error) {
	if err := validateKind(kind); err != nil {
		return models.None[models.EntityCount](), err
	}
	if err := r.Validate(); err != nil {
		return models.None[models.EntityCount](), errInvalidQuery(err.Error(), err)
	}
	counts, err := a.store.SumTotalCount(ctx, kind, r)
	if err != nil {
		return models.None[models.EntityCount](), errInternalTelemetryStoreFailed(err)
	}

	result := models.None[models.EntityCount]()
	for _, candidate := range counts {
		if candidate.Name == "" {
			continue
		}
		if !result.Present || better(candidate, result.Value) ||
			(candidate.Count == result.Value.Count && candidate.Name < result.Value.Name) {
			result = models.Some(candidate)
		}
	}
	return result, nil
}

func (a *windowAggregator) FastestGrowingDistricts(ctx context.Context) (growth []models.DistrictGrowth, err error) {
	defer func(start time.Time) { observeQuery("fastest_growing_districts", start, err) }(time.Now())

	now := a.now()
	current, err := a.countsByName(ctx, models.EntityDistrict, models.Trailing(now, a.window))
	if err != nil {
		return nil, err
	}
	previous, err := a.countsByName(ctx, models.EntityDistrict, models.Trailing(now.Add(-a.window), a.window))
	if err != nil {
		return nil, err
	}

	districts := make(map[string]struct{}, len(current)+len(previous))
	for name := range current {
		districts[name] = struct{}{}
	}
	for name := range previous {
		districts[name] = struct{}{}
	}

	growth = make([]models.DistrictGrowth, 0, len(districts))
	for district := range districts {
		currentAvg := a.perMinute(current[district])
		previousAvg := a.perMinute(previous[district])
		if currentAvg == 0 && previousAvg == 0 {
			continue
		}
		rate := 100.0
		if previousAvg != 0 {
			rate = float64(currentAvg-previousAvg) / float64(previousAvg) * 100
		}
		growth = append(growth, models.DistrictGrowth{
			District:      district,
			GrowthRate:    round2(rate),
			CurrentCount:  currentAvg,
			PreviousCount: previousAvg,
		})
	}

	slices.SortFunc(growth, func(x, y models.DistrictGrowth) int {
		return cmp.Or(cmp.Compare(y.GrowthRate, x.GrowthRate), strings.Compare(x.District, y.District))
	})
	return limit(growth, a.topN), nil
}

func (a *windowAggregator) VehicleTypeRatio(ctx context.Context) (ratios []models.VehicleTypeRatio, err error) {
	defer func(start time.Time) { observeQuery("vehicle_type_ratio", start, err) }(time.Now())

	events, err := a.findEvents(ctx, models.Trailing(a.now(), a.window), models.EventFilter{})
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64)
	var total int64
	for _, event := range events {
		for label, count := range event.VehicleCounts {
			if isPerson(label) {
				continue
			}
			byType[label] += count
			total += count
		}
	}
	if total == 0 {
		return []models.VehicleTypeRatio{}, nil
	}

	ratios = make([]models.VehicleTypeRatio, 0, len(byType))
	for label, count := range byType {
		ratios = append(ratios, models.VehicleTypeRatio{
			VehicleType: label,
			Count:       count,
			Percentage:  round2(float64(count) / float64(total) * 100),
		})
	}
	slices.SortFunc(ratios, func(x, y models.VehicleTypeRatio) int {
		return cmp.Or(cmp.Compare(y.Percentage, x.Percentage), strings.Compare(x.VehicleType, y.VehicleType))
	})
	return ratios, nil
}

func (a *windowAggregator) TopBusiest(ctx context.Context, kind models.EntityKind) (top []models.TopTraffic, err error) {
	defer func(start time.Time) { observeQuery("top_busiest_"+string(kind), start, err) }(time.Now())

	if err := validateKind(kind); err != nil {
		return nil, err
	}
	counts, err := a.store.SumTotalCount(ctx, kind, models.Trailing(a.now(), a.window))
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}

	top = make([]models.TopTraffic, 0, len(counts))
	for _, entity := range counts {
		if entity.Name == "" {
			continue
		}
		if avg := a.perMinute(entity.Count); avg > 0 {
			top = append(top, models.TopTraffic{Name: entity.Name, Count: avg})
		}
	}
	slices.SortFunc(top, func(x, y models.TopTraffic) int {
		return cmp.Or(cmp.Compare(y.Count, x.Count), strings.Compare(x.Name, y.Name))
	})
	return limit(top, a.topN), nil
}

func (a *windowAggregator) TimeSeries(ctx context.Context, granularity models.Granularity, r models.TimeRange, filter models.EventFilter) (series *models.TimeSeries, err error) {
	defer func(start time.Time) { observeQuery("time_series", start, err) }(time.Now())

	buckets, err := a.buckets(granularity, r)
	if err != nil {
		return nil, err
	}
	events, err := a.findEvents(ctx, r, filter)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]int64, len(buckets))
	for _, event := range events {
		totals[granularity.Truncate(event.CapturedAt, a.loc).Unix()] += event.TotalCount
	}

	series = &models.TimeSeries{
		Granularity: granularity,
		Points:      make([]models.TimeSeriesPoint, 0, len(buckets)),
	}
	for _, bucket := range buckets {
		series.Points = append(series.Points, models.TimeSeriesPoint{
			Bucket:     bucket,
			Label:      granularity.FormatBucket(bucket, a.loc),
			TotalCount: totals[bucket.Unix()],
		})
	}
	return series, nil
}

func (a *windowAggregator) HourlyDistrictSummary(ctx context.Context, granularity models.Granularity, r models.TimeRange) (summaries []models.HourlyDistrictSummary, err error) {
	defer func(start time.Time) { observeQuery("hourly_district_summary", start, err) }(time.Now())

	buckets, err := a.buckets(granularity, r)
	if err != nil {
		return nil, err
	}
	events, err := a.findEvents(ctx, r, models.EventFilter{})
	if err != nil {
		return nil, err
	}

	type cellKey struct {
		district string
		bucket   int64
	}
	cells := make(map[cellKey]*models.HourlyDistrictSummary)
	districts := make(map[string]struct{})
	for _, event := range events {
		if event.District == "" {
			continue
		}
		districts[event.District] = struct{}{}
		bucket := granularity.Truncate(event.CapturedAt, a.loc)
		key := cellKey{district: event.District, bucket: bucket.Unix()}
		cell, ok := cells[key]
		if !ok {
			cell = newHourlySummary(event.District, bucket)
			cells[key] = cell
		}
		for label, count := range event.VehicleCounts {
			group, ok := vehicleGroup(label)
			if !ok {
				continue
			}
			cell.TotalCount += count
			cell.DetectionDetailsSummary[group] += count
		}
	}

	names := sortedKeys(districts)
	summaries = make([]models.HourlyDistrictSummary, 0, len(names)*len(buckets))
	for _, bucket := range buckets {
		for _, district := range names {
			if cell, ok := cells[cellKey{district: district, bucket: bucket.Unix()}]; ok {
				summaries = append(summaries, *cell)
				continue
			}
			summaries = append(summaries, *newHourlySummary(district, bucket))
		}
	}
	return summaries, nil
}

func (a *windowAggregator) DistrictSummary(ctx context.Context, r models.TimeRange) (summaries []models.DistrictSummary, err error) {
	defer func(start time.Time) { observeQuery("district_summary", start, err) }(time.Now())

	if err := r.Validate(); err != nil {
		return nil, errInvalidQuery(err.Error(), err)
	}
	events, err := a.findEvents(ctx, r, models.EventFilter{})
	if err != nil {
		return nil, err
	}

	byDistrict := make(map[string]*models.DistrictSummary)
	for _, event := range events {
		if event.District == "" {
			continue
		}
		summary, ok := byDistrict[event.District]
		if !ok {
			summary = &models.DistrictSummary{District: event.District, DetectionDetailsSummary: map[string]int64{}}
			byDistrict[event.District] = summary
		}
		summary.TotalCount += event.TotalCount
		for label, count := range event.VehicleCounts {
			summary.DetectionDetailsSummary[label] += count
		}
	}

	summaries = make([]models.DistrictSummary, 0, len(byDistrict))
	for _, summary := range byDistrict {
		summaries = append(summaries, *summary)
	}
	slices.SortFunc(summaries, func(x, y models.DistrictSummary) int {
		return strings.Compare(x.District, y.District)
	})
	return summaries, nil
}

func (a *windowAggregator) TrafficFlow(ctx context.Context, cameraID string, r models.TimeRange) (flow *models.TrafficFlow, err error) {
	defer func(start time.Time) { observeQuery("traffic_flow", start, err) }(time.Now())

	cameraID = strings.TrimSpace(cameraID)
	if cameraID == "" {
		return nil, errInvalidQuery("camera id is required", nil)
	}
	if err := r.Validate(); err != nil {
		return nil, errInvalidQuery(err.Error(), err)
	}
	events, err := a.findEvents(ctx, r, models.EventFilter{CameraIDs: []string{cameraID}})
	if err != nil {
		return nil, err
	}

	var total int64
	for _, event := range events {
		total += event.TotalCount
	}
	// Whole minutes, at least one.
	minutes := math.Max(1, math.Floor(r.Duration().Minutes()))
	return &models.TrafficFlow{
		CameraID:          cameraID,
		TotalVehicles:     total,
		Minutes:           minutes,
		VehiclesPerMinute: round2(float64(total) / minutes),
	}, nil
}

func (a *windowAggregator) findEvents(ctx context.Context, r models.TimeRange, filter models.EventFilter) ([]*models.TelemetryEvent, error) {
	events, err := a.store.FindEvents(ctx, r, filter)
	if err != nil {
		loggers.Ctx(ctx).Error().
			Err(err).
			Str(loggers.FieldErrorCode, codeInternalTelemetryStoreFailed).
			Msg("telemetry query failed")
		return nil, errInternalTelemetryStoreFailed(err)
	}
	return events, nil
}

func (a *windowAggregator) countsByName(ctx context.Context, kind models.EntityKind, r models.TimeRange) (map[string]int64, error) {
	counts, err := a.store.SumTotalCount(ctx, kind, r)
	if err != nil {
		return nil, errInternalTelemetryStoreFailed(err)
	}
	byName := make(map[string]int64, len(counts))
	for _, entity := range counts {
		if entity.Name != "" {
			byName[entity.Name] += entity.Count
		}
	}
	return byName, nil
}

func (a *windowAggregator) buckets(granularity models.Granularity, r models.TimeRange) ([]time.Time, error) {
	if _, err := models.NewGranularityFromString(string(granularity)); err != nil {
		return nil, errInvalidQuery(err.Error(), err)
	}
	if err := r.Validate(); err != nil {
		return nil, errInvalidQuery(err.Error(), err)
	}
	if n := granularity.BucketCount(r, a.loc); n > models.MaxTimeSeriesBuckets {
		return nil, errInvalidQuery(fmt.Sprintf("range spans %d %s buckets, at most %d are allowed", n, granularity, models.MaxTimeSeriesBuckets), nil)
	}
	return granularity.Buckets(r, a.loc), nil
}

// perMinute averages a window total over the window's minutes, rounded to the nearest integer.
func (a *windowAggregator) perMinute(total int64) int64 {
	return int64(math.Round(float64(total) / a.window.Minutes()))
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func validateKind(kind models.EntityKind) error {
	if _, err := models.NewEntityKindFromString(string(kind)); err != nil {
		return errInvalidQuery(err.Error(), err)
	}
	return nil
}

func newHourlySummary(district string, bucket time.Time) *models.HourlyDistrictSummary {
	return &models.HourlyDistrictSummary{
		District:                district,
		Bucket:                  bucket,
		Hour:                    bucket.Hour(),
		DetectionDetailsSummary: map[string]int64{},
	}
}

// vehicleGroup maps a detector label onto the dashboard's vehicle groups.
// Pedestrians are not vehicles and report false.
func vehicleGroup(label string) (string, bool) {
	switch strings.ToLower(label) {
	case models.VehicleLabelPerson:
		return "", false
	case vehicleGroupCar:
		return vehicleGroupCar, true
	case vehicleGroupMotorcycle:
		return vehicleGroupMotorcycle, true
	case vehicleGroupTruck:
		return vehicleGroupTruck, true
	default:
		return vehicleGroupOther, true
	}
}

func isPerson(label string) bool {
	return strings.EqualFold(label, models.VehicleLabelPerson)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
