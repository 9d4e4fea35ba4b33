package reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"traffic-analytics/internal/models"
)

const (
	defaultReportTitle = "Traffic report"
	notAvailable       = "N/A"
	maxAnnotatedImages = 12

	surgeFactor = 2.0
	dropFactor  = 0.3

	conclusionTimeLayout = "2006-01-02 15:04"
)

// Analyzer turns the readings of one report window into the analysis document.
//
//go:generate mockgen -source=analyzer.go -destination=./mocks/analyzer_mock.go -package=mocks
type Analyzer interface {
	// Analyze expects at least one reading, oldest first.
	Analyze(job *models.ReportJob, events []*models.TelemetryEvent) *models.ReportAnalysis
}

type analyzer struct {
	loc *time.Location
}

// NewAnalyzer returns an Analyzer that prints instants in conclusions in loc.
func NewAnalyzer(loc *time.Location) Analyzer {
	if loc == nil {
		loc = time.UTC
	}
	return &analyzer{loc: loc}
}

type cameraStats struct {
	cameraID   string
	cameraName string
	district   string
	total      int64
	readings   int
	lastSeen   time.Time
	// best is the highest-count reading that carries an annotated image.
	best *models.TelemetryEvent
}

func (s *cameraStats) average() float64 {
	return float64(s.total) / float64(s.readings)
}

func (a *analyzer) Analyze(job *models.ReportJob, events []*models.TelemetryEvent) *models.ReportAnalysis {
	var total int64
	districtTotals := make(map[string]int64)
	districtCameras := make(map[string]map[string]struct{})
	vehicleTypes := make(map[string]int64)
	cameras := make(map[string]*cameraStats)
	for _, event := range events {
		total += event.TotalCount
		districtTotals[event.District] += event.TotalCount
		if districtCameras[event.District] == nil {
			districtCameras[event.District] = make(map[string]struct{})
		}
		districtCameras[event.District][event.CameraID] = struct{}{}
		for label, count := range event.VehicleCounts {
			vehicleTypes[label] += count
		}

		stats, ok := cameras[event.CameraID]
		if !ok {
			stats = &cameraStats{cameraID: event.CameraID, cameraName: event.CameraName, district: event.District}
			cameras[event.CameraID] = stats
		}
		stats.total += event.TotalCount
		stats.readings++
		if event.CapturedAt.After(stats.lastSeen) {
			stats.lastSeen = event.CapturedAt
		}
		if url, ok := event.AnnotatedImageURL.Get(); ok && url != "" && (stats.best == nil || event.TotalCount > stats.best.TotalCount) {
			stats.best = event
		}
	}

	cameraTotals := make(map[string]int64, len(cameras))
	for id, stats := range cameras {
		cameraTotals[id] = stats.total
	}
	rankedDistricts := rankCounts(districtTotals)
	rankedCameras := rankCounts(cameraTotals)
	cameraList := sortedCameras(cameras)
	systemAvg := systemAverage(cameraList)
	peak, offPeak := peakHours(events, a.loc)

	analysis := &models.ReportAnalysis{
		ReportTitle:     job.Name,
		StartTime:       job.StartTime,
		EndTime:         job.EndTime,
		IntervalMinutes: job.IntervalMinutes,
		TotalCameras:    len(cameras),
		// Every camera in the window reported at least once; offline detection needs a camera registry.
		ActiveCameras:  len(cameras),
		OfflineCameras: 0,

		TotalVehicles:          total,
		VehicleTypePercentages: percentages(vehicleTypes),
		BusiestDistrict:        busiestName(rankedDistricts),
		QuietestDistrict:       quietestName(rankedDistricts),
		BusiestCamera:          busiestName(rankedCameras),
		QuietestCamera:         quietestName(rankedCameras),

		DistrictAnalyses: districtAnalyses(rankedDistricts, districtCameras, total),
		CameraAnalyses:   cameraAnalyses(cameraList, systemAvg),

		Timeline:          timeline(events, job.IntervalMinutes),
		PeakHour:          peak.hour,
		PeakHourVolume:    peak.count,
		OffPeakHour:       offPeak.hour,
		OffPeakHourVolume: offPeak.count,

		VehicleTypeCounts: rankCounts(vehicleTypes),
		Anomalies:         anomalies(cameraList, systemAvg),
		AnnotatedImages:   annotatedImages(cameraList),
	}
	if analysis.ReportTitle == "" {
		analysis.ReportTitle = defaultReportTitle
	}
	if len(cameras) > 0 {
		analysis.AvgVehiclesPerCamera = round2(float64(total) / float64(len(cameras)))
	}
	analysis.Conclusions = a.conclusions(analysis)
	return analysis
}

func districtAnalyses(ranked []models.EntityCount, districtCameras map[string]map[string]struct{}, total int64) []models.DistrictAnalysis {
	result := make([]models.DistrictAnalysis, 0, len(ranked))
	for _, district := range ranked {
		active := len(districtCameras[district.Name])
		analysis := models.DistrictAnalysis{
			DistrictName:  district.Name,
			TotalVehicles: district.Count,
			ActiveCameras: active,
		}
		if total > 0 {
			analysis.Percentage = round2(float64(district.Count) * 100 / float64(total))
		}
		if active > 0 {
			analysis.AvgVehiclesPerCamera = round2(float64(district.Count) / float64(active))
		}
		result = append(result, analysis)
	}
	return result
}

func cameraAnalyses(cameras []*cameraStats, systemAvg float64) []models.CameraAnalysis {
	result := make([]models.CameraAnalysis, 0, len(cameras))
	for _, stats := range cameras {
		analysis := models.CameraAnalysis{
			CameraID:      stats.cameraID,
			CameraName:    stats.cameraName,
			District:      stats.district,
			TotalVehicles: stats.total,
			Readings:      stats.readings,
			AvgVehicles:   round2(stats.average()),
			AnomalyType:   anomalyType(stats.average(), systemAvg),
		}
		analysis.HasAnomaly = analysis.AnomalyType != ""
		result = append(result, analysis)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalVehicles > result[j].TotalVehicles
	})
	return result
}

// anomalyType flags a camera whose per-reading average is above surgeFactor or below
// dropFactor times the system average. Silent cameras are never flagged as a drop.
func anomalyType(avg, systemAvg float64) string {
	switch {
	case systemAvg <= 0:
		return ""
	case avg > systemAvg*surgeFactor:
		return models.CameraAnomalySurge
	case avg < systemAvg*dropFactor && avg > 0:
		return models.CameraAnomalyDrop
	default:
		return ""
	}
}

func anomalies(cameras []*cameraStats, systemAvg float64) []models.AnomalyEvent {
	result := make([]models.AnomalyEvent, 0)
	for _, stats := range cameras {
		avg := stats.average()
		event := models.AnomalyEvent{
			CameraID:   stats.cameraID,
			CameraName: stats.cameraName,
			DetectedAt: stats.lastSeen,
		}
		switch anomalyType(avg, systemAvg) {
		case models.CameraAnomalySurge:
			event.Type = models.AnomalyTrafficSurge
			event.Description = fmt.Sprintf("traffic %.0f%% above the system average", (avg/systemAvg-1)*100)
			event.Severity = round2(math.Min(1, avg/systemAvg/3))
		case models.CameraAnomalyDrop:
			event.Type = models.AnomalyTrafficDrop
			event.Description = fmt.Sprintf("traffic %.0f%% below the system average", (1-avg/systemAvg)*100)
			event.Severity = round2(math.Min(1, (systemAvg-avg)/systemAvg))
		default:
			continue
		}
		result = append(result, event)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Severity > result[j].Severity
	})
	return result
}

// timeline groups readings into epoch-aligned buckets of intervalMinutes, oldest first.
func timeline(events []*models.TelemetryEvent, intervalMinutes int) []models.TimelineEntry {
	if intervalMinutes < 1 {
		intervalMinutes = 1
	}
	intervalMs := int64(intervalMinutes) * time.Minute.Milliseconds()

	buckets := make(map[int64]*models.TimelineEntry)
	for _, event := range events {
		key := event.CapturedAt.UnixMilli() / intervalMs * intervalMs
		entry, ok := buckets[key]
		if !ok {
			entry = &models.TimelineEntry{
				Timestamp:     time.UnixMilli(key).UTC(),
				ByDistrict:    make(map[string]int64),
				ByVehicleType: make(map[string]int64),
			}
			buckets[key] = entry
		}
		entry.TotalVehicles += event.TotalCount
		entry.ByDistrict[event.District] += event.TotalCount
		for label, count := range event.VehicleCounts {
			entry.ByVehicleType[label] += count
		}
	}

	keys := make([]int64, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	result := make([]models.TimelineEntry, 0, len(keys))
	for _, key := range keys {
		result = append(result, *buckets[key])
	}
	return result
}

type hourVolume struct {
	hour  time.Time
	count int64
}

// peakHours returns the wall-clock hours of loc with the highest and lowest summed counts,
// earliest first on ties. Hours are reported as UTC instants.
func peakHours(events []*models.TelemetryEvent, loc *time.Location) (hourVolume, hourVolume) {
	sums := make(map[int64]int64)
	for _, event := range events {
		sums[models.GranularityHour.Truncate(event.CapturedAt, loc).Unix()] += event.TotalCount
	}
	hours := make([]int64, 0, len(sums))
	for hour := range sums {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i] < hours[j] })

	var peak, offPeak hourVolume
	for i, hour := range hours {
		current := hourVolume{hour: time.Unix(hour, 0).UTC(), count: sums[hour]}
		if i == 0 || current.count > peak.count {
			peak = current
		}
		if i == 0 || current.count < offPeak.count {
			offPeak = current
		}
	}
	return peak, offPeak
}

func annotatedImages(cameras []*cameraStats) []models.AnnotatedImage {
	result := make([]models.AnnotatedImage, 0)
	for _, stats := range cameras {
		if stats.best == nil {
			continue
		}
		result = append(result, models.AnnotatedImage{
			CameraID:     stats.cameraID,
			CameraName:   stats.cameraName,
			ImageURL:     stats.best.AnnotatedImageURL.Value,
			Timestamp:    stats.best.CapturedAt,
			VehicleCount: stats.best.TotalCount,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].VehicleCount > result[j].VehicleCount
	})
	if len(result) > maxAnnotatedImages {
		result = result[:maxAnnotatedImages]
	}
	return result
}

func (a *analyzer) conclusions(analysis *models.ReportAnalysis) []string {
	conclusions := []string{
		fmt.Sprintf("A total of %d vehicles were recorded between %s and %s.",
			analysis.TotalVehicles, a.format(analysis.StartTime), a.format(analysis.EndTime)),
	}

	if analysis.TotalVehicles > 0 && len(analysis.DistrictAnalyses) > 0 {
		busiest := analysis.DistrictAnalyses[0]
		advice := "Traffic was spread fairly evenly across districts."
		if busiest.Percentage > 40 {
			advice = "Closer monitoring and better traffic routing are recommended."
		}
		conclusions = append(conclusions, fmt.Sprintf("%s had the highest traffic with %d vehicles (%.1f%% of total traffic). %s",
			busiest.DistrictName, busiest.TotalVehicles, busiest.Percentage, advice))
	}

	if !analysis.PeakHour.IsZero() && !analysis.PeakHour.Equal(analysis.OffPeakHour) {
		conclusions = append(conclusions, fmt.Sprintf("Peak hour was %s with %d vehicles. Additional traffic coordination is recommended for this time slot.",
			a.format(analysis.PeakHour), analysis.PeakHourVolume))
	}

	if len(analysis.VehicleTypeCounts) > 0 && analysis.TotalVehicles > 0 {
		top := analysis.VehicleTypeCounts[0]
		conclusions = append(conclusions, fmt.Sprintf("The most common vehicle type was %s at %.1f%% of total traffic.",
			top.Name, float64(top.Count)*100/float64(analysis.TotalVehicles)))
	}

	conclusions = append(conclusions, fmt.Sprintf("Each camera recorded %.0f vehicles on average. The system %s.",
		analysis.AvgVehiclesPerCamera, loadStatus(analysis.AvgVehiclesPerCamera)))

	var surges, drops int
	for _, anomaly := range analysis.Anomalies {
		switch anomaly.Type {
		case models.AnomalyTrafficSurge:
			surges++
		case models.AnomalyTrafficDrop:
			drops++
		}
	}
	if surges > 0 {
		conclusions = append(conclusions, fmt.Sprintf("%d cameras showed a traffic surge and should be watched for congestion.", surges))
	}
	if drops > 0 {
		conclusions = append(conclusions, fmt.Sprintf("%d cameras showed an unusual traffic drop and should be checked for incidents.", drops))
	}
	return conclusions
}

func (a *analyzer) format(t time.Time) string {
	return t.In(a.loc).Format(conclusionTimeLayout)
}

func loadStatus(avgPerCamera float64) string {
	switch {
	case avgPerCamera > 2000:
		return "is running under high load"
	case avgPerCamera > 1000:
		return "is running steadily"
	case avgPerCamera > 500:
		return "is running normally"
	case avgPerCamera > 100:
		return "is seeing low traffic"
	default:
		return "recorded very low traffic and should be checked"
	}
}

// rankCounts orders counts descending, ties by name ascending.
func rankCounts(counts map[string]int64) []models.EntityCount {
	result := make([]models.EntityCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, models.EntityCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func busiestName(ranked []models.EntityCount) string {
	if len(ranked) == 0 {
		return notAvailable
	}
	return ranked[0].Name
}

// quietestName picks the lowest count, ties by name ascending.
func quietestName(ranked []models.EntityCount) string {
	if len(ranked) == 0 {
		return notAvailable
	}
	lowest := ranked[len(ranked)-1].Count
	for _, entity := range ranked {
		if entity.Count == lowest {
			return entity.Name
		}
	}
	return notAvailable
}

func percentages(counts map[string]int64) map[string]float64 {
	var total int64
	for _, count := range counts {
		total += count
	}
	result := make(map[string]float64, len(counts))
	if total == 0 {
		return result
	}
	for name, count := range counts {
		result[name] = round2(float64(count) * 100 / float64(total))
	}
	return result
}

func sortedCameras(cameras map[string]*cameraStats) []*cameraStats {
	result := make([]*cameraStats, 0, len(cameras))
	for _, stats := range cameras {
		result = append(result, stats)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].cameraID < result[j].cameraID })
	return result
}

// systemAverage is the mean of per-camera per-reading averages.
func systemAverage(cameras []*cameraStats) float64 {
	if len(cameras) == 0 {
		return 0
	}
	var sum float64
	for _, stats := range cameras {
		sum += stats.average()
	}
	return sum / float64(len(cameras))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
