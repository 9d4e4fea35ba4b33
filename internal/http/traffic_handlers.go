package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/models"

	"github.com/go-chi/chi/v5"
)

const defaultGranularity = models.GranularityHour

type timeSeriesHandler struct {
	aggregator aggregators.WindowAggregator
}

func NewTimeSeriesHandler(aggregator aggregators.WindowAggregator) AppHttpHandler {
	return &timeSeriesHandler{aggregator: aggregator}
}

// Handle processes GET /api/traffic/timeseries?granularity=&start=&end=&district=&camera_id=.
func (h *timeSeriesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	granularity := defaultGranularity
	if raw := strings.TrimSpace(r.URL.Query().Get("granularity")); raw != "" {
		parsed, err := models.NewGranularityFromString(strings.ToLower(raw))
		if err != nil {
			return errInvalidParameter("granularity", raw, err)
		}
		granularity = parsed
	}
	timeRange, err := queryRange(r)
	if err != nil {
		return err
	}
	filter := models.EventFilter{
		CameraIDs: queryList(r, "camera_id"),
		Districts: queryList(r, "district"),
	}

	series, err := h.aggregator.TimeSeries(r.Context(), granularity, timeRange, filter)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, series)
	return nil
}

type districtSummaryHandler struct {
	aggregator aggregators.WindowAggregator
}

func NewDistrictSummaryHandler(aggregator aggregators.WindowAggregator) AppHttpHandler {
	return &districtSummaryHandler{aggregator: aggregator}
}

// Handle processes GET /api/traffic/districts/summary?start=&end=.
func (h *districtSummaryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	timeRange, err := queryRange(r)
	if err != nil {
		return err
	}

	summaries, err := h.aggregator.DistrictSummary(r.Context(), timeRange)
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []models.DistrictSummary{}
	}

	writeJSON(w, r, http.StatusOK, summaries)
	return nil
}

type trafficFlowHandler struct {
	aggregator aggregators.WindowAggregator
}

func NewTrafficFlowHandler(aggregator aggregators.WindowAggregator) AppHttpHandler {
	return &trafficFlowHandler{aggregator: aggregator}
}

// Handle processes GET /api/traffic/cameras/{id}/flow?start=&end=.
func (h *trafficFlowHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	cameraID := strings.TrimSpace(chi.URLParam(r, "id"))
	if cameraID == "" {
		return errMissingParameter("camera id")
	}
	timeRange, err := queryRange(r)
	if err != nil {
		return err
	}

	flow, err := h.aggregator.TrafficFlow(r.Context(), cameraID, timeRange)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, flow)
	return nil
}

const dateLayout = "2006-01-02"

type rankFunc func(ctx context.Context, kind models.EntityKind, r models.TimeRange) (models.Optional[models.EntityCount], error)

type entityRankingHandler struct {
	rank rankFunc
}

func NewBusiestHandler(aggregator aggregators.WindowAggregator) AppHttpHandler {
	return &entityRankingHandler{rank: aggregator.Busiest}
}

func NewQuietestHandler(aggregator aggregators.WindowAggregator) AppHttpHandler {
	return &entityRankingHandler{rank: aggregator.Quietest}
}

// Handle processes GET /api/traffic/{busiest,quietest}?kind=district|camera&start=&end=.
// An empty range answers 200 with a null entity.
func (h *entityRankingHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	kind := models.EntityDistrict
	if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
		parsed, err := models.NewEntityKindFromString(strings.ToLower(raw))
		if err != nil {
			return errInvalidParameter("kind", raw, err)
		}
		kind = parsed
	}
	timeRange, err := queryRange(r)
	if err != nil {
		return err
	}

	entity, err := h.rank(r.Context(), kind, timeRange)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, &models.EntityRanking{
		Kind:   kind,
		Start:  timeRange.Start,
		End:    timeRange.End,
		Entity: entity,
	})
	return nil
}

type latestReadingsHandler struct {
	reader aggregators.TelemetryReader
}

func NewLatestReadingsHandler(reader aggregators.TelemetryReader) AppHttpHandler {
	return &latestReadingsHandler{reader: reader}
}

// Handle processes GET /api/traffic/latest?district=&date=YYYY-MM-DD.
func (h *latestReadingsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	district := strings.TrimSpace(r.URL.Query().Get("district"))
	day := models.None[time.Time]()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return errInvalidParameter("date", raw, err)
		}
		day = models.Some(parsed)
	}

	readings, err := h.reader.Latest(r.Context(), district, day)
	if err != nil {
		return err
	}
	if readings == nil {
		readings = []models.LatestReading{}
	}

	writeJSON(w, r, http.StatusOK, readings)
	return nil
}

type cameraLatestHandler struct {
	reader aggregators.TelemetryReader
}

func NewCameraLatestHandler(reader aggregators.TelemetryReader) AppHttpHandler {
	return &cameraLatestHandler{reader: reader}
}

// Handle processes GET /api/traffic/cameras/{id}/latest.
func (h *cameraLatestHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	cameraID := strings.TrimSpace(chi.URLParam(r, "id"))
	if cameraID == "" {
		return errMissingParameter("camera id")
	}

	event, err := h.reader.CameraLatest(r.Context(), cameraID)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, event)
	return nil
}

type cameraPeakHandler struct {
	reader aggregators.TelemetryReader
}

func NewCameraPeakHandler(reader aggregators.TelemetryReader) AppHttpHandler {
	return &cameraPeakHandler{reader: reader}
}

// Handle processes GET /api/traffic/cameras/{id}/peak.
func (h *cameraPeakHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	cameraID := strings.TrimSpace(chi.URLParam(r, "id"))
	if cameraID == "" {
		return errMissingParameter("camera id")
	}

	peak, err := h.reader.CameraPeak(r.Context(), cameraID)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, peak)
	return nil
}

type districtsHandler struct {
	reader aggregators.TelemetryReader
}

func NewDistrictsHandler(reader aggregators.TelemetryReader) AppHttpHandler {
	return &districtsHandler{reader: reader}
}

func (h *districtsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	districts, err := h.reader.Districts(r.Context())
	if err != nil {
		return err
	}
	if districts == nil {
		districts = []models.DistrictInfo{}
	}

	writeJSON(w, r, http.StatusOK, districts)
	return nil
}

type camerasHandler struct {
	reader aggregators.TelemetryReader
}

func NewCamerasHandler(reader aggregators.TelemetryReader) AppHttpHandler {
	return &camerasHandler{reader: reader}
}

// Handle processes GET /api/traffic/cameras?district=.
func (h *camerasHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	cameras, err := h.reader.Cameras(r.Context(), strings.TrimSpace(r.URL.Query().Get("district")))
	if err != nil {
		return err
	}
	if cameras == nil {
		cameras = []models.CameraInfo{}
	}

	writeJSON(w, r, http.StatusOK, cameras)
	return nil
}
