package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label names shared across subsystems.
const (
	FieldErrorCode = "error_code"
	FieldOutcome   = "outcome"

	ValueNoError = ""
)

const (
	Namespace = "traffic_analytics"

	SubIngestion   = "ingestion"
	SubAggregation = "aggregation"
	SubDashboard   = "dashboard"
	SubReport      = "report"
	SubStream      = "stream"
	SubHTTP        = "http"
	SubWorkerPool  = "workerpool"
)

type (
	CounterOpts   = prometheus.CounterOpts
	HistogramOpts = prometheus.HistogramOpts
)

var DefBuckets = prometheus.DefBuckets

// Collectors built here register with the default registry, which Handler serves.
var (
	NewCounterVec   = promauto.NewCounterVec
	NewHistogramVec = promauto.NewHistogramVec
)

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
