package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secpars_requests_total",
			Help: "Total number of API requests per route",
		},
		[]string{"route"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "secpars_request_duration_seconds",
			Help:    "API request duration in seconds per route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secpars_predictions_total",
			Help: "Prediction runs by outcome (local_only or merged)",
		},
		[]string{"outcome"},
	)

	OCRScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secpars_ocr_scans_total",
			Help: "Bill scans forwarded to the OCR backend by result",
		},
		[]string{"result"},
	)

	BackendErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secpars_backend_errors_total",
			Help: "Failed calls to remote backends per service",
		},
		[]string{"service"},
	)

	HistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "secpars_history_entries",
			Help: "Current number of entries in the prediction history log",
		},
	)
)

var (
	PruneJobLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "secpars_prune_job_last_run_timestamp",
			Help: "Unix timestamp of the last completed history prune",
		},
	)

	PruneJobLastDurationSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "secpars_prune_job_last_duration_seconds",
			Help: "Duration of the last completed history prune",
		},
	)

	PruneJobFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "secpars_prune_job_failures_total",
			Help: "Total number of failed history prune runs",
		},
	)
)

// UpdatePruneJobMetrics records the outcome of one history prune run
func UpdatePruneJobMetrics(startedAt time.Time, err error) {
	PruneJobLastDurationSeconds.Set(time.Since(startedAt).Seconds())
	PruneJobLastRun.Set(float64(time.Now().Unix()))
	if err != nil {
		PruneJobFailuresTotal.Inc()
	}
}
