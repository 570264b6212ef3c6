package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RunsTotal counts processing runs by outcome (success, failed).
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Total number of schedule processing runs by outcome",
		},
		[]string{"outcome"},
	)

	// RunDuration tracks how long a full processing run takes.
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_run_duration_seconds",
			Help:    "Duration of schedule processing runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SchedulesScanned counts schedules considered across all runs.
	SchedulesScanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedules_scanned_total",
			Help: "Total number of active schedules scanned",
		},
	)

	// RemindersCreated counts reminder notifications written.
	RemindersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_created_total",
			Help: "Total number of donation reminders created",
		},
	)

	// SchedulesAdvanced counts cadence steps applied.
	SchedulesAdvanced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedules_advanced_total",
			Help: "Total number of schedules rolled forward",
		},
	)

	// ScheduleErrors counts per-schedule processing failures.
	ScheduleErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_errors_total",
			Help: "Total number of per-schedule processing errors",
		},
	)
)

var (
	idPathSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, RunsTotal, RunDuration,
			SchedulesScanned, RemindersCreated, SchedulesAdvanced, ScheduleErrors)
	})
}

// NormalizePath reduces cardinality by replacing numeric and UUID path segments with {id}.
// E.g. /schedules/8f14e45f-... -> /schedules/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordRun records one processing run's outcome and counters.
func RecordRun(outcome string, durationSeconds float64, scanned, reminders, advanced, errors int) {
	RunsTotal.WithLabelValues(outcome).Inc()
	RunDuration.Observe(durationSeconds)
	SchedulesScanned.Add(float64(scanned))
	RemindersCreated.Add(float64(reminders))
	SchedulesAdvanced.Add(float64(advanced))
	ScheduleErrors.Add(float64(errors))
}
