// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the organization portal.
var (
	// Counters.
	ReportsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_submitted_total",
			Help: "Total number of reports submitted",
		},
		[]string{"task_category"},
	)

	ReportStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_status_changes_total",
			Help: "Total number of report status transitions",
		},
		[]string{"status"},
	)

	LeaderboardSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_syncs_total",
			Help: "Total leaderboard sync attempts by outcome",
		},
		[]string{"outcome"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total login attempts by result",
		},
		[]string{"result"},
	)

	// Gauges.
	PendingReports = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_reports",
			Help: "Current number of reports awaiting review",
		},
	)

	SchedulerSyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_sync_runs_total",
			Help: "Total scheduled leaderboard re-sync executions",
		},
		[]string{"status"},
	)

	// Histograms.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// RecordReportSubmitted records a newly submitted report.
func RecordReportSubmitted(category string) {
	ReportsSubmittedTotal.WithLabelValues(category).Inc()
}

// RecordStatusChange records a report status transition.
func RecordStatusChange(status string) {
	ReportStatusChangesTotal.WithLabelValues(status).Inc()
}

// RecordLeaderboardSync records a sync attempt outcome.
func RecordLeaderboardSync(outcome string) {
	LeaderboardSyncsTotal.WithLabelValues(outcome).Inc()
}

// RecordLoginAttempt records a login attempt result.
func RecordLoginAttempt(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// SetPendingReports sets the current pending report count.
func SetPendingReports(count int64) {
	PendingReports.Set(float64(count))
}

// RecordSchedulerSyncRun records a scheduled re-sync execution.
func RecordSchedulerSyncRun(status string) {
	SchedulerSyncRunsTotal.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest observes a completed HTTP request.
func ObserveHTTPRequest(method, path, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}
