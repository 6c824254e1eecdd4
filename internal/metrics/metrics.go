// Package metrics holds the process-wide Prometheus collectors. They
// register on the default registry at init and are served by promhttp on
// /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitloop_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	// Check-in writes by how they were made (set, toggle) and the new state.
	CheckinWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitloop_checkin_writes_total",
			Help: "Total number of ledger cells written",
		},
		[]string{"op", "done"},
	)

	SnapshotLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "habitloop_snapshot_load_duration_seconds",
			Help:    "Time to load a registry and ledger snapshot from the store",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
	)

	ReportBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitloop_report_builds_total",
			Help: "Total number of analytics reports assembled",
		},
		[]string{"report"},
	)
)

// RecordHTTPRequestDuration observes one served request.
func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// IncrementCheckinWrite counts one ledger write.
func IncrementCheckinWrite(op string, done bool) {
	state := "false"
	if done {
		state = "true"
	}
	CheckinWrites.WithLabelValues(op, state).Inc()
}

// RecordSnapshotLoad observes one snapshot read.
func RecordSnapshotLoad(duration time.Duration) {
	SnapshotLoadDuration.Observe(duration.Seconds())
}

// IncrementReportBuild counts one assembled report.
func IncrementReportBuild(report string) {
	ReportBuilds.WithLabelValues(report).Inc()
}
