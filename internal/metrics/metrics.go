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

	// AssetUpdatesTotal counts update calls by outcome (ok, error, partial_audit_failure).
	AssetUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_updates_total",
			Help: "Total number of asset update calls by outcome",
		},
		[]string{"outcome"},
	)

	// AuditRowsWritten counts history rows appended by the audit writer.
	AuditRowsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_rows_written_total",
			Help: "Total number of audit history rows written",
		},
	)

	// AuditWriteFailures counts failed audit batch inserts. Each one is a
	// persisted asset whose trail is now behind.
	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Total number of failed audit batch inserts after a successful asset write",
		},
	)

	// OpenIssues is the fleet-wide count of open issues, refreshed by the
	// report scheduler.
	OpenIssues = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fleet_open_issues",
			Help: "Number of open issues across all assets",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AssetUpdatesTotal,
			AuditRowsWritten, AuditWriteFailures, OpenIssues)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAssetUpdates increments the update counter for the given outcome.
func IncAssetUpdates(outcome string) {
	AssetUpdatesTotal.WithLabelValues(outcome).Inc()
}

// AddAuditRowsWritten records n appended history rows.
func AddAuditRowsWritten(n int) {
	AuditRowsWritten.Add(float64(n))
}

// IncAuditWriteFailures records one failed audit batch insert.
func IncAuditWriteFailures() {
	AuditWriteFailures.Inc()
}

// SetOpenIssues updates the open-issues gauge.
func SetOpenIssues(n int) {
	OpenIssues.Set(float64(n))
}
