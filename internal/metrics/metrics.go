package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "skillswap_http_requests_total", Help: "Total HTTP requests by method, route and status"},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "skillswap_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	Signups = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "skillswap_signups_total", Help: "Total accounts created"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "skillswap_logins_total", Help: "Total login attempts by result"},
		[]string{"result"},
	)
	RequestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "skillswap_requests_created_total", Help: "Total skill-exchange requests submitted"},
	)
	RequestStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "skillswap_request_status_changes_total", Help: "Total request status changes by new status"},
		[]string{"status"},
	)
	MessagesPosted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "skillswap_messages_posted_total", Help: "Total chat messages posted"},
	)
	ReportsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "skillswap_reports_submitted_total", Help: "Total user reports submitted"},
	)
	UploadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "skillswap_upload_failures_total", Help: "Total failed asset uploads"},
	)
)

var once sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequests, HTTPDuration, Signups, Logins, RequestsCreated,
			RequestStatusChanges, MessagesPosted, ReportsSubmitted, UploadFailures,
		)
	})
}
