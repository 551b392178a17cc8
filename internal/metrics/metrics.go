// Package metrics defines Prometheus metrics for the admin console.
//
// All metrics are registered with the default prometheus registry and are
// served on /metrics. Names use the console_ prefix, _total for counters and
// _seconds for duration histograms.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// GatewayRequestsTotal counts backend API calls by method and status class.
	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_gateway_requests_total",
			Help: "Total backend API requests by method and status class.",
		},
		[]string{"method", "status"},
	)

	// GatewayRequestSeconds is a histogram of backend API latency by method.
	GatewayRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_gateway_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// ListLoadsTotal counts list page loads by resource and outcome (success, error, stale).
	ListLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_list_loads_total",
			Help: "Total resource list loads by resource and outcome.",
		},
		[]string{"resource", "outcome"},
	)

	// DeletesTotal counts confirmed deletes by resource and outcome (success, error, mismatch).
	DeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_deletes_total",
			Help: "Total confirmed deletes by resource and outcome.",
		},
		[]string{"resource", "outcome"},
	)

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_logins_total",
			Help: "Total login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// LogoutsTotal counts logouts by the outcome of backend invalidation.
	LogoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_logouts_total",
			Help: "Total logouts by backend invalidation outcome.",
		},
		[]string{"backend"},
	)

	// MountedViews is the number of list views currently mounted.
	MountedViews = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_mounted_views",
			Help: "Number of resource list views currently mounted.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		GatewayRequestsTotal,
		GatewayRequestSeconds,
		ListLoadsTotal,
		DeletesTotal,
		LoginsTotal,
		LogoutsTotal,
		MountedViews,
	)
}

// RecordGatewayRequest records one backend call. statusCode 0 means the
// request never got a response.
func RecordGatewayRequest(method string, statusCode int, d time.Duration) {
	GatewayRequestsTotal.WithLabelValues(method, statusClass(statusCode)).Inc()
	GatewayRequestSeconds.WithLabelValues(method).Observe(d.Seconds())
}

func RecordListLoad(resource, outcome string) {
	ListLoadsTotal.WithLabelValues(resource, outcome).Inc()
}

func RecordDelete(resource, outcome string) {
	DeletesTotal.WithLabelValues(resource, outcome).Inc()
}

func RecordLogin(outcome string) {
	LoginsTotal.WithLabelValues(outcome).Inc()
}

func RecordLogout(backendOutcome string) {
	LogoutsTotal.WithLabelValues(backendOutcome).Inc()
}

func statusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
