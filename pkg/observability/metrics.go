// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the petclinic server.
package observability

import "github.com/prometheus/client_golang/prometheus"

// apiBuckets defines histogram buckets suited for CRUD request latencies,
// plus a tail wide enough to cover bcrypt verification on login.
var apiBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petclinic_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petclinic_request_duration_seconds",
			Help:    "Request duration",
			Buckets: apiBuckets,
		},
		[]string{"method"},
	)

	// LoginAttemptsTotal counts login attempts by outcome (success, rejected).
	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petclinic_login_attempts_total",
			Help: "Login attempts",
		},
		[]string{"outcome"},
	)

	// TokenValidationsTotal counts bearer token validations by result
	// (valid, invalid).
	TokenValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petclinic_token_validations_total",
			Help: "Token validations",
		},
		[]string{"result"},
	)

	// RequestsDeniedTotal counts requests rejected by the access decision.
	RequestsDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petclinic_requests_denied_total",
			Help: "Requests denied for missing authentication",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		LoginAttemptsTotal,
		TokenValidationsTotal,
		RequestsDeniedTotal,
	)
}
