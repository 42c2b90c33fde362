package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of handled HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	lookupOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "lookup",
		Name:      "outcomes_total",
		Help:      "Workout lookup outcomes: found, not_found, invalid, unavailable, error.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, lookupOutcomesTotal)
}

// RecordRequest counts one finished HTTP request. The route label is the
// registered pattern, not the raw path.
func RecordRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordLookup counts one workout lookup outcome.
func RecordLookup(outcome string) {
	lookupOutcomesTotal.WithLabelValues(outcome).Inc()
}
