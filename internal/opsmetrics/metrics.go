// Package opsmetrics exposes Prometheus instrumentation for a
// planner run: HTTP middleware for the ops surface, plus counters and
// gauges updated as the outer planning loop progresses.
package opsmetrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiberplan_http_requests_total",
			Help: "Total number of ops-surface HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fiberplan_http_duration_seconds",
			Help:    "Ops-surface HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	ExposuresPlanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fiberplan_exposures_planned_total",
			Help: "Total number of exposures emitted by the outer planning loop.",
		},
	)

	TargetsAssignedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fiberplan_targets_assigned_total",
			Help: "Total number of target assignments across all exposures.",
		},
	)

	FiberUtilizationFraction = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fiberplan_fiber_utilization_fraction",
			Help: "Fraction of the fiber array assigned in the most recent exposure.",
		},
	)

	CoverageFraction = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fiberplan_coverage_fraction",
			Help: "Accumulated target*time observed over total required target*time.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		ExposuresPlanned,
		TargetsAssignedTotal,
		FiberUtilizationFraction,
		CoverageFraction,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each ops request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(r.URL.Path, r.Method).Observe(duration)
	})
}

// RecordExposure updates the exposure-progress metrics after one
// completed exposure.
func RecordExposure(assigned int, fiberFraction, coverageFraction float64) {
	ExposuresPlanned.Inc()
	TargetsAssignedTotal.Add(float64(assigned))
	FiberUtilizationFraction.Set(fiberFraction)
	CoverageFraction.Set(coverageFraction)
}
