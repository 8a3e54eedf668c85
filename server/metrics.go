package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// calculation outcomes
const (
	outcomeOK             = "ok"
	outcomeInputError     = "input_error"
	outcomeDomainError    = "domain_error"
	outcomeDivisionByZero = "division_by_zero"
	outcomeInternal       = "internal_error"
)

// Metrics bundles prometheus collectors used by the API.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	Calculations       *prometheus.CounterVec
	RateLimitDropped   prometheus.Counter
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "acefficiency_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "acefficiency_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "acefficiency_calculations_total",
			Help: "Total number of efficiency calculations by outcome.",
		}, []string{"outcome"}),
		RateLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acefficiency_ratelimit_dropped_total",
			Help: "Total number of requests dropped by rate limiter.",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.Calculations,
		m.RateLimitDropped,
	)

	return m
}

// Wrap records request count and latency labelled by route template. It sits
// outside the router so unmatched paths (404) and methods (405) are counted
// too, under route "other".
func (m *Metrics) Wrap(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		route := routeTemplate(router, r)
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		router.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		m.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, status).Observe(time.Since(startedAt).Seconds())
	})
}

func routeTemplate(router *mux.Router, r *http.Request) string {
	var match mux.RouteMatch
	if !router.Match(r, &match) || match.Route == nil {
		return "other"
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return "other"
	}
	return tpl
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
