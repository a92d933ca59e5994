package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardio/cardio/internal/platform/apperror"
)

const namespace = "cardio"

// Metrics owns a private Prometheus registry and the collectors the service
// exports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	patientDataAccesses *prometheus.CounterVec
	seededRecords       *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		patientDataAccesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "patient_data_requests_total",
				Help:      "Patient-data reads observed by the access tracker",
			},
			[]string{"resource"},
		),
		seededRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "seeded_records",
				Help:      "Records loaded into the in-memory stores at startup",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.patientDataAccesses,
		m.seededRecords,
	)
	return m
}

// ObservePatientAccess counts one tracked read of the given resource kind.
func (m *Metrics) ObservePatientAccess(resource string) {
	m.patientDataAccesses.WithLabelValues(resource).Inc()
}

// SetSeeded records how many records of a kind were loaded.
func (m *Metrics) SetSeeded(kind string, n int) {
	m.seededRecords.WithLabelValues(kind).Set(float64(n))
}

// Middleware records request count and latency by route template so that
// patient ids never become label values.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = apperror.NewProblem(err, "").Status
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.httpRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.httpRequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
