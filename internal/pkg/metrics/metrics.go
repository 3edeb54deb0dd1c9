// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fooddelivery"

// Metrics groups every collector. Create it once per registry.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	Notifications    *prometheus.CounterVec
	TrackingTicks    *prometheus.CounterVec
	TrackingDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Passing a fresh prometheus.NewRegistry
// keeps tests independent of the global registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "total",
			Help:      "Order events handed to the broker, by type and outcome.",
		}, []string{"type", "outcome"}),
		TrackingTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "ticks_total",
			Help:      "Tracking job runs by outcome.",
		}, []string{"outcome"}),
		TrackingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "tick_duration_ms",
			Help:      "Time spent advancing every order on the way, in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.Notifications,
		m.TrackingTicks,
		m.TrackingDuration,
	)
	return m
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

// ObserveTrackingTick records one run of the tracking job.
func (m *Metrics) ObserveTrackingTick(err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.TrackingTicks.WithLabelValues(outcome).Inc()
	m.TrackingDuration.Observe(float64(elapsed.Milliseconds()))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
