package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. A nil *MetricsService
// is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	toggles         *prometheus.CounterVec
	exports         *prometheus.CounterVec
	trackingBuild   prometheus.Histogram
}

// NewMetricsService registers the tracker's collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "service_log_toggles_total",
		Help: "Service log toggles by resulting state",
	}, []string{"provided"})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exports_total",
		Help: "Generated exports by format and destination",
	}, []string{"format", "destination"})

	trackingBuild := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracking_build_duration_seconds",
		Help:    "Time spent aggregating a tracking view",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(
		requestDuration, requestTotal, toggles, exports, trackingBuild,
		collectors.NewGoCollector(),
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		toggles:         toggles,
		exports:         exports,
		trackingBuild:   trackingBuild,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordToggle counts a service log toggle by its resulting value.
func (m *MetricsService) RecordToggle(provided bool) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(fmt.Sprintf("%t", provided)).Inc()
}

// RecordExport counts a generated export.
func (m *MetricsService) RecordExport(format, destination string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, destination).Inc()
}

// ObserveTrackingBuild records how long an aggregation took.
func (m *MetricsService) ObserveTrackingBuild(duration time.Duration) {
	if m == nil {
		return
	}
	m.trackingBuild.Observe(duration.Seconds())
}
