package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation on a private registry.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	uploadsTotal    prometheus.Counter
	storedTotal     *prometheus.CounterVec
	renderTotal     *prometheus.CounterVec
	renderDuration  prometheus.Observer
	sweptTotal      prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
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

	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total number of accepted HTML uploads",
	})

	storedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artifacts_stored_total",
		Help: "Total artifacts written to the store by kind",
	}, []string{"kind"})

	renderTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "render_requests_total",
		Help: "Total PDF render attempts by outcome",
	}, []string{"outcome"})

	renderDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "render_duration_seconds",
		Help:    "Duration of PDF render calls",
		Buckets: prometheus.DefBuckets,
	})

	sweptTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swept_artifacts_total",
		Help: "Total artifacts evicted by the retention sweeper",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, uploadsTotal, storedTotal, renderTotal, renderDuration, sweptTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		uploadsTotal:    uploadsTotal,
		storedTotal:     storedTotal,
		renderTotal:     renderTotal,
		renderDuration:  renderDuration,
		sweptTotal:      sweptTotal,
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

// RecordUpload counts one accepted upload.
func (m *MetricsService) RecordUpload() {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc()
}

// RecordStored counts one artifact written to the store.
func (m *MetricsService) RecordStored(kind string) {
	if m == nil {
		return
	}
	m.storedTotal.WithLabelValues(kind).Inc()
}

// RecordRender records one render attempt with its outcome and duration.
func (m *MetricsService) RecordRender(ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.renderTotal.WithLabelValues(outcome).Inc()
	m.renderDuration.Observe(duration.Seconds())
}

// RecordSwept counts artifacts evicted by the retention sweeper.
func (m *MetricsService) RecordSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sweptTotal.Add(float64(n))
}
