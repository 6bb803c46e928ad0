package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the prometheus collectors of the asset server.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	ResponseBytesTotal *prometheus.CounterVec
	AssetsLoaded       prometheus.Gauge

	registry *prometheus.Registry
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assets_requests_total",
			Help: "Total number of asset HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assets_request_duration_seconds",
			Help:    "Asset request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		ResponseBytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assets_response_bytes_total",
			Help: "Total number of body bytes sent, per route.",
		}, []string{"route"}),
		AssetsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "assets_loaded",
			Help: "Number of files in the served asset table.",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.ResponseBytesTotal,
		m.AssetsLoaded,
	)

	return m
}

// Middleware counts requests by chi route pattern, method and status.
// Requests that matched no route are labelled "unmatched".
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(wrapped, r)

		// zero when the handler wrote nothing, which net/http sends as 200
		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routeLabel(r)
		statusLabel := strconv.Itoa(status)
		m.RequestsTotal.WithLabelValues(route, r.Method, statusLabel).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, statusLabel).Observe(time.Since(startedAt).Seconds())
		m.ResponseBytesTotal.WithLabelValues(route).Add(float64(wrapped.BytesWritten()))
	})
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}
