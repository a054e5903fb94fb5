// Package metrics exposes Prometheus instruments for the HTTP surface and
// the snapshot pipeline. Everything is served from the /metrics endpoint.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics captures low-cardinality HTTP server metrics.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := strings.TrimSpace(c.FullPath())
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// PipelineMetrics captures fact snapshot rebuild activity.
type PipelineMetrics struct {
	rebuilds        prometheus.Counter
	rebuildDuration prometheus.Histogram
	factRows        prometheus.Gauge
}

// NewPipelineMetrics registers the pipeline instruments on the default
// registry.
func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		rebuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "analytics_snapshot_rebuilds_total",
			Help: "Fact snapshot rebuilds since process start.",
		}),
		rebuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "analytics_snapshot_rebuild_duration_seconds",
			Help:    "Fact snapshot rebuild latency.",
			Buckets: prometheus.DefBuckets,
		}),
		factRows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "analytics_fact_rows",
			Help: "Fact rows in the current snapshot.",
		}),
	}
}

// ObserveRebuild records one completed snapshot rebuild.
func (m *PipelineMetrics) ObserveRebuild(elapsed time.Duration, rows int) {
	if m == nil {
		return
	}
	m.rebuilds.Inc()
	m.rebuildDuration.Observe(elapsed.Seconds())
	m.factRows.Set(float64(rows))
}
