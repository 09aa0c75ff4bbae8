package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/satishbabariya/forte-go/query"
)

// Metrics holds the server's Prometheus collectors. Each server owns its
// registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal *prometheus.CounterVec
	// RequestDuration is the latency of HTTP requests.
	RequestDuration *prometheus.HistogramVec
	// QueryErrors counts failed queries by error kind.
	QueryErrors *prometheus.CounterVec
}

// NewMetrics registers the collectors, including gauges that read the engine's
// readiness and plan cache.
func NewMetrics(engine *query.Engine) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		RequestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forte_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forte_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		QueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forte_query_errors_total",
				Help: "Total number of failed queries by error kind",
			},
			[]string{"kind"},
		),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "forte_catalog_ready",
		Help: "1 once the catalog has been loaded",
	}, func() float64 {
		if engine.Ready() {
			return 1
		}
		return 0
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "forte_plan_cache_entries",
		Help: "Number of compiled query plans in the cache",
	}, func() float64 {
		return float64(engine.CacheStats().Size)
	})
	factory.NewCounterFunc(prometheus.CounterOpts{
		Name: "forte_plan_cache_hits_total",
		Help: "Plan cache hits",
	}, func() float64 {
		return float64(engine.CacheStats().Hits)
	})

	return m
}

// Middleware records request count and latency.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
