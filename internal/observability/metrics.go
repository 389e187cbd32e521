package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibevault_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibevault_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	rateLimitRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibevault_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
		[]string{"rule"},
	)
	omdbRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibevault_omdb_requests_total",
			Help: "Total number of upstream OMDb lookups.",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		rateLimitRejectionsTotal,
		omdbRequestsTotal,
	)
}

// HTTPMetricsMiddleware records request counts and latencies per route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// IncRateLimitRejection counts a throttled request for the given rule.
func IncRateLimitRejection(rule string) {
	rateLimitRejectionsTotal.WithLabelValues(rule).Inc()
}

// IncOMDBRequest counts an upstream OMDb lookup.
func IncOMDBRequest(kind, outcome string) {
	omdbRequestsTotal.WithLabelValues(kind, outcome).Inc()
}
