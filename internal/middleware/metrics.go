package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	dictionaryLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictionary_lookups_total",
			Help: "Total number of dictionary lookups",
		},
		[]string{"provider", "cache_hit"},
	)

	providerQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_query_duration_seconds",
			Help:    "Upstream provider query duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "status"},
	)

	cacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of expired cache entries removed",
		},
	)
)

// MetricsMiddleware collects Prometheus metrics for every HTTP request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordLookup counts one dictionary lookup and whether the cache answered it.
func RecordLookup(provider string, cacheHit bool) {
	hit := "false"
	if cacheHit {
		hit = "true"
	}
	dictionaryLookupsTotal.WithLabelValues(provider, hit).Inc()
}

// RecordProviderQuery records one upstream query and its duration.
func RecordProviderQuery(provider string, found bool, duration time.Duration) {
	status := "miss"
	if found {
		status = "found"
	}
	providerQueryDuration.WithLabelValues(provider, status).Observe(duration.Seconds())
}

// RecordEvictions counts entries removed by a cleanup pass.
func RecordEvictions(n int) {
	cacheEvictionsTotal.Add(float64(n))
}
