package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventquest_http_requests_total",
			Help: "Total HTTP requests served, by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventquest_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventquest_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		},
	)
)

var (
	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventquest_quests_completed_total",
			Help: "Quest instances that reached completion, by kind.",
		},
		[]string{"kind"},
	)

	RewardsDistributed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventquest_rewards_distributed_total",
			Help: "Reward payouts written to the distribution ledger.",
		},
	)
)

// Middleware collects request count, latency and in-flight metrics. The route
// template is used as the path label so parameterized routes do not explode
// the cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
