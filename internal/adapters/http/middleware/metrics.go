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
			Namespace: "walletservice",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletservice",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "walletservice",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletservice",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)
)

// Business metrics — ledger-facing counters registered alongside the
// ambient HTTP ones above. RecordTransaction is their only writer, and
// nothing in the service calls it.
var (
	// TransactionsTotal counts completed mutating operations by type
	// and outcome (created vs replayed from the idempotency cache).
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletservice",
			Subsystem: "business",
			Name:      "transactions_total",
			Help:      "Total number of wallet transactions",
		},
		[]string{"type", "outcome", "asset_type"},
	)

	// TransactionAmount tracks the size of transactions, in the asset
	// type's minor unit.
	TransactionAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletservice",
			Subsystem: "business",
			Name:      "transaction_amount",
			Help:      "Transaction amounts",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 8),
		},
		[]string{"type", "asset_type"},
	)
)

// Database metrics.
var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletservice",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "table"},
	)

	DBConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "walletservice",
			Subsystem: "db",
			Name:      "connections",
			Help:      "Number of database connections",
		},
		[]string{"state"},
	)
)

// Metrics instruments every request's method, path, status, latency,
// and response size. /metrics itself is excluded so scraping the
// endpoint doesn't inflate its own counters.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(method, path).Observe(float64(c.Writer.Size()))
	}
}

// RecordTransaction records a completed mutating operation.
func RecordTransaction(txType, outcome, assetType string, amount float64) {
	TransactionsTotal.WithLabelValues(txType, outcome, assetType).Inc()
	TransactionAmount.WithLabelValues(txType, assetType).Observe(amount)
}

// RecordDBQuery records a database query's duration.
func RecordDBQuery(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// UpdateDBConnections publishes the pool's current connection counts.
func UpdateDBConnections(idle, inUse, max int32) {
	DBConnections.WithLabelValues("idle").Set(float64(idle))
	DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	DBConnections.WithLabelValues("max").Set(float64(max))
}
