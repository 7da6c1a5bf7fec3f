package middleware

import (
	"time"

	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request count and latency per matched route. Routes
// are taken from c.FullPath() so ids in paths do not explode cardinality.
func HTTPMetrics(m *telemetry.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// StatusGroup buckets a status code into its class, e.g. "4xx"
func StatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}
