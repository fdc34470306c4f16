package middleware

import (
	"strconv"
	"time"

	"destined_affinity/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware - счетчик и латентность по шаблону маршрута, не по URL
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
