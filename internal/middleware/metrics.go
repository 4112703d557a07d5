package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tireshop/backoffice/internal/metrics"
)

// MetricsMiddleware records every request under its route pattern.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
