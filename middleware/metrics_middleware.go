package middleware

import (
	"runtime"
	"strconv"
	"time"

	"ctfrange/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware collects HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		metrics.RequestInProgress.WithLabelValues(method, path).Inc()

		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(duration)
		metrics.RequestInProgress.WithLabelValues(method, path).Dec()
	}
}

// UpdateRuntimeMetrics periodically refreshes the goroutine gauge
func UpdateRuntimeMetrics() {
	go func() {
		for {
			metrics.GoroutineCount.Set(float64(runtime.NumGoroutine()))
			time.Sleep(15 * time.Second)
		}
	}()
}
