package middleware

import (
	"context"
	"time"

	awspkg "furniture-service/pkg/aws"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware sends request count, latency and the error class of
// each request to CloudWatch as one batch, off the request path.
func MetricsMiddleware(metrics awspkg.MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || !metrics.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// FullPath keeps ids out of the dimension set
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		points := []awspkg.MetricPoint{
			awspkg.Count(awspkg.MetricHTTPRequests, dimensions),
			awspkg.Latency(awspkg.MetricHTTPLatency, duration, dimensions),
		}
		switch {
		case statusCode >= 500:
			points = append(points, awspkg.Count(awspkg.MetricHTTP5xx, dimensions))
		case statusCode >= 400:
			points = append(points, awspkg.Count(awspkg.MetricHTTP4xx, dimensions))
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metrics.Record(ctx, points...)
		}()
	}
}

func statusCodeToRange(statusCode int) string {
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
		return "unknown"
	}
}
