package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"go.uber.org/zap"
)

// redactedHeaders are never written to logs.
var redactedHeaders = map[string]bool{
	"Authorization":        true,
	"Cookie":               true,
	"X-Guardian-Signature": true,
	"X-Amz-Security-Token": true,
}

// RequestLoggingMiddleware logs one line per request and records its latency.
// Metrics are labelled by route template. indicators may be nil.
func RequestLoggingMiddleware(indicators *metrics.PromIndicators, verbose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		indicators.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(status), duration.Seconds())

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if signer, ok := GetSigner(c); ok {
			fields = append(fields, zap.String("signer", signer.Hex()))
		}
		if verbose {
			fields = append(fields, zap.Any("headers", loggableHeaders(c)))
		}

		log := LogWithCorrelationID(c.Request.Context())
		for _, err := range c.Errors {
			log.Error("Request error", zap.Error(err.Err))
		}
		switch {
		case status >= 500:
			log.Error("Request completed", fields...)
		case status >= 400:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

func loggableHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header))
	for key, values := range c.Request.Header {
		if len(values) == 0 {
			continue
		}
		if redactedHeaders[key] {
			headers[key] = "[REDACTED]"
			continue
		}
		headers[key] = values[0]
	}
	return headers
}
