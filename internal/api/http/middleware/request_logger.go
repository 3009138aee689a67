package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"

	maxRequestIDLength = 128
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if sub := c.GetString(SubdomainKey); sub != "" {
			attrs = append(attrs, "subdomain", sub)
		}
		if sub := c.GetString(SubdomainFromHeaderKey); sub != "" {
			attrs = append(attrs, "subdomain_from_header", sub)
		}

		if c.Writer.Status() >= 500 {
			slog.Error("Request completed", attrs...)
			return
		}
		slog.Info("Request completed", attrs...)
	}
}
