package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prubianes/guit-app-api/internal/logger"
	"github.com/prubianes/guit-app-api/internal/uuid"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "requestID"

// RequestLogging returns a Gin middleware that tags each request with a
// UUIDv7 request ID and logs method, path, status, latency and client IP.
// A well-formed X-Request-ID sent by the caller is kept.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if !uuid.IsValid(requestID) {
			requestID = uuid.New()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.Get().Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
