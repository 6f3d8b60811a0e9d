package middleware

import (
	"time" // Request duration

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Structured logging
)

// RequestIDKey is the gin context key and response header carrying the request id
const RequestIDKey = "X-Request-ID"

// LogMiddleware logs method, path, status and duration of every request,
// tagging each with a request id taken from the client or generated.
func LogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(RequestIDKey)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(RequestIDKey, reqID)
		c.Header(RequestIDKey, reqID)

		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
			"remote":     c.ClientIP(),
		})
		if uid, ok := CurrentUserID(c); ok {
			entry = entry.WithField("user_id", uid)
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("HTTP Request")
		case c.Writer.Status() >= 400:
			entry.Warn("HTTP Request")
		default:
			entry.Info("HTTP Request")
		}
	}
}

// RequestID returns the id assigned by LogMiddleware, empty outside it
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
