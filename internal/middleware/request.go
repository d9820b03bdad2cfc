package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/schedule-api/internal/constants"
	"go.uber.org/zap"
)

const requestIDKey = constants.ContextKeyRequestID

// RequestID echoes the X-Request-ID header or generates a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(constants.RequestIDHeader, requestID)
		c.Next()
	}
}

// Logger logs one line per request, tagged with the caller's account once
// the auth gate has run
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := make([]zap.Field, 0, 8)
		if accountID, ok := GetUserID(c); ok {
			fields = append(fields, zap.Uint64("account_id", accountID))
		}
		log.Info("Request handled", append(fields,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		)...)
	}
}
