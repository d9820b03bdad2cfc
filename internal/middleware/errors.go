package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
	"go.uber.org/zap"
)

// ErrorHandler turns the last error recorded on the context into the wire
// response. Errors that are not AppErrors are classified first.
func ErrorHandler(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		appErr := apierrors.Classify(last.Err)
		fields := []zap.Field{
			zap.Int("status", appErr.StatusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(last.Err),
		}
		if appErr.IsClientError() {
			log.Debug("Request rejected", fields...)
		} else {
			log.Error("Request failed", fields...)
		}

		if c.Writer.Written() {
			return
		}
		apierrors.Respond(c, appErr, last.Err, production)
	}
}

// Recovery converts panics into internal errors handled by ErrorHandler
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		c.Abort()
	})
}
