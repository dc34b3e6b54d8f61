package middleware

import (
	"time"

	"go-roster/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying request and session ids,
// and logs one line per request once it completes.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = c.GetString("request_id")
		}
		sid := c.GetString(SessionIDKey)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("session_id", sid),
		)

		ctx = contextutil.WithRequestID(ctx, rid)
		if sid != "" {
			ctx = contextutil.WithSessionID(ctx, sid)
		}
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
