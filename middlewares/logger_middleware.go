package middlewares

import (
	"time"

	"store-rating/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ctxLogger = "logger"

// RequestLogger tags each request with an id and logs its outcome.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(constants.CtxRequestID, requestID)
		ctx.Header(constants.HeaderRequestID, requestID)

		l := log.With(zap.String("request_id", requestID))
		ctx.Set(ctxLogger, l)

		ctx.Next()

		fields := []zap.Field{
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
		}
		if claims, ok := ClaimsFrom(ctx); ok {
			fields = append(fields, zap.Uint("user_id", claims.UserID))
		}
		if len(ctx.Errors) > 0 {
			fields = append(fields, zap.String("errors", ctx.Errors.String()))
		}

		switch status := ctx.Writer.Status(); {
		case status >= 500:
			l.Error("request", fields...)
		case status >= 400:
			l.Warn("request", fields...)
		default:
			l.Info("request", fields...)
		}
	}
}

// LoggerFrom returns the request-scoped logger, or a no-op logger outside
// RequestLogger.
func LoggerFrom(ctx *gin.Context) *zap.Logger {
	if v, ok := ctx.Get(ctxLogger); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
