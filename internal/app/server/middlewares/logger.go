package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freightrate/pkg/logger"
)

// RequestIDHeader 链路 ID 请求头
const RequestIDHeader = "X-Request-ID"

// Logger 请求日志中间件：透传或生成 X-Request-ID 作为 trace_id，每个请求记录一行
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(RequestIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Header(RequestIDHeader, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Next()

		status := c.Writer.Status()
		format := "[HTTP] %s %s status=%d latency=%s client=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.ClientIP()}
		switch {
		case status >= 500:
			log.Errorf(c.Request.Context(), format, args...)
		case status >= 400:
			log.Warnf(c.Request.Context(), format, args...)
		default:
			log.Infof(c.Request.Context(), format, args...)
		}
	}
}
