package middlewares

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"freightrate/internal/app/pkg/errorx"
	"freightrate/internal/app/pkg/ginx"
	"freightrate/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 1. 捕获 panic，返回 500
// 2. 将 handler 通过 c.Error 记录的错误转换为统一响应
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "[HTTP] panic recovered: %v\n%s", r, debug.Stack())
				ginx.InternalError(c, http.StatusText(http.StatusInternalServerError))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		be := errorx.From(err)
		if be.Code >= http.StatusInternalServerError {
			log.Errorf(c.Request.Context(), "[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		}

		var details []ginx.ErrorDetail
		for _, d := range be.Details {
			details = append(details, ginx.ErrorDetail{Path: d.Path, Info: d.Info})
		}
		ginx.ErrorWithDetails(c, be.Code, be.Message, details)
	}
}
