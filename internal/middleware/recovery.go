package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/pkg/logger"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// Recovery panic 兜底：上报 sentry、记日志、对外 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
					Code:    http.StatusInternalServerError,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}
