package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestAudit 记录每次接口调用，审计用
// 结算类接口动的是钱，保留调用方、路径、耗时与结果
func RequestAudit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if HTTP == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		HTTP.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"caller":    c.GetHeader("X-Caller-Id"),
			"ip":        c.ClientIP(),
			"latencyMs": time.Since(start).Milliseconds(),
		}).Info("request")
	}
}
