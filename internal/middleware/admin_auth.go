package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aff-payout-api/internal/config"
)

// AdminAuth 管理接口鉴权：静态 Token + 内网白名单
// 调用者身份仍由引擎按管理员表二次校验
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Admin-Token")
		if token == "" || token != config.C.Security.AdminToken {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "invalid admin token",
			})
			c.Abort()
			return
		}

		ip := c.ClientIP()
		whitelist := []string{"127.0.0.1", "192.168.", "10.", "::1"}
		allowed := false
		for _, prefix := range whitelist {
			if strings.HasPrefix(ip, prefix) {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"code": 403,
				"msg":  "ip not allowed: " + ip,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
