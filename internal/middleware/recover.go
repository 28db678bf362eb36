package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Recover 兜底：handler panic 只打掉当前请求，不拖垮进程
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[RECOVER] ❌ panic: %v path=%s", r, c.Request.URL.Path)
				c.JSON(500, gin.H{"code": 500, "msg": "internal error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}
