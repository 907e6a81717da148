package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CorsMiddleware 自定义跨域中间件
func CorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 设置允许的来源（前端地址）
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		// 允许前端携带 Accept-Language 做语言协商
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")

		// 设置允许的方法
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// 响应随语言变化，提示缓存层按 Accept-Language 区分
		c.Writer.Header().Set("Vary", "Accept-Language")

		// 如果是预检请求（OPTIONS），直接返回 204
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatusJSON(http.StatusNoContent, nil)
			return
		}

		// 继续后续处理
		c.Next()
	}
}
