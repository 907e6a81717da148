package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"msgsource-go/internal/i18n"
)

func ZapGinLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 记录本次请求协商出的 locale，方便排查翻译问题
		locale, _ := i18n.LocaleFromContext(c.Request.Context())

		logger.Info("HTTP Request",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.String("locale", locale.String()),
			zap.Duration("latency", latency),
		)
	}
}
