package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"msgsource-go/internal/i18n"
)

// LocaleMiddleware 从 Accept-Language 请求头协商出本次请求的 locale，
// 绑定到 request context 上（每个请求各自一份，互不可见）
// 请求头缺失或不在支持列表内时使用目录默认语言
func LocaleMiddleware(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := catalog.DefaultLocale()

		acceptLanguage := c.GetHeader("Accept-Language")
		if acceptLanguage != "" {
			tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
			if err == nil {
				for _, tag := range tags {
					cand, perr := i18n.ParseLocale(tag.String())
					if perr != nil {
						continue
					}
					if catalog.Supports(cand) {
						locale = cand
						break
					}
					// 精确匹配不到时试仅语言部分（fr-CA -> fr）
					if lang := cand.Language(); catalog.Supports(lang) {
						locale = lang
						break
					}
				}
			}
		}

		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), locale))
		c.Next()
	}
}
