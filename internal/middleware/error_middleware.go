package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"msgsource-go/internal/apperrors"
	"msgsource-go/internal/i18n"
	"msgsource-go/response"
)

// GlobalErrorMiddleware 全局错误中间件
// AppError 携带 ProblemKey 时，按本次请求的环境 locale 渲染 title/detail 文案
func GlobalErrorMiddleware(resolver *i18n.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 如果有错误发生
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					c.AbortWithStatusJSON(appErr.Code, problemResponse(c, resolver, appErr))
					return
				}
			}

			// 默认处理未定义的错误
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error("系统内部错误"))
			return
		}
	}
}

// problemResponse 渲染本地化的错误响应
// 宽松模式下翻译缺失会退化成原始 key，但不会让请求失败
func problemResponse(c *gin.Context, resolver *i18n.Resolver, appErr *apperrors.AppError) *response.Response[any] {
	if !appErr.HasProblem() {
		return response.ErrorFromAppError(appErr)
	}

	ctx := c.Request.Context()
	title, ok := resolver.TryResolve(ctx, appErr.Problem.TitleKey())
	if !ok {
		title = appErr.Problem.TitleKey()
	}
	detail, ok := resolver.TryResolve(ctx, appErr.Problem.DetailKey(), appErr.Args...)
	if !ok {
		detail = appErr.Problem.DetailKey()
	}

	return response.Problem(appErr.Problem.Slug(), title, detail)
}
