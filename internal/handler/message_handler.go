package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"msgsource-go/internal/apperrors"
	"msgsource-go/internal/dto"
	"msgsource-go/internal/service"
	"msgsource-go/pkg/utils"
	"msgsource-go/response"
)

// ResolveMessageHandler 按请求语言解析 key（GET /api/message/:key?args=a,b,c）
// 语言由 LocaleMiddleware 从 Accept-Language 协商后放进 request context
func ResolveMessageHandler(c *gin.Context) {
	key := c.Param("key")
	if err := utils.ValidateMessageKey(key); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("无效的 message key"))
		return
	}

	args := parseArgs(c.Query("args"))

	text, err := service.ResolveMessage(c.Request.Context(), key, args...)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(gin.H{"key": key, "text": text}, "success"))
}

// ResolveForLocaleHandler 显式指定 locale 解析（GET /api/message/:key/locale/:locale）
// 绕过请求语言，用于站外通知等已知收件人语言的场景
func ResolveForLocaleHandler(c *gin.Context) {
	key := c.Param("key")
	if err := utils.ValidateMessageKey(key); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("无效的 message key"))
		return
	}

	locale := c.Param("locale")
	args := parseArgs(c.Query("args"))

	text, err := service.ResolveMessageFor(locale, key, args...)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(gin.H{"key": key, "locale": locale, "text": text}, "success"))
}

// UpsertEntryHandler 新增/更新数据库翻译条目（POST /api/entry）
func UpsertEntryHandler(c *gin.Context) {
	var req dto.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 检查错误是否为 ValidationErrors 类型
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			// 遍历所有校验错误
			for _, e := range validationErrs {
				// 通过反射获取字段的 msg 标签值
				field, ok := reflect.TypeOf(req).FieldByName(e.Field())
				if !ok {
					_ = c.Error(apperrors.InvalidRequestErrorDefault())
					return
				}

				customMsg := field.Tag.Get("msg")
				if customMsg != "" {
					_ = c.Error(apperrors.InvalidRequestError(customMsg))
					return
				}
			}
		}
		// 如果没有找到自定义错误提示，返回默认错误
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.Error(apperrors.InvalidRequestError(err.Error()))
		return
	}

	if err := service.UpsertEntry(req.Basename, req.Locale, req.Key, req.Template); err != nil {
		zap.L().Warn("translation entry upsert failed",
			zap.Error(err),
			zap.String("basename", req.Basename),
			zap.String("key", req.Key),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "翻译条目已保存"))
}

// ListEntriesHandler 分页查询翻译条目（GET /api/entry?basename=xxx&locale=xx&page=1&size=10）
func ListEntriesHandler(c *gin.Context) {
	// 1. 解析查询参数
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")
	basename := c.DefaultQuery("basename", "")
	locale := c.DefaultQuery("locale", "")

	// 参数转换
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		_ = c.Error(apperrors.InvalidRequestError("页码必须为正整数"))
		return
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		_ = c.Error(apperrors.InvalidRequestError("每页数量必须为1-100之间的整数"))
		return
	}

	pageResp, err := service.ListEntries(basename, locale, page, size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

// InvalidateHandler 手动失效 bundle 缓存（POST /api/invalidate）
// 冻结（生产）模式下会被拒绝
func InvalidateHandler(c *gin.Context) {
	var req dto.InvalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	if err := service.InvalidateBundle(req.Basename, req.Locale); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "缓存已失效，下次解析将重新加载"))
}

// ReportHandler 运行一致性校验并返回完整报告（GET /api/report）
func ReportHandler(c *gin.Context) {
	report, err := service.ConsistencyReport()
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "一致性校验通过"
	if !report.OK() {
		message = "一致性校验发现问题"
	}
	c.JSON(http.StatusOK, response.OK(report, message))
}

// GreetingHandler 演示延迟句柄按请求语言渲染（GET /api/greeting?name=World）
func GreetingHandler(c *gin.Context) {
	name := c.DefaultQuery("name", "")

	heading, farewell, err := service.Greeting(c.Request.Context(), name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(gin.H{"heading": heading, "farewell": farewell}, "success"))
}

// parseArgs 逗号分隔的占位符参数
func parseArgs(raw string) []any {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	args := make([]any, len(parts))
	for i, p := range parts {
		args[i] = p
	}
	return args
}
