package dto

import (
	"github.com/gin-gonic/gin"

	"msgsource-go/pkg/utils"
)

// UpsertEntryRequest 新增/更新翻译条目的请求参数
type UpsertEntryRequest struct {
	Basename string `json:"basename" binding:"required,max=64" msg:"basename is required (max 64 chars)"`
	Locale   string `json:"locale" binding:"required,max=32" msg:"locale is required (max 32 chars)"`
	Key      string `json:"key" binding:"required,max=255" msg:"key is required (max 255 chars)"`
	Template string `json:"template" binding:"required,max=2048" msg:"template is required (max 2048 chars)"`
}

// Validate 自定义验证逻辑
func (r *UpsertEntryRequest) Validate() error {
	// 1. 复用公共的 key 校验逻辑
	if err := utils.ValidateMessageKey(r.Key); err != nil {
		return gin.Error{
			Err:  err,
			Type: gin.ErrorTypeBind,
		}
	}

	// 2. 模板文本校验
	if err := utils.ValidateTemplateText(r.Template); err != nil {
		return gin.Error{
			Err:  err,
			Type: gin.ErrorTypeBind,
		}
	}

	return nil
}

// InvalidateRequest 手动失效某个 bundle 缓存的请求参数
type InvalidateRequest struct {
	Basename string `json:"basename" binding:"required,max=64"`
	Locale   string `json:"locale" binding:"max=32"` // 为空表示全部清空
}
