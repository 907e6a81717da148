package i18n

import (
	"context"
)

// LazyMessage 绑定到固定 key 的延迟渲染句柄
// 组件构建时创建（此时还不知道请求语言），每次 Render 按当时 context 上的
// 环境 locale 重新解析。句柄自身不可变、不缓存结果：同一句柄在不同环境
// locale 下渲染必须得到各自正确的文本
type LazyMessage struct {
	key      string
	resolver *Resolver
}

// Key 绑定的 message key
func (m *LazyMessage) Key() string {
	return m.key
}

// Render 按当前环境 locale 渲染
func (m *LazyMessage) Render(ctx context.Context, args ...any) (string, error) {
	return m.resolver.Resolve(ctx, m.key, args...)
}

// RenderFor 按显式 locale 渲染
func (m *LazyMessage) RenderFor(locale Locale, args ...any) (string, error) {
	return m.resolver.ResolveFor(locale, m.key, args...)
}
