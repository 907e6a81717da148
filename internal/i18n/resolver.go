package i18n

import (
	"context"
)

// Resolver 对外的统一查找入口：组合 Catalog 的回退链和 context 上的环境 locale
type Resolver struct {
	catalog *Catalog
}

func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve 按 context 里的环境 locale 解析 key
// context 未绑定 locale 时使用目录默认语言
func (r *Resolver) Resolve(ctx context.Context, key string, args ...any) (string, error) {
	locale := CurrentLocale(ctx, r.catalog.DefaultLocale())
	return r.catalog.Resolve(locale, key, args...)
}

// ResolveFor 显式指定 locale，绕过环境 locale
// 用于非请求场景，比如给已知语言偏好的收件人发站外通知
func (r *Resolver) ResolveFor(locale Locale, key string, args ...any) (string, error) {
	return r.catalog.Resolve(locale, key, args...)
}

// TryResolve 永不报错：未命中返回 ("", false)，与 MissPolicy 无关
func (r *Resolver) TryResolve(ctx context.Context, key string, args ...any) (string, bool) {
	locale := CurrentLocale(ctx, r.catalog.DefaultLocale())
	return r.catalog.TryResolve(locale, key, args...)
}

// Catalog 暴露底层目录（校验器、中间件需要读取配置信息）
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Lazy 创建绑定到固定 key 的延迟渲染句柄
func (r *Resolver) Lazy(key string) *LazyMessage {
	return &LazyMessage{key: key, resolver: r}
}
