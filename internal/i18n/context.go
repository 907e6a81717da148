package i18n

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return "msgsource/i18n/" + string(c)
}

const ctxKeyLocale = contextKey("locale")

// WithLocale 在 context 上绑定当前 locale
// 一次逻辑工作单元（一个请求、一个定时任务、一个测试用例）持有自己的派生 context，
// 不同工作单元之间天然隔离，函数返回后外层 context 不受影响
func WithLocale(ctx context.Context, locale Locale) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

// LocaleFromContext 提取 context 上绑定的 locale，未绑定时 ok 为 false
func LocaleFromContext(ctx context.Context) (Locale, bool) {
	locale, ok := ctx.Value(ctxKeyLocale).(Locale)
	if !ok || locale.IsZero() {
		return Locale{}, false
	}
	return locale, true
}

// CurrentLocale 提取当前 locale，未绑定时回落到 fallback（一般传目录默认语言）
func CurrentLocale(ctx context.Context, fallback Locale) Locale {
	if locale, ok := LocaleFromContext(ctx); ok {
		return locale
	}
	return fallback
}
