package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"msgsource-go/internal/apperrors"
	"msgsource-go/internal/i18n"
	"msgsource-go/internal/model"
	"msgsource-go/internal/repository"
	"msgsource-go/response"
)

// 引擎三件套由 main 初始化后注入，整个服务共用一份
var (
	Resolver *i18n.Resolver
	Catalog  *i18n.Catalog
	Store    *i18n.Store
)

// InitMessageEngine 注入消息引擎（main 启动时调用一次）
func InitMessageEngine(resolver *i18n.Resolver, catalog *i18n.Catalog, store *i18n.Store) {
	Resolver = resolver
	Catalog = catalog
	Store = store
}

// ResolveMessage 按请求的环境 locale 解析 key
// 宽松模式下未命中返回 key 本身并记一笔未命中统计；严格模式报错
func ResolveMessage(ctx context.Context, key string, args ...any) (string, error) {
	text, ok := Resolver.TryResolve(ctx, key, args...)
	if ok {
		return text, nil
	}

	// 未命中：记统计（失败只记日志，不影响主流程）
	locale := i18n.CurrentLocale(ctx, Catalog.DefaultLocale())
	RecordMiss(locale.String(), key)

	if Catalog.MissPolicy() == i18n.MissPolicyStrict {
		return "", apperrors.FromProblem(apperrors.ProblemEntryNotFound, key)
	}

	// 宽松模式：降级为可见的 key 占位符
	zap.L().Warn("翻译未命中，降级返回 key",
		zap.String("key", key),
		zap.String("locale", locale.String()),
	)
	return key, nil
}

// ResolveMessageFor 显式 locale 解析（站外通知等非请求场景）
func ResolveMessageFor(localeTag, key string, args ...any) (string, error) {
	locale, err := i18n.ParseLocale(localeTag)
	if err != nil {
		return "", apperrors.FromProblemWithCause(apperrors.ProblemInvalidLocale, err, localeTag)
	}

	text, err := Resolver.ResolveFor(locale, key, args...)
	if err != nil {
		return "", apperrors.FromProblemWithCause(apperrors.ProblemEntryNotFound, err, key)
	}
	return text, nil
}

// UpsertEntry 新增/更新数据库翻译条目并失效对应缓存
func UpsertEntry(basename, localeTag, key, template string) error {
	locale, err := i18n.ParseLocale(localeTag)
	if err != nil {
		return apperrors.FromProblemWithCause(apperrors.ProblemInvalidLocale, err, localeTag)
	}

	// 模板占位符必须配对，坏模板不允许入库
	if err := i18n.ValidateTemplate(template); err != nil {
		return apperrors.BusinessError(http.StatusBadRequest, "模板占位符非法: "+err.Error())
	}

	if Store.Frozen() {
		return apperrors.FromProblem(apperrors.ProblemStoreFrozen)
	}

	entry := &model.MessageEntry{
		Basename: basename,
		Locale:   locale.String(),
		MsgKey:   key,
		Template: template,
	}
	if err := repository.UpsertEntry(entry); err != nil {
		zap.L().Error("翻译条目入库失败",
			zap.String("basename", basename),
			zap.String("key", key),
			zap.Error(err),
		)
		return apperrors.SystemError("翻译条目保存失败")
	}

	// 失效缓存，下次解析重新加载（copy-on-write 整体替换）
	if err := Store.Invalidate(basename, locale); err != nil {
		return apperrors.FromProblemWithCause(apperrors.ProblemStoreFrozen, err)
	}
	return nil
}

// ListEntries 分页查询数据库翻译条目
func ListEntries(basename, locale string, page, size int) (*response.PageResponse[model.MessageEntry], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	entries, total, err := repository.ListEntries(basename, locale, page, size)
	if err != nil {
		return nil, apperrors.SystemError("查询翻译条目失败: " + err.Error())
	}

	totalPage := (int(total) + size - 1) / size
	return &response.PageResponse[model.MessageEntry]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      entries,
	}, nil
}

// InvalidateBundle 手动失效缓存；locale 为空时清空全部
func InvalidateBundle(basename, localeTag string) error {
	if localeTag == "" {
		if err := Store.InvalidateAll(); err != nil {
			return apperrors.FromProblemWithCause(apperrors.ProblemStoreFrozen, err)
		}
		return nil
	}

	locale, err := i18n.ParseLocale(localeTag)
	if err != nil {
		return apperrors.FromProblemWithCause(apperrors.ProblemInvalidLocale, err, localeTag)
	}
	if err := Store.Invalidate(basename, locale); err != nil {
		return apperrors.FromProblemWithCause(apperrors.ProblemStoreFrozen, err)
	}
	return nil
}

// ConsistencyReport 运行一致性校验，返回完整报告
func ConsistencyReport() (*i18n.ConsistencyReport, error) {
	report, err := i18n.ValidateConsistency(Catalog, apperrors.RequiredMessageKeys())
	if err != nil {
		return nil, apperrors.SystemError("一致性校验执行失败: " + err.Error())
	}
	return report, nil
}
