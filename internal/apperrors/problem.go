package apperrors

import (
	"net/http"
)

// ProblemKey 封闭的错误标识枚举
// 全集在编译期固定，每个标识按约定派生出两个 message key：
// problem.<slug>.title 和 problem.<slug>.detail
// 机器可读的错误标识和人类可读的文案 key 之间的对应关系只在这里维护，
// 其他代码不允许自造 title/detail key
type ProblemKey int

const (
	ProblemInvalidRequest ProblemKey = iota
	ProblemDuplicateCategory
	ProblemDuplicateEntry
	ProblemEntryNotFound
	ProblemInvalidLocale
	ProblemStoreFrozen
	ProblemInternalError

	problemCount // 哨兵，保持在最后
)

// problemDef slug 与默认 HTTP 状态码
var problemDefs = [problemCount]struct {
	slug   string
	status int
}{
	ProblemInvalidRequest:    {"invalid-request", http.StatusBadRequest},
	ProblemDuplicateCategory: {"duplicate-category", http.StatusConflict},
	ProblemDuplicateEntry:    {"duplicate-entry", http.StatusConflict},
	ProblemEntryNotFound:     {"entry-not-found", http.StatusNotFound},
	ProblemInvalidLocale:     {"invalid-locale", http.StatusBadRequest},
	ProblemStoreFrozen:       {"store-frozen", http.StatusConflict},
	ProblemInternalError:     {"internal-error", http.StatusInternalServerError},
}

// Valid 是否为已定义的标识
func (p ProblemKey) Valid() bool {
	return p >= 0 && p < problemCount
}

// Slug 标识的稳定短名
func (p ProblemKey) Slug() string {
	if !p.Valid() {
		return "unknown"
	}
	return problemDefs[p].slug
}

// TitleKey 标题文案的 message key：problem.<slug>.title
func (p ProblemKey) TitleKey() string {
	return "problem." + p.Slug() + ".title"
}

// DetailKey 详情文案的 message key：problem.<slug>.detail
func (p ProblemKey) DetailKey() string {
	return "problem." + p.Slug() + ".detail"
}

// Status 默认 HTTP 状态码
func (p ProblemKey) Status() int {
	if !p.Valid() {
		return http.StatusInternalServerError
	}
	return problemDefs[p].status
}

func (p ProblemKey) String() string {
	return p.Slug()
}

// AllProblems 枚举全集（一致性校验器据此检查每个 locale 的文案覆盖）
func AllProblems() []ProblemKey {
	out := make([]ProblemKey, 0, problemCount)
	for p := ProblemKey(0); p < problemCount; p++ {
		out = append(out, p)
	}
	return out
}

// RequiredMessageKeys 全部 problem 的 title/detail key 清单
func RequiredMessageKeys() []string {
	out := make([]string, 0, int(problemCount)*2)
	for _, p := range AllProblems() {
		out = append(out, p.TitleKey(), p.DetailKey())
	}
	return out
}
