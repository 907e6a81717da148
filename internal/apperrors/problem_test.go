package apperrors

import (
	"net/http"
	"strings"
	"testing"
)

func TestProblemKeyDerivation(t *testing.T) {
	tests := []struct {
		problem  ProblemKey
		slug     string
		titleKey string
		status   int
	}{
		{ProblemInvalidRequest, "invalid-request", "problem.invalid-request.title", http.StatusBadRequest},
		{ProblemDuplicateCategory, "duplicate-category", "problem.duplicate-category.title", http.StatusConflict},
		{ProblemEntryNotFound, "entry-not-found", "problem.entry-not-found.title", http.StatusNotFound},
		{ProblemStoreFrozen, "store-frozen", "problem.store-frozen.title", http.StatusConflict},
		{ProblemInternalError, "internal-error", "problem.internal-error.title", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.problem.Slug(); got != tt.slug {
			t.Errorf("Slug(%d) = %q, want %q", tt.problem, got, tt.slug)
		}
		if got := tt.problem.TitleKey(); got != tt.titleKey {
			t.Errorf("TitleKey(%s) = %q, want %q", tt.slug, got, tt.titleKey)
		}
		wantDetail := "problem." + tt.slug + ".detail"
		if got := tt.problem.DetailKey(); got != wantDetail {
			t.Errorf("DetailKey(%s) = %q, want %q", tt.slug, got, wantDetail)
		}
		if got := tt.problem.Status(); got != tt.status {
			t.Errorf("Status(%s) = %d, want %d", tt.slug, got, tt.status)
		}
	}
}

func TestProblemKeyClosedSet(t *testing.T) {
	all := AllProblems()
	if len(all) != int(problemCount) {
		t.Fatalf("AllProblems 长度 = %d, want %d", len(all), problemCount)
	}

	// slug 必须全集唯一，消费方用它做路由和索引
	seen := make(map[string]bool)
	for _, p := range all {
		if !p.Valid() {
			t.Errorf("枚举值 %d 应为合法标识", p)
		}
		slug := p.Slug()
		if slug == "" || slug == "unknown" {
			t.Errorf("枚举值 %d 缺少 slug", p)
		}
		if seen[slug] {
			t.Errorf("slug 重复: %s", slug)
		}
		seen[slug] = true
	}
}

func TestProblemKeyOutOfRange(t *testing.T) {
	// 越界值不 panic，统一降级
	for _, p := range []ProblemKey{-1, problemCount, problemCount + 10} {
		if p.Valid() {
			t.Errorf("%d 不应为合法标识", p)
		}
		if got := p.Slug(); got != "unknown" {
			t.Errorf("Slug(%d) = %q", p, got)
		}
		if got := p.Status(); got != http.StatusInternalServerError {
			t.Errorf("Status(%d) = %d", p, got)
		}
	}
}

func TestRequiredMessageKeys(t *testing.T) {
	keys := RequiredMessageKeys()
	if len(keys) != int(problemCount)*2 {
		t.Fatalf("len = %d, want %d", len(keys), int(problemCount)*2)
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, "problem.") {
			t.Errorf("key %q 前缀错误", k)
		}
		if !strings.HasSuffix(k, ".title") && !strings.HasSuffix(k, ".detail") {
			t.Errorf("key %q 后缀错误", k)
		}
	}
}

func TestFromProblem(t *testing.T) {
	err := FromProblem(ProblemEntryNotFound, "app.greeting")
	if !err.HasProblem() {
		t.Fatal("应携带 problem 标识")
	}
	if err.Problem != ProblemEntryNotFound {
		t.Errorf("Problem = %v", err.Problem)
	}
	if len(err.Args) != 1 || err.Args[0] != "app.greeting" {
		t.Errorf("Args = %v", err.Args)
	}
	if err.Code != http.StatusNotFound {
		t.Errorf("Code = %d", err.Code)
	}
}
