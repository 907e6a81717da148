package i18n

import (
	"testing"
)

func TestValidateConsistencyCleanPass(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "hello", "app.farewell": "bye"},
		"messages/fr": {"app.greeting": "bonjour", "app.farewell": "au revoir"},
		"problems/en": {"problem.internal-error.title": "Internal error"},
		"problems/fr": {"problem.internal-error.title": "Erreur interne"},
	})

	report, err := ValidateConsistency(catalog, []string{"problem.internal-error.title"})
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("不应有问题, got: %s", report)
	}
}

func TestValidateConsistencyMissingKey(t *testing.T) {
	// fr 缺少 app.farewell，应报且仅报这一条
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "hello", "app.farewell": "bye"},
		"messages/fr": {"app.greeting": "bonjour"},
		"problems/en": {},
		"problems/fr": {},
	})

	report, err := ValidateConsistency(catalog, nil)
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}

	if len(report.Findings) != 1 {
		t.Fatalf("应有且仅有 1 条问题, got %d: %s", len(report.Findings), report)
	}

	f := report.Findings[0]
	if f.Basename != "messages" || f.Locale != "fr" || f.Key != "app.farewell" || f.Kind != FindingMissing {
		t.Errorf("问题定位错误: %+v", f)
	}
}

func TestValidateConsistencyOrphanedKey(t *testing.T) {
	// fr 有一条默认语言里不存在的 key（孤儿翻译）
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "hello"},
		"messages/fr": {"app.greeting": "bonjour", "app.legacy": "obsolète"},
		"problems/en": {},
	})

	report, err := ValidateConsistency(catalog, nil)
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}

	if len(report.Findings) != 1 {
		t.Fatalf("应有且仅有 1 条问题, got %d: %s", len(report.Findings), report)
	}
	if f := report.Findings[0]; f.Kind != FindingOrphaned || f.Key != "app.legacy" {
		t.Errorf("应报孤儿 key: %+v", f)
	}
}

func TestValidateConsistencyAbsentLocaleNotAnIssue(t *testing.T) {
	// zh 完全没有资源文件：视为"无覆盖"，回退链兜底，不算问题
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "hello"},
		"messages/fr": {"app.greeting": "bonjour"},
		"problems/en": {},
	})

	report, err := ValidateConsistency(catalog, nil)
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("缺失整个 locale 文件不应报问题: %s", report)
	}
}

func TestValidateConsistencyRequiredKeys(t *testing.T) {
	// problem key 的文案完全缺失，每个 locale 报一条 unresolvable
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {},
		"problems/en": {},
	})

	report, err := ValidateConsistency(catalog, []string{"problem.ghost.title"})
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}

	// en/fr/zh 三个 locale 各一条
	if len(report.Findings) != 3 {
		t.Fatalf("got %d findings: %s", len(report.Findings), report)
	}
	for _, f := range report.Findings {
		if f.Kind != FindingUnresolvable || f.Key != "problem.ghost.title" {
			t.Errorf("unexpected finding: %+v", f)
		}
	}
}

func TestValidateConsistencyRequiredKeysFallbackCounts(t *testing.T) {
	// 必需 key 只在默认语言有文案：回退链能命中，所有 locale 都算通过
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {},
		"problems/en": {"problem.internal-error.title": "Internal error", "problem.internal-error.detail": "Oops"},
	})

	report, err := ValidateConsistency(catalog,
		[]string{"problem.internal-error.title", "problem.internal-error.detail"})
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("回退可命中的必需 key 不应报问题: %s", report)
	}
}

func TestValidateConsistencyDeterministicOrder(t *testing.T) {
	bundles := map[string]map[string]string{
		"messages/en": {"a.one": "1", "b.two": "2", "c.three": "3"},
		"messages/fr": {},
		"problems/en": {},
	}

	first, err := ValidateConsistency(newTestCatalog(t, MissPolicyLenient, bundles), nil)
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}
	second, err := ValidateConsistency(newTestCatalog(t, MissPolicyLenient, bundles), nil)
	if err != nil {
		t.Fatalf("ValidateConsistency failed: %v", err)
	}

	if len(first.Findings) != len(second.Findings) {
		t.Fatalf("两次运行问题数不一致")
	}
	for i := range first.Findings {
		if first.Findings[i] != second.Findings[i] {
			t.Errorf("第 %d 条不一致: %+v vs %+v", i, first.Findings[i], second.Findings[i])
		}
	}
}
