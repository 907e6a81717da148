package i18n

import (
	"errors"
	"testing"
)

// mapSource 测试用的内存资源后端
type mapSource struct {
	bundles map[string]map[string]string // "<basename>/<locale>" -> messages
	reads   int
}

func (s *mapSource) ReadBundle(basename string, locale Locale) (map[string]string, error) {
	s.reads++
	messages, ok := s.bundles[basename+"/"+locale.String()]
	if !ok {
		return nil, ErrBundleNotFound
	}
	return messages, nil
}

// newTestCatalog basenames=["messages","problems"]，默认语言 en
func newTestCatalog(t *testing.T, policy MissPolicy, bundles map[string]map[string]string) *Catalog {
	t.Helper()
	store := NewStore(&mapSource{bundles: bundles}, false)
	catalog, err := NewCatalog(store,
		[]string{"messages", "problems"},
		[]Locale{MustParseLocale("en"), MustParseLocale("fr"), MustParseLocale("zh")},
		MustParseLocale("en"),
		policy,
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return catalog
}

func TestResolveExactLocale(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "{0}, hello!"},
	})

	got, err := catalog.Resolve(MustParseLocale("en"), "app.greeting", "World")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "World, hello!" {
		t.Errorf("got %q, want %q", got, "World, hello!")
	}
}

func TestResolveFallbackToDefault(t *testing.T) {
	// fr 的 bundle 缺少 app.greeting，应回退到默认语言 en
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "{0}, hello!"},
		"messages/fr": {"app.farewell": "Au revoir, {0} !"},
	})

	got, err := catalog.Resolve(MustParseLocale("fr"), "app.greeting", "World")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "World, hello!" {
		t.Errorf("fallback 结果 = %q, want %q", got, "World, hello!")
	}
}

func TestResolveLanguageOnlyFallback(t *testing.T) {
	// fr-CA 没有专属 bundle，应先试仅语言的 fr，再到默认语言
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"app.greeting": "{0}, hello!"},
		"messages/fr": {"app.greeting": "{0}, bonjour !"},
	})

	got, err := catalog.Resolve(MustParseLocale("fr-CA"), "app.greeting", "World")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "World, bonjour !" {
		t.Errorf("仅语言回退结果 = %q, want %q", got, "World, bonjour !")
	}
}

func TestResolveExactBeatsLanguageOnly(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en":    {"app.greeting": "hello"},
		"messages/fr":    {"app.greeting": "bonjour"},
		"messages/fr-CA": {"app.greeting": "bonjour (CA)"},
	})

	got, err := catalog.Resolve(MustParseLocale("fr-CA"), "app.greeting")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "bonjour (CA)" {
		t.Errorf("精确匹配应优先于仅语言匹配, got %q", got)
	}
}

func TestResolveSearchesBasenamesInOrder(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {"shared.key": "from messages"},
		"problems/en": {"shared.key": "from problems", "problem.only": "only here"},
	})

	// 两个 basename 都有的 key，按注册顺序先命中 messages
	got, _ := catalog.Resolve(MustParseLocale("en"), "shared.key")
	if got != "from messages" {
		t.Errorf("basename 顺序错误, got %q", got)
	}

	// 只在第二个 basename 里的 key 也能找到
	got, _ = catalog.Resolve(MustParseLocale("en"), "problem.only")
	if got != "only here" {
		t.Errorf("第二个 basename 未被搜索, got %q", got)
	}
}

func TestResolveMissLenient(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyLenient, map[string]map[string]string{
		"messages/en": {},
	})

	// 宽松模式：原样返回 key
	got, err := catalog.Resolve(MustParseLocale("en"), "does.not.exist")
	if err != nil {
		t.Fatalf("宽松模式不应报错: %v", err)
	}
	if got != "does.not.exist" {
		t.Errorf("got %q, want key 本身", got)
	}
}

func TestResolveMissStrict(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyStrict, map[string]map[string]string{
		"messages/en": {},
	})

	_, err := catalog.Resolve(MustParseLocale("en"), "does.not.exist")
	if err == nil {
		t.Fatal("严格模式应报错")
	}

	var notFound *MessageNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("错误类型应为 MessageNotFoundError, got %T", err)
	}
	if notFound.Key != "does.not.exist" {
		t.Errorf("错误里应带上 key, got %q", notFound.Key)
	}
}

func TestTryResolveIgnoresMissPolicy(t *testing.T) {
	catalog := newTestCatalog(t, MissPolicyStrict, map[string]map[string]string{
		"messages/en": {"empty.message": ""},
	})

	// 未命中：("", false)，即使严格模式也不报错
	if text, ok := catalog.TryResolve(MustParseLocale("en"), "does.not.exist"); ok || text != "" {
		t.Errorf("未命中应返回 (\"\", false), got (%q, %v)", text, ok)
	}

	// 翻译恰好是空串：("", true)，和未命中可区分
	if text, ok := catalog.TryResolve(MustParseLocale("en"), "empty.message"); !ok || text != "" {
		t.Errorf("空翻译应返回 (\"\", true), got (%q, %v)", text, ok)
	}
}

func TestParseMissPolicy(t *testing.T) {
	if p, err := ParseMissPolicy("strict"); err != nil || p != MissPolicyStrict {
		t.Errorf("strict 解析失败: %v %v", p, err)
	}
	if p, err := ParseMissPolicy(""); err != nil || p != MissPolicyLenient {
		t.Errorf("空字符串应默认 lenient: %v %v", p, err)
	}
	if _, err := ParseMissPolicy("whatever"); err == nil {
		t.Error("未知策略应报错")
	}
}
