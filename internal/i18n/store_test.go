package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBundleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("写测试资源失败: %v", err)
	}
}

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, "messages_en.properties",
		"# 注释行\napp.greeting={0}, hello!\napp.farewell=Goodbye, {0}!\n")

	src := NewFileSource(dir)
	messages, err := src.ReadBundle("messages", MustParseLocale("en"))
	if err != nil {
		t.Fatalf("ReadBundle failed: %v", err)
	}
	if messages["app.greeting"] != "{0}, hello!" {
		t.Errorf("got %q", messages["app.greeting"])
	}
	if len(messages) != 2 {
		t.Errorf("应解析出 2 条, got %d", len(messages))
	}
}

func TestFileSourceMissingLocale(t *testing.T) {
	src := NewFileSource(t.TempDir())
	_, err := src.ReadBundle("messages", MustParseLocale("fr"))
	if !errors.Is(err, ErrBundleNotFound) {
		t.Fatalf("缺失的 locale 应返回 ErrBundleNotFound, got %v", err)
	}
}

func TestFileSourceMalformedTemplate(t *testing.T) {
	dir := t.TempDir()
	// 未闭合的占位符属于加载期致命错误
	writeBundleFile(t, dir, "messages_en.properties", "bad.key=broken {0\n")

	src := NewFileSource(dir)
	_, err := src.ReadBundle("messages", MustParseLocale("en"))
	if err == nil {
		t.Fatal("未闭合占位符应报错")
	}

	var malformed *MalformedBundleError
	if !errors.As(err, &malformed) {
		t.Fatalf("错误类型应为 MalformedBundleError, got %T", err)
	}
	if malformed.Basename != "messages" || malformed.Locale != "en" {
		t.Errorf("错误应定位到 basename/locale, got %+v", malformed)
	}
}

func TestStoreCaching(t *testing.T) {
	src := &mapSource{bundles: map[string]map[string]string{
		"messages/en": {"k": "v"},
	}}
	store := NewStore(src, false)

	en := MustParseLocale("en")
	if _, err := store.Load("messages", en); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Load("messages", en); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if src.reads != 1 {
		t.Errorf("第二次 Load 应命中缓存, 后端读取次数 = %d", src.reads)
	}

	// 缺失的 locale 走负缓存，也只读一次
	fr := MustParseLocale("fr")
	for i := 0; i < 2; i++ {
		if _, err := store.Load("messages", fr); !errors.Is(err, ErrBundleNotFound) {
			t.Fatalf("应返回 ErrBundleNotFound, got %v", err)
		}
	}
	if src.reads != 2 {
		t.Errorf("负缓存未生效, 后端读取次数 = %d", src.reads)
	}
}

func TestStoreInvalidate(t *testing.T) {
	src := &mapSource{bundles: map[string]map[string]string{
		"messages/en": {"k": "old"},
	}}
	store := NewStore(src, false)
	en := MustParseLocale("en")

	bundle, _ := store.Load("messages", en)
	if tpl, _ := bundle.Lookup("k"); tpl != "old" {
		t.Fatalf("got %q", tpl)
	}

	// 修改后端数据并失效缓存，下一次 Load 应拿到全新的 Bundle
	src.bundles["messages/en"] = map[string]string{"k": "new"}
	if err := store.Invalidate("messages", en); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	reloaded, _ := store.Load("messages", en)
	if tpl, _ := reloaded.Lookup("k"); tpl != "new" {
		t.Errorf("失效后应重新加载, got %q", tpl)
	}
	// 旧 Bundle 不受影响（copy-on-write）
	if tpl, _ := bundle.Lookup("k"); tpl != "old" {
		t.Errorf("已发布的 Bundle 不应被修改, got %q", tpl)
	}
}

func TestStoreFrozen(t *testing.T) {
	store := NewStore(&mapSource{bundles: map[string]map[string]string{
		"messages/en": {"k": "v"},
	}}, true)

	if _, err := store.Load("messages", MustParseLocale("en")); err != nil {
		t.Fatalf("冻结模式不影响加载: %v", err)
	}

	if err := store.Invalidate("messages", MustParseLocale("en")); !errors.Is(err, ErrStoreFrozen) {
		t.Errorf("冻结模式应拒绝 Invalidate, got %v", err)
	}
	if err := store.InvalidateAll(); !errors.Is(err, ErrStoreFrozen) {
		t.Errorf("冻结模式应拒绝 InvalidateAll, got %v", err)
	}
}

func TestLayeredSourceOverride(t *testing.T) {
	base := &mapSource{bundles: map[string]map[string]string{
		"messages/en": {"a": "file-a", "b": "file-b"},
	}}
	override := &mapSource{bundles: map[string]map[string]string{
		"messages/en": {"b": "db-b", "c": "db-c"},
	}}

	layered := NewLayeredSource(base, override)
	messages, err := layered.ReadBundle("messages", MustParseLocale("en"))
	if err != nil {
		t.Fatalf("ReadBundle failed: %v", err)
	}

	if messages["a"] != "file-a" || messages["b"] != "db-b" || messages["c"] != "db-c" {
		t.Errorf("叠加结果错误: %v", messages)
	}

	// 两层都没有时才算缺失
	if _, err := layered.ReadBundle("messages", MustParseLocale("fr")); !errors.Is(err, ErrBundleNotFound) {
		t.Errorf("应返回 ErrBundleNotFound, got %v", err)
	}
}
