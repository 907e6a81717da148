package i18n

import (
	"testing"
)

func TestInterpolate(t *testing.T) {
	cases := []struct {
		name string
		tpl  string
		args []any
		want string
	}{
		{"基本替换", "{0}, hello!", []any{"World"}, "World, hello!"},
		{"多个占位符", "{0} -> {1}", []any{"a", "b"}, "a -> b"},
		{"重复占位符", "{0} {0}", []any{"x"}, "x x"},
		{"乱序占位符", "{1} {0}", []any{"a", "b"}, "b a"},
		{"无占位符", "plain text", []any{"unused"}, "plain text"},
		{"参数不足保留字面量", "{0} and {1}", []any{"only"}, "only and {1}"},
		{"无参数保留字面量", "value={0}", nil, "value={0}"},
		{"nil 参数渲染为空", "[{0}]", []any{nil}, "[]"},
		{"非数字占位符原样输出", "{name} {0}", []any{"v"}, "{name} v"},
		{"数字参数", "count: {0}", []any{42}, "count: 42"},
		{"空模板", "", []any{"x"}, ""},
		{"渲染期未闭合宽松处理", "broken {0", []any{"x"}, "broken {0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Interpolate(c.tpl, c.args...)
			if got != c.want {
				t.Errorf("Interpolate(%q, %v) = %q, want %q", c.tpl, c.args, got, c.want)
			}
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	// 合法模板
	for _, tpl := range []string{"", "plain", "{0}", "{0} and {1}", "a {0} b"} {
		if err := ValidateTemplate(tpl); err != nil {
			t.Errorf("ValidateTemplate(%q) 不应报错: %v", tpl, err)
		}
	}

	// 非法模板
	for _, tpl := range []string{"{0", "unbalanced }", "a { b"} {
		if err := ValidateTemplate(tpl); err == nil {
			t.Errorf("ValidateTemplate(%q) 应该报错", tpl)
		}
	}
}

func TestBundleImmutable(t *testing.T) {
	src := map[string]string{"k": "v"}
	b := NewBundle("messages", MustParseLocale("en"), src)

	// 修改入参 map 不影响已构建的 Bundle
	src["k"] = "changed"
	src["k2"] = "new"

	if tpl, _ := b.Lookup("k"); tpl != "v" {
		t.Errorf("Bundle 应持有拷贝, got %q", tpl)
	}
	if _, ok := b.Lookup("k2"); ok {
		t.Error("Bundle 不应看到构建后加入的 key")
	}
}
