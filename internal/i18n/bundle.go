package i18n

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Bundle 某个 (basename, locale) 的全部翻译模板
// 加载时整体构建，发布后只读；重新加载会产生一个全新的 Bundle 并整体替换
type Bundle struct {
	basename string
	locale   Locale
	messages map[string]string
}

// NewBundle 构建只读 Bundle，入参 map 会被拷贝一份
func NewBundle(basename string, locale Locale, messages map[string]string) *Bundle {
	copied := make(map[string]string, len(messages))
	for k, v := range messages {
		copied[k] = v
	}
	return &Bundle{
		basename: basename,
		locale:   locale,
		messages: copied,
	}
}

func (b *Bundle) Basename() string {
	return b.basename
}

func (b *Bundle) Locale() Locale {
	return b.locale
}

// Lookup 查找 key 对应的模板，未定义时 ok 为 false
func (b *Bundle) Lookup(key string) (string, bool) {
	tpl, ok := b.messages[key]
	return tpl, ok
}

// Keys 返回排序后的全部 key（供一致性校验使用）
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.messages))
	for k := range b.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *Bundle) Len() int {
	return len(b.messages)
}

// Interpolate 位置占位符替换：{0} {1} ... 从左到右逐个替换为 args 的字符串形式
// 规则：
//   - 索引超出 args 范围时原样保留占位符，不报错（避免翻译笔误变成线上故障）
//   - args 中的 nil 渲染为空字符串
//   - 花括号内不是纯数字时按普通文本处理
func Interpolate(tpl string, args ...any) string {
	if len(tpl) == 0 || !strings.ContainsRune(tpl, '{') {
		return tpl
	}

	var sb strings.Builder
	sb.Grow(len(tpl))

	for i := 0; i < len(tpl); {
		if tpl[i] != '{' {
			sb.WriteByte(tpl[i])
			i++
			continue
		}

		end := strings.IndexByte(tpl[i:], '}')
		if end < 0 {
			// 未闭合的 '{'，渲染阶段宽松处理为普通文本
			sb.WriteString(tpl[i:])
			break
		}
		end += i

		inner := tpl[i+1 : end]
		idx, err := strconv.Atoi(inner)
		if err != nil || idx < 0 {
			// 非数字占位符，原样输出
			sb.WriteString(tpl[i : end+1])
			i = end + 1
			continue
		}

		if idx >= len(args) {
			// 参数不足：保留字面量
			sb.WriteString(tpl[i : end+1])
			i = end + 1
			continue
		}

		if args[idx] != nil {
			sb.WriteString(fmt.Sprint(args[idx]))
		}
		i = end + 1
	}

	return sb.String()
}

// ValidateTemplate 加载期的严格校验：花括号必须配对
// 渲染期是宽松的，但资源文件里未闭合的占位符属于配置错误，应在启动时暴露
func ValidateTemplate(tpl string) error {
	depth := 0
	firstOpen := -1
	for i, r := range tpl {
		switch r {
		case '{':
			if depth == 0 {
				firstOpen = i
			}
			depth++
		case '}':
			if depth == 0 {
				return fmt.Errorf("位置 %d 出现多余的 '}'", i)
			}
			depth--
		}
	}
	if depth != 0 {
		return fmt.Errorf("位置 %d 的占位符未闭合", firstOpen)
	}
	return nil
}
