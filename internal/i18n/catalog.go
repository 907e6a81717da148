package i18n

import (
	"errors"
	"fmt"
)

// MissPolicy 全链路未命中时的策略
type MissPolicy int

const (
	// MissPolicyLenient 宽松模式：原样返回 key，翻译缺失降级为可见占位符
	MissPolicyLenient MissPolicy = iota
	// MissPolicyStrict 严格模式：返回 MessageNotFoundError
	MissPolicyStrict
)

// ParseMissPolicy 解析配置中的策略名（"lenient" / "strict"）
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch s {
	case "", "lenient":
		return MissPolicyLenient, nil
	case "strict":
		return MissPolicyStrict, nil
	default:
		return MissPolicyLenient, fmt.Errorf("未知的 miss policy: %q", s)
	}
}

func (p MissPolicy) String() string {
	if p == MissPolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Catalog 多 basename 的消息目录，实现固定顺序的回退链查找：
// 对每个 basename（按注册顺序）依次尝试
//  1. 精确 locale（fr-CA）
//  2. 仅语言（fr）
//  3. 默认 locale
//
// 全部未命中后由 MissPolicy 决定返回 key 还是报错。
// 链路顺序固定不可配置，可配置的只有 MissPolicy。
type Catalog struct {
	store         *Store
	basenames     []string
	locales       []Locale
	defaultLocale Locale
	missPolicy    MissPolicy
}

// NewCatalog 创建 Catalog
// basenames 顺序即查找顺序；locales 为全部受支持的语言（含默认语言）
func NewCatalog(store *Store, basenames []string, locales []Locale, defaultLocale Locale, policy MissPolicy) (*Catalog, error) {
	if store == nil {
		return nil, errors.New("catalog: store 不能为空")
	}
	if len(basenames) == 0 {
		return nil, errors.New("catalog: 至少需要一个 basename")
	}
	if defaultLocale.IsZero() {
		return nil, errors.New("catalog: 必须指定默认 locale")
	}

	seen := make(map[string]bool, len(basenames))
	for _, b := range basenames {
		if b == "" {
			return nil, errors.New("catalog: basename 不能为空")
		}
		if seen[b] {
			return nil, fmt.Errorf("catalog: basename %q 重复注册", b)
		}
		seen[b] = true
	}

	hasDefault := false
	for _, l := range locales {
		if l.Equal(defaultLocale) {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		locales = append([]Locale{defaultLocale}, locales...)
	}

	return &Catalog{
		store:         store,
		basenames:     basenames,
		locales:       locales,
		defaultLocale: defaultLocale,
		missPolicy:    policy,
	}, nil
}

// fallbackChain 构造某 locale 的候选序列：精确 -> 仅语言 -> 默认
func (c *Catalog) fallbackChain(locale Locale) []Locale {
	if locale.IsZero() {
		return []Locale{c.defaultLocale}
	}

	chain := []Locale{locale}
	lang := locale.Language()
	if !lang.Equal(locale) {
		chain = append(chain, lang)
	}

	already := false
	for _, l := range chain {
		if l.Equal(c.defaultLocale) {
			already = true
			break
		}
	}
	if !already {
		chain = append(chain, c.defaultLocale)
	}
	return chain
}

// lookup 在全部 basename 上执行回退链查找，返回命中的模板
func (c *Catalog) lookup(locale Locale, key string) (string, bool, error) {
	chain := c.fallbackChain(locale)

	for _, basename := range c.basenames {
		for _, cand := range chain {
			bundle, err := c.store.Load(basename, cand)
			if err != nil {
				if errors.Is(err, ErrBundleNotFound) {
					// 该 locale 没有覆盖文件，继续回退
					continue
				}
				return "", false, err
			}
			if tpl, ok := bundle.Lookup(key); ok {
				return tpl, true, nil
			}
		}
	}
	return "", false, nil
}

// Resolve 解析 key 并做占位符替换
// 未命中时按 MissPolicy 处理：宽松模式原样返回 key，严格模式返回 MessageNotFoundError
func (c *Catalog) Resolve(locale Locale, key string, args ...any) (string, error) {
	tpl, ok, err := c.lookup(locale, key)
	if err != nil {
		return "", err
	}
	if !ok {
		if c.missPolicy == MissPolicyStrict {
			return "", &MessageNotFoundError{Key: key, Locale: locale.String()}
		}
		return key, nil
	}
	return Interpolate(tpl, args...), nil
}

// TryResolve 永不报错的查找：未命中返回 ("", false)，与 MissPolicy 无关
// 用于需要区分"没有翻译"和"翻译恰好是空串"的调用方
func (c *Catalog) TryResolve(locale Locale, key string, args ...any) (string, bool) {
	tpl, ok, err := c.lookup(locale, key)
	if err != nil || !ok {
		return "", false
	}
	return Interpolate(tpl, args...), true
}

// Preload 预加载全部 (basename, locale) 组合
// 资源解析错误（MalformedBundleError）在这里暴露，启动阶段调用并把错误视为致命
func (c *Catalog) Preload() error {
	for _, basename := range c.basenames {
		for _, locale := range c.locales {
			if _, err := c.store.Load(basename, locale); err != nil && !errors.Is(err, ErrBundleNotFound) {
				return err
			}
		}
	}
	return nil
}

func (c *Catalog) Basenames() []string {
	out := make([]string, len(c.basenames))
	copy(out, c.basenames)
	return out
}

func (c *Catalog) Locales() []Locale {
	out := make([]Locale, len(c.locales))
	copy(out, c.locales)
	return out
}

func (c *Catalog) DefaultLocale() Locale {
	return c.defaultLocale
}

func (c *Catalog) MissPolicy() MissPolicy {
	return c.missPolicy
}

// Supports 判断 locale 是否在受支持列表内（中间件做 Accept-Language 协商时使用）
func (c *Catalog) Supports(locale Locale) bool {
	for _, l := range c.locales {
		if l.Equal(locale) {
			return true
		}
	}
	return false
}
