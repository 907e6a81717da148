package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FindingKind 一致性问题的类别
type FindingKind string

const (
	// FindingMissing 某 locale 缺少默认语言里存在的 key
	FindingMissing FindingKind = "missing"
	// FindingOrphaned 某 locale 存在默认语言里没有的 key（孤儿翻译）
	FindingOrphaned FindingKind = "orphaned"
	// FindingUnresolvable 必须存在的 key（problem title/detail）在某 locale 下无法解析
	FindingUnresolvable FindingKind = "unresolvable"
)

// ConsistencyFinding 单条一致性问题，定位到 basename + locale + key
type ConsistencyFinding struct {
	Basename string      `json:"basename,omitempty"`
	Locale   string      `json:"locale"`
	Key      string      `json:"key"`
	Kind     FindingKind `json:"kind"`
}

func (f ConsistencyFinding) String() string {
	if f.Basename == "" {
		return fmt.Sprintf("[%s] locale=%s key=%s", f.Kind, f.Locale, f.Key)
	}
	return fmt.Sprintf("[%s] basename=%s locale=%s key=%s", f.Kind, f.Basename, f.Locale, f.Key)
}

// ConsistencyReport 校验结果汇总，所有问题聚合在一份报告里
type ConsistencyReport struct {
	Findings []ConsistencyFinding `json:"findings"`
}

// OK 没有任何问题时为 true
func (r *ConsistencyReport) OK() bool {
	return len(r.Findings) == 0
}

func (r *ConsistencyReport) String() string {
	if r.OK() {
		return "一致性校验通过，无问题"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "一致性校验发现 %d 个问题:\n", len(r.Findings))
	for _, f := range r.Findings {
		sb.WriteString("  " + f.String() + "\n")
	}
	return sb.String()
}

// ValidateConsistency 构建/测试期的静态校验，不在请求路径上运行
//
// 1. 对每个 basename，比较每个 locale 与默认 locale 的 key 集合，
//    非空的对称差都是问题（missing / orphaned）。没有资源文件的 locale
//    视为"无覆盖"，不参与比较（缺失文件本身不是错误）。
// 2. requiredKeys（problem 注册表导出的 title/detail key）必须在每个
//    注册的 locale 下都能解析（允许回退链命中）。
//
// 所有问题聚合成一份确定性排序的报告，绝不吞掉任何子集。
func ValidateConsistency(catalog *Catalog, requiredKeys []string) (*ConsistencyReport, error) {
	report := &ConsistencyReport{}
	store := catalog.store
	defaultLocale := catalog.DefaultLocale()

	for _, basename := range catalog.Basenames() {
		defaultBundle, err := store.Load(basename, defaultLocale)
		if err != nil {
			if errors.Is(err, ErrBundleNotFound) {
				return nil, fmt.Errorf("basename %q 缺少默认语言 %s 的资源", basename, defaultLocale)
			}
			return nil, err
		}

		defaultKeys := make(map[string]bool, defaultBundle.Len())
		for _, k := range defaultBundle.Keys() {
			defaultKeys[k] = true
		}

		for _, locale := range catalog.Locales() {
			if locale.Equal(defaultLocale) {
				continue
			}

			bundle, err := store.Load(basename, locale)
			if err != nil {
				if errors.Is(err, ErrBundleNotFound) {
					// 该 locale 无覆盖文件，回退链兜底，不算问题
					continue
				}
				return nil, err
			}

			localeKeys := make(map[string]bool, bundle.Len())
			for _, k := range bundle.Keys() {
				localeKeys[k] = true
			}

			for k := range defaultKeys {
				if !localeKeys[k] {
					report.Findings = append(report.Findings, ConsistencyFinding{
						Basename: basename,
						Locale:   locale.String(),
						Key:      k,
						Kind:     FindingMissing,
					})
				}
			}
			for k := range localeKeys {
				if !defaultKeys[k] {
					report.Findings = append(report.Findings, ConsistencyFinding{
						Basename: basename,
						Locale:   locale.String(),
						Key:      k,
						Kind:     FindingOrphaned,
					})
				}
			}
		}
	}

	// problem key 的 title/detail 必须在每个 locale 下可解析
	for _, key := range requiredKeys {
		for _, locale := range catalog.Locales() {
			if _, ok := catalog.TryResolve(locale, key); !ok {
				report.Findings = append(report.Findings, ConsistencyFinding{
					Locale: locale.String(),
					Key:    key,
					Kind:   FindingUnresolvable,
				})
			}
		}
	}

	// 排序保证两次运行产出完全一致的报告
	sort.Slice(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.Basename != b.Basename {
			return a.Basename < b.Basename
		}
		if a.Locale != b.Locale {
			return a.Locale < b.Locale
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Kind < b.Kind
	})

	return report, nil
}
