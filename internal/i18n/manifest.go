package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest bundles.toml 的结构，声明目录里有哪些 basename 和 locale
//
//	default_locale = "en"
//	locales = ["en", "fr", "zh"]
//	basenames = ["messages", "problems"]
//	dir = "bundles"
type Manifest struct {
	DefaultLocale string   `toml:"default_locale"`
	Locales       []string `toml:"locales"`
	Basenames     []string `toml:"basenames"`
	Dir           string   `toml:"dir"`
}

// LoadManifest 读取并解析 bundles.toml
// dir 为相对路径时以 manifest 所在目录为基准
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("解析 manifest %s 失败: %w", path, err)
	}

	if m.DefaultLocale == "" {
		return nil, fmt.Errorf("manifest %s 缺少 default_locale", path)
	}
	if len(m.Basenames) == 0 {
		return nil, fmt.Errorf("manifest %s 缺少 basenames", path)
	}
	if m.Dir == "" {
		m.Dir = "bundles"
	}
	if !filepath.IsAbs(m.Dir) {
		m.Dir = filepath.Join(filepath.Dir(path), m.Dir)
	}

	return &m, nil
}

// BuildCatalog 按 manifest 构建 Store 和 Catalog
// 文件资源打底，extra 里的后端（如数据库）依次叠加覆盖
func (m *Manifest) BuildCatalog(policy MissPolicy, frozen bool, extra ...Source) (*Catalog, *Store, error) {
	defaultLocale, err := ParseLocale(m.DefaultLocale)
	if err != nil {
		return nil, nil, err
	}

	locales := make([]Locale, 0, len(m.Locales))
	for _, s := range m.Locales {
		l, err := ParseLocale(s)
		if err != nil {
			return nil, nil, err
		}
		locales = append(locales, l)
	}

	var source Source = NewFileSource(m.Dir)
	if len(extra) > 0 {
		source = NewLayeredSource(append([]Source{source}, extra...)...)
	}

	store := NewStore(source, frozen)
	catalog, err := NewCatalog(store, m.Basenames, locales, defaultLocale, policy)
	if err != nil {
		return nil, nil, err
	}
	return catalog, store, nil
}
