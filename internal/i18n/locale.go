package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale 语言/地区标识（BCP-47 风格，如 "fr-CA"）
// 不可变值类型，支持精确比较和仅语言比较
type Locale struct {
	tag language.Tag
}

// ParseLocale 解析 BCP-47 标签（如 "en"、"zh-CN"、"fr-CA"）
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return Locale{}, fmt.Errorf("locale 不能为空")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, fmt.Errorf("无效的 locale %q: %w", s, err)
	}
	return Locale{tag: tag}, nil
}

// MustParseLocale 初始化阶段使用，解析失败直接 panic
func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Locale) String() string {
	if l.IsZero() {
		return ""
	}
	return l.tag.String()
}

// Language 返回仅保留语言部分的 Locale（"fr-CA" -> "fr"）
func (l Locale) Language() Locale {
	if l.IsZero() {
		return Locale{}
	}
	base, _ := l.tag.Base()
	return Locale{tag: language.MustParse(base.String())}
}

// Equal 精确比较（含地区）
func (l Locale) Equal(other Locale) bool {
	return l.tag == other.tag
}

// SameLanguage 仅比较语言部分（"fr-CA" 与 "fr" 为同一语言）
func (l Locale) SameLanguage(other Locale) bool {
	if l.IsZero() || other.IsZero() {
		return false
	}
	lb, _ := l.tag.Base()
	ob, _ := other.tag.Base()
	return lb == ob
}

func (l Locale) IsZero() bool {
	return l.tag == language.Tag{}
}
