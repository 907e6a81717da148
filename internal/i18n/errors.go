package i18n

import (
	"errors"
	"fmt"
)

// ErrBundleNotFound 表示某 (basename, locale) 没有对应的资源文件
// 这不是错误场景：该 locale 没有覆盖文件时走默认语言回退
var ErrBundleNotFound = errors.New("bundle not found")

// MalformedBundleError 资源文件解析失败（加载期致命错误）
type MalformedBundleError struct {
	Basename string
	Locale   string
	Path     string
	Err      error
}

func (e *MalformedBundleError) Error() string {
	return fmt.Sprintf("bundle %s/%s (%s) 格式非法: %v", e.Basename, e.Locale, e.Path, e.Err)
}

func (e *MalformedBundleError) Unwrap() error {
	return e.Err
}

// MessageNotFoundError 严格模式下 key 在所有回退链中都未命中
type MessageNotFoundError struct {
	Key    string
	Locale string
}

func (e *MessageNotFoundError) Error() string {
	return fmt.Sprintf("message key %q 在 locale %q 下无翻译", e.Key, e.Locale)
}
