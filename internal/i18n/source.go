package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
)

// Source 翻译资源的后端：文件、数据库等
// 某 (basename, locale) 不存在资源时必须返回 ErrBundleNotFound，
// 由 Catalog 决定走默认语言回退，而不是报错
type Source interface {
	ReadBundle(basename string, locale Locale) (map[string]string, error)
}

// LayeredSource 把多个后端叠加为一个：靠后的层覆盖靠前的层
// 典型用法：文件资源打底，数据库维护的条目覆盖/补充
type LayeredSource struct {
	layers []Source
}

func NewLayeredSource(layers ...Source) *LayeredSource {
	return &LayeredSource{layers: layers}
}

func (s *LayeredSource) ReadBundle(basename string, locale Locale) (map[string]string, error) {
	merged := make(map[string]string)
	found := false

	for _, layer := range s.layers {
		messages, err := layer.ReadBundle(basename, locale)
		if err != nil {
			if errors.Is(err, ErrBundleNotFound) {
				continue
			}
			// 解析错误必须冒泡，保持加载期致命语义
			return nil, err
		}
		found = true
		for k, v := range messages {
			merged[k] = v
		}
	}

	if !found {
		return nil, ErrBundleNotFound
	}
	return merged, nil
}

// FileSource 从目录加载 properties 风格的资源文件
// 文件命名约定：<dir>/<basename>_<locale>.properties，例如 messages_en.properties
// 文件内容：UTF-8 编码，每行一条 key=模板，支持 # 和 ! 注释
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) ReadBundle(basename string, locale Locale) (map[string]string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.properties", basename, locale.String()))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrBundleNotFound
	}

	// 禁用 ${} 引用展开：模板里只认 {0} 这类位置占位符
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	props, err := loader.LoadFile(path)
	if err != nil {
		return nil, &MalformedBundleError{
			Basename: basename,
			Locale:   locale.String(),
			Path:     path,
			Err:      err,
		}
	}

	messages := props.Map()

	// 逐条校验模板本身（未闭合占位符在加载期就报错）
	for key, tpl := range messages {
		if err := ValidateTemplate(tpl); err != nil {
			return nil, &MalformedBundleError{
				Basename: basename,
				Locale:   locale.String(),
				Path:     path,
				Err:      fmt.Errorf("key %q: %w", key, err),
			}
		}
	}

	return messages, nil
}
