package i18n

import (
	"errors"
	"sync"
)

// ErrStoreFrozen 生产模式下 Store 被冻结，拒绝失效/热加载操作
var ErrStoreFrozen = errors.New("bundle store 已冻结，禁止失效操作")

// Store 按 (basename, locale) 缓存 Bundle
// Bundle 本身只读，重新加载时构建全新对象后整体替换缓存项（copy-on-write），
// 并发读取方永远不会看到半成品
type Store struct {
	source Source
	frozen bool

	mu    sync.RWMutex
	cache map[string]*Bundle // 值为 nil 表示该 locale 无资源（负缓存）
}

// NewStore 创建 Store；frozen 为 true 时 Bundle 进程生命周期内只加载一次
func NewStore(source Source, frozen bool) *Store {
	return &Store{
		source: source,
		frozen: frozen,
		cache:  make(map[string]*Bundle),
	}
}

func cacheKey(basename string, locale Locale) string {
	return basename + "\x00" + locale.String()
}

// Load 返回 (basename, locale) 对应的 Bundle
// 缓存未命中时才访问后端资源；该 locale 无资源时返回 ErrBundleNotFound
func (s *Store) Load(basename string, locale Locale) (*Bundle, error) {
	key := cacheKey(basename, locale)

	s.mu.RLock()
	bundle, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		if bundle == nil {
			return nil, ErrBundleNotFound
		}
		return bundle, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 双重检查：拿写锁期间可能已有其他协程加载完成
	if bundle, ok = s.cache[key]; ok {
		if bundle == nil {
			return nil, ErrBundleNotFound
		}
		return bundle, nil
	}

	messages, err := s.source.ReadBundle(basename, locale)
	if err != nil {
		if errors.Is(err, ErrBundleNotFound) {
			// 负缓存：缺失的 locale 不必每次都访问后端
			s.cache[key] = nil
			return nil, ErrBundleNotFound
		}
		// 解析失败不进缓存，保持加载期致命错误语义
		return nil, err
	}

	bundle = NewBundle(basename, locale, messages)
	s.cache[key] = bundle
	return bundle, nil
}

// Invalidate 丢弃某个缓存项，下次 Load 重新读取后端
// 冻结模式下返回 ErrStoreFrozen
func (s *Store) Invalidate(basename string, locale Locale) error {
	if s.frozen {
		return ErrStoreFrozen
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, cacheKey(basename, locale))
	return nil
}

// InvalidateAll 清空全部缓存（定时热加载任务使用）
func (s *Store) InvalidateAll() error {
	if s.frozen {
		return ErrStoreFrozen
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Bundle)
	return nil
}

// Frozen 是否处于冻结（生产）模式
func (s *Store) Frozen() bool {
	return s.frozen
}
