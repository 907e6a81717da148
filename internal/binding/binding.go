// Package binding 在组件构建时自动注入延迟渲染的消息句柄
//
// 组件类型通过显式的 builder 注册声明自己需要哪些 message key
// （声明一次、按类型缓存），之后每个新实例在 Apply 时拿到各自全新的
// LazyMessage。注册阶段就做完所有校验：空 key、重复成员、默认语言下
// 解析不到的 key 都是启动期致命错误，绝不留到运行期。
package binding

import (
	"fmt"
	"sync"

	"msgsource-go/internal/i18n"
)

// ConfigurationError 注入点声明非法（注册期致命错误），
// 错误信息里带上所属类型和成员名，方便直接定位
type ConfigurationError struct {
	Type   string
	Member string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("binding: 类型 %s 配置非法: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("binding: 类型 %s 成员 %s 配置非法: %s", e.Type, e.Member, e.Reason)
}

// point 一个类型化的注入点：成员名 + 绑定的 key + 赋值闭包
type point[T any] struct {
	member string
	key    string
	assign func(*T, *i18n.LazyMessage)
}

// typeEntry 某组件类型的注入点清单（按声明顺序，注册后只读）
type typeEntry struct {
	members []string
	points  any // []point[T]，类型擦除存放
}

// Registry 按组件类型缓存注入点清单
// 注册是 O(成员数)、每类型一次；Apply 是每实例一次
type Registry struct {
	resolver *i18n.Resolver

	mu    sync.RWMutex
	types map[string]*typeEntry
}

func NewRegistry(resolver *i18n.Resolver) *Registry {
	return &Registry{
		resolver: resolver,
		types:    make(map[string]*typeEntry),
	}
}

// Resolver 底层的消息解析器
func (r *Registry) Resolver() *i18n.Resolver {
	return r.resolver
}

// Defined 某类型是否已注册
func (r *Registry) Defined(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[typeName]
	return ok
}

// Members 某类型已声明的注入点成员名（声明顺序）
func (r *Registry) Members(typeName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.types[typeName]
	if !ok {
		return nil
	}
	out := make([]string, len(entry.members))
	copy(out, entry.members)
	return out
}

// Builder 收集一个组件类型的注入点声明
type Builder[T any] struct {
	typeName string
	points   []point[T]
	errs     []error
}

// Member 声明一个注入点：成员 member 绑定 key，assign 负责把句柄写进实例
// 载体类型的兼容性由 assign 闭包的签名在编译期保证
func (b *Builder[T]) Member(member, key string, assign func(*T, *i18n.LazyMessage)) *Builder[T] {
	if member == "" {
		b.errs = append(b.errs, &ConfigurationError{Type: b.typeName, Reason: "成员名不能为空"})
		return b
	}
	if key == "" {
		b.errs = append(b.errs, &ConfigurationError{Type: b.typeName, Member: member, Reason: "message key 不能为空"})
		return b
	}
	if assign == nil {
		b.errs = append(b.errs, &ConfigurationError{Type: b.typeName, Member: member, Reason: "缺少赋值函数"})
		return b
	}
	for _, p := range b.points {
		if p.member == member {
			b.errs = append(b.errs, &ConfigurationError{Type: b.typeName, Member: member, Reason: "注入点重复声明"})
			return b
		}
	}
	b.points = append(b.points, point[T]{member: member, key: key, assign: assign})
	return b
}

func typeNameOf[T any]() string {
	var zero *T
	return fmt.Sprintf("%T", zero)[1:] // 去掉前导 '*'
}

// Define 注册组件类型 T 的注入点清单
// 注册期校验全部声明：任何一条非法都返回 ConfigurationError，调用方应视为启动失败
func Define[T any](reg *Registry, configure func(*Builder[T])) error {
	typeName := typeNameOf[T]()

	b := &Builder[T]{typeName: typeName}
	configure(b)

	if len(b.errs) > 0 {
		return b.errs[0]
	}
	if len(b.points) == 0 {
		return &ConfigurationError{Type: typeName, Reason: "没有声明任何注入点"}
	}

	// key 必须能在默认语言下解析到，配置写错在启动时就报出来
	defaultLocale := reg.resolver.Catalog().DefaultLocale()
	for _, p := range b.points {
		if _, ok := reg.resolver.Catalog().TryResolve(defaultLocale, p.key); !ok {
			return &ConfigurationError{
				Type:   typeName,
				Member: p.member,
				Reason: fmt.Sprintf("key %q 在默认语言 %s 下无法解析", p.key, defaultLocale),
			}
		}
	}

	members := make([]string, len(b.points))
	for i, p := range b.points {
		members[i] = p.member
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.types[typeName]; ok {
		return &ConfigurationError{Type: typeName, Reason: "类型重复注册"}
	}
	reg.types[typeName] = &typeEntry{members: members, points: b.points}
	return nil
}

// MustDefine 初始化阶段使用，注册失败直接 panic
func MustDefine[T any](reg *Registry, configure func(*Builder[T])) {
	if err := Define(reg, configure); err != nil {
		panic(err)
	}
}

// Include 把内嵌类型 S 已注册的注入点并入 T 的声明（模拟继承链上的成员收集）
// get 返回实例里内嵌的 S，赋值经由它转发
func Include[T, S any](reg *Registry, b *Builder[T], get func(*T) *S) {
	embeddedName := typeNameOf[S]()

	reg.mu.RLock()
	entry, ok := reg.types[embeddedName]
	reg.mu.RUnlock()
	if !ok {
		b.errs = append(b.errs, &ConfigurationError{
			Type:   b.typeName,
			Reason: fmt.Sprintf("内嵌类型 %s 尚未注册", embeddedName),
		})
		return
	}

	for _, sp := range entry.points.([]point[S]) {
		sp := sp
		b.Member(embeddedName+"."+sp.member, sp.key, func(t *T, h *i18n.LazyMessage) {
			sp.assign(get(t), h)
		})
	}
}

// Apply 为一个新实例注入句柄：每个注入点创建一个独立的 LazyMessage
func Apply[T any](reg *Registry, target *T) error {
	typeName := typeNameOf[T]()

	reg.mu.RLock()
	entry, ok := reg.types[typeName]
	reg.mu.RUnlock()
	if !ok {
		return &ConfigurationError{Type: typeName, Reason: "类型未注册，无法注入"}
	}

	for _, p := range entry.points.([]point[T]) {
		p.assign(target, reg.resolver.Lazy(p.key))
	}
	return nil
}

// MustApply 注入失败直接 panic（用于构造函数内部）
func MustApply[T any](reg *Registry, target *T) {
	if err := Apply(reg, target); err != nil {
		panic(err)
	}
}
