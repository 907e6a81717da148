package service

import (
	"context"

	"msgsource-go/internal/binding"
	"msgsource-go/internal/i18n"
)

// GreetingCard 示例组件：文案句柄由 binding 注册表在构建时注入，
// 渲染时才按请求语言解析
type GreetingCard struct {
	Heading  *i18n.LazyMessage
	Farewell *i18n.LazyMessage
}

// Bindings 进程级注册表，main 初始化
var Bindings *binding.Registry

// InitBindings 注册各组件类型的注入点（启动时调用一次，声明非法直接失败）
func InitBindings(resolver *i18n.Resolver) error {
	Bindings = binding.NewRegistry(resolver)

	return binding.Define(Bindings, func(b *binding.Builder[GreetingCard]) {
		b.Member("Heading", "app.greeting", func(g *GreetingCard, h *i18n.LazyMessage) {
			g.Heading = h
		})
		b.Member("Farewell", "app.farewell", func(g *GreetingCard, h *i18n.LazyMessage) {
			g.Farewell = h
		})
	})
}

// NewGreetingCard 构造实例并注入句柄
func NewGreetingCard() (*GreetingCard, error) {
	card := &GreetingCard{}
	if err := binding.Apply(Bindings, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Greeting 按环境 locale 渲染问候语和告别语
func Greeting(ctx context.Context, name string) (heading, farewell string, err error) {
	card, err := NewGreetingCard()
	if err != nil {
		return "", "", err
	}

	heading, err = card.Heading.Render(ctx, name)
	if err != nil {
		return "", "", err
	}
	farewell, err = card.Farewell.Render(ctx, name)
	if err != nil {
		return "", "", err
	}
	return heading, farewell, nil
}
