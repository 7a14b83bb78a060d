package gallery

import (
	"context"
	"log"

	"github.com/gonewx/photodrift/internal/discovery"
)

// Pipeline 生产环境的加载周期：发现 → 串行加载 → 占位图兜底
type Pipeline struct {
	resolver         *discovery.Resolver
	loader           *Loader
	placeholderCount int
	thumbSize        int
}

// NewPipeline 组装一条完整的图片加载流水线
func NewPipeline(resolver *discovery.Resolver, loader *Loader, placeholderCount, thumbSize int) *Pipeline {
	return &Pipeline{
		resolver:         resolver,
		loader:           loader,
		placeholderCount: placeholderCount,
		thumbSize:        thumbSize,
	}
}

// Run 执行一次周期
// 一张图都没拿到时用占位图代替，让动画始终有可见内容；
// 上下文已取消的情况例外，此时结果注定被丢弃，不值得再生成
func (p *Pipeline) Run(ctx context.Context, max int) []Decoded {
	locations := p.resolver.Resolve(ctx)
	decoded := p.loader.Load(ctx, locations, max)

	if len(decoded) == 0 && ctx.Err() == nil {
		log.Printf("[Pipeline] 没有加载到任何图片，使用占位图")
		return Placeholders(p.placeholderCount, p.thumbSize)
	}
	return decoded
}
