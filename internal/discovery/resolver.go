// Package discovery resolves the ordered list of image locations the
// animation should load.
//
// Two strategies are tried in order: an explicit JSON manifest (its order
// is authoritative, giving deterministic playback), then anchor-scraping
// of the directory listing HTML. Every failure is swallowed into a log
// line and the next strategy takes over, down to an empty list; resolving
// never fails hard.
package discovery

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Resolver produces the ordered image location list.
type Resolver struct {
	fetcher  Fetcher
	manifest string // 清单文件名，如 "photos.json"；为空时跳过清单策略
}

// NewResolver creates a resolver on top of the given fetcher.
func NewResolver(fetcher Fetcher, manifestName string) *Resolver {
	return &Resolver{fetcher: fetcher, manifest: manifestName}
}

// Resolve returns the normalized image locations, or an empty slice when
// every source is unavailable.
func (r *Resolver) Resolve(ctx context.Context) []string {
	if list := r.fromManifest(ctx); len(list) > 0 {
		log.Printf("[Discovery] ✓ 清单解析成功: %d 个条目", len(list))
		return list
	}
	if list := r.fromListing(ctx); len(list) > 0 {
		log.Printf("[Discovery] ✓ 目录列表解析成功: %d 个条目", len(list))
		return list
	}
	log.Printf("[Discovery] 没有可用的图片来源")
	return nil
}

// fromManifest 获取并解析清单
// ts 参数配合 no-cache 头，保证每次重启都拿到最新清单
func (r *Resolver) fromManifest(ctx context.Context) []string {
	if r.manifest == "" {
		return nil
	}

	loc := fmt.Sprintf("./%s?ts=%d", r.manifest, time.Now().UnixMilli())
	status, body, err := r.fetcher.Fetch(ctx, loc)
	if err != nil {
		log.Printf("[Discovery] 清单获取失败: %v", err)
		return nil
	}
	if status < 200 || status >= 300 {
		log.Printf("[Discovery] 清单返回状态码 %d", status)
		return nil
	}

	entries, err := parseManifest(body)
	if err != nil {
		log.Printf("[Discovery] 清单无效: %v", err)
		return nil
	}
	return NormalizeAll(entries)
}

// fromListing 获取目录列表页并提取图片链接
func (r *Resolver) fromListing(ctx context.Context) []string {
	status, body, err := r.fetcher.Fetch(ctx, "./")
	if err != nil {
		log.Printf("[Discovery] 目录列表获取失败: %v", err)
		return nil
	}
	if status < 200 || status >= 300 {
		log.Printf("[Discovery] 目录列表返回状态码 %d", status)
		return nil
	}
	return NormalizeAll(extractImageRefs(body))
}
