package gallery

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/gonewx/photodrift/internal/discovery"
)

// Decoded 一张成功加载的图片
type Decoded struct {
	Src      image.Image
	Location string
}

// ProgressFunc 加载进度回调：done 已收集张数，total 目标张数，
// location 当前正在加载的地址（结束时为空串）。回调在加载协程里
// 触发，实现方自己保证并发安全。
type ProgressFunc func(done, total int, location string)

// Loader 按顺序逐张拉取并解码图片
//
// 单条目失败只记一行日志然后跳过，整个加载过程不会失败；
// 条目严格串行，上一张完全结束（成功或跳过）才开始下一张。
// 典型数量是几十张，简单性优先于吞吐。
type Loader struct {
	fetcher    discovery.Fetcher
	thumbSize  int
	onProgress ProgressFunc
}

// NewLoader 创建加载器，onProgress 可为 nil
func NewLoader(fetcher discovery.Fetcher, thumbSize int, onProgress ProgressFunc) *Loader {
	return &Loader{
		fetcher:    fetcher,
		thumbSize:  thumbSize,
		onProgress: onProgress,
	}
}

// Load 依次加载 locations 中的图片，最多收集 max 张
//
// 返回值保持输入顺序；集满 max 张后提前停止，上下文取消时
// 返回已收集的部分。max <= 0 视为不限制。
func (l *Loader) Load(ctx context.Context, locations []string, max int) []Decoded {
	total := len(locations)
	if max > 0 && total > max {
		total = max
	}

	out := make([]Decoded, 0, total)
	for _, loc := range locations {
		if max > 0 && len(out) >= max {
			break
		}
		if ctx.Err() != nil {
			log.Printf("[Loader] 加载被取消，已收集 %d 张", len(out))
			break
		}

		l.report(len(out), total, loc)

		img, err := l.loadOne(ctx, loc)
		if err != nil {
			log.Printf("[Loader] 跳过 %s: %v", loc, err)
			continue
		}
		out = append(out, Decoded{Src: img, Location: loc})
	}

	l.report(len(out), total, "")
	log.Printf("[Loader] ✓ 加载完成: %d/%d 张", len(out), total)
	return out
}

// loadOne 拉取并解码单张图片
func (l *Loader) loadOne(ctx context.Context, location string) (image.Image, error) {
	status, body, err := l.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("状态码 %d", status)
	}
	return decodeImage(body, l.thumbSize)
}

// report 进度回调的判空包装
func (l *Loader) report(done, total int, location string) {
	if l.onProgress != nil {
		l.onProgress(done, total, location)
	}
}
