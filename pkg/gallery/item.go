package gallery

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// 环绕周期阈值：进度越过 overshootLimit 后回绕到 wrapRestart，
// 形成"预热、飞行、冷却、短暂隐身、再入场"的循环节奏。
// 这两个数值是刻意保留的风格常量，改动会改变整体的呼吸感。
const (
	overshootLimit = 1.2
	wrapRestart    = -0.2
)

// Item 一张参与飞行动画的图片及其计时状态
//
// 由 Session 在一次加载周期完成时批量创建，重启时整代替换，
// 运行期间只有渲染循环推进 progress。
type Item struct {
	Src      image.Image // 解码后的位图（可能已缩放到缩略图尺寸，也可能是原尺寸）
	Location string      // 来源地址，用于日志

	progress float64 // 归一化行程进度，负值表示等待入场
	duration float64 // 单程飞行时长（秒）

	tex       *ebiten.Image // 首次绘制时惰性创建，加载和测试不触碰 GPU
	texFailed bool          // 纹理转换失败后不再重试，当帧跳过
}

// NewItems 从一批解码结果批量创建动画条目
//
// 相邻条目的启动间隔 stagger 折算为进度空间的负初始值
// （progress = -序号×stagger/duration），渲染循环里无需再单独计时。
func NewItems(decoded []Decoded, duration, stagger float64) []*Item {
	if duration <= 0 {
		duration = 1
	}

	items := make([]*Item, 0, len(decoded))
	for i, d := range decoded {
		items = append(items, &Item{
			Src:      d.Src,
			Location: d.Location,
			progress: -float64(i) * stagger / duration,
			duration: duration,
		})
	}
	return items
}

// Progress 返回当前进度
func (it *Item) Progress() float64 {
	return it.progress
}

// Advance 按经过的时间推进进度，越过上限后回绕重新入场
func (it *Item) Advance(deltaTime float64) {
	it.progress += deltaTime / it.duration
	if it.progress > overshootLimit {
		it.progress = wrapRestart
	}
}

// Texture 返回绘制用纹理，首次调用时从 Src 转换
// 转换失败返回 nil，调用方跳过本帧绘制
func (it *Item) Texture() *ebiten.Image {
	if it.tex == nil && !it.texFailed {
		if it.Src == nil {
			it.texFailed = true
			return nil
		}
		it.tex = ebiten.NewImageFromImage(it.Src)
	}
	return it.tex
}

// ActiveSorted 过滤出进度在 [0,1] 内的条目并按进度升序排列
//
// 排序保证行程靠后的条目后绘制、叠在上层，符合缩略图重叠时
// 的自然层次预期。
func ActiveSorted(items []*Item) []*Item {
	active := make([]*Item, 0, len(items))
	for _, it := range items {
		if it.progress >= 0 && it.progress <= 1 {
			active = append(active, it)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].progress < active[j].progress
	})
	return active
}
