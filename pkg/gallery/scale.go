package gallery

import (
	"math"

	"github.com/gonewx/photodrift/pkg/utils"
)

// ScaleConfig 缩放调度参数
type ScaleConfig struct {
	Start  float64 // 起始缩放比例，如 0.05
	Steps  int     // 阶梯模式的里程碑数量，如 20
	Smooth bool    // true 平滑缩放；false 阶梯缩放
}

// ScaleFor 根据进度计算显示缩放比例
//
// 平滑模式：从 Start 线性增长到 1.0。
// 阶梯模式：进度量化为 Steps 个里程碑，每跨过一个里程碑放大一格，
// 产生"一跳一跳"的生长效果（刻意的风格选择，不是插值缺陷）。
func (c ScaleConfig) ScaleFor(progress float64) float64 {
	p := utils.Clamp01(progress)

	if c.Smooth {
		return c.Start + p*(1-c.Start)
	}

	steps := c.Steps
	if steps <= 0 {
		steps = 1
	}
	idx := math.Floor(p * float64(steps))
	return math.Min(1.0, c.Start+idx*(1.0/float64(steps)))
}
