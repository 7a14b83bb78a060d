package gallery

import "math"

// FracPoint 屏幕比例坐标，X/Y 为屏幕宽高的分数
// 约定取值在 [0,1] 区间内（不强制检查）
type FracPoint struct {
	X float64
	Y float64
}

// Endpoints 飞行路径参数：两个端点加弧度系数
// 路径是一条二次贝塞尔曲线，控制点由端点连线中点沿垂直方向偏移得到
type Endpoints struct {
	Start FracPoint
	End   FracPoint
	Bow   float64 // 控制点偏移量 = Bow × 两端点距离
}

// PathPoint 路径上一点的采样结果
type PathPoint struct {
	X     float64 // 像素坐标
	Y     float64
	Angle float64 // 切线方向（弧度），供沿路径旋转使用
}

// PointAt 计算曲线上进度 t 处的位置与切线方向
//
// 端点按比例放大到 width×height 的像素空间。t 不做钳制，调用方在
// [0,1] 内取值才落在路径上；环绕周期中的负进度由调用方过滤。
func PointAt(ep Endpoints, t, width, height float64) PathPoint {
	x0 := ep.Start.X * width
	y0 := ep.Start.Y * height
	x2 := ep.End.X * width
	y2 := ep.End.Y * height

	dx := x2 - x0
	dy := y2 - y0
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		// 端点重合时曲线退化为一个点，距离下限取 1 避免除零
		dist = 1
	}

	// 控制点：中点沿固定一侧的单位法线偏移 Bow × 距离
	cx := (x0+x2)/2 + (-dy/dist)*ep.Bow*dist
	cy := (y0+y2)/2 + (dx/dist)*ep.Bow*dist

	// 标准二次贝塞尔插值及其一阶导数
	u := 1 - t
	x := u*u*x0 + 2*u*t*cx + t*t*x2
	y := u*u*y0 + 2*u*t*cy + t*t*y2
	dxdt := 2*u*(cx-x0) + 2*t*(x2-cx)
	dydt := 2*u*(cy-y0) + 2*t*(y2-cy)

	return PathPoint{X: x, Y: y, Angle: math.Atan2(dydt, dxdt)}
}
