package gallery

import (
	"context"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// maxImagesLimit 预加载数量的硬上限
const maxImagesLimit = 200

// CycleRunner 执行一次完整的"发现→加载"周期，返回解码结果
// 整个周期内条目仍然严格串行加载
type CycleRunner interface {
	Run(ctx context.Context, max int) []Decoded
}

// Params 会话的初始参数，来自配置文件
type Params struct {
	Duration     float64   // 单张图片飞行时长（秒）
	Stagger      float64   // 相邻图片的启动间隔（秒）
	MaxImages    int       // 预加载数量
	Bow          float64   // 默认弧度系数
	DefaultStart FracPoint // 默认路径起点
	DefaultEnd   FracPoint // 默认路径终点
	Scale        ScaleConfig
}

// cycleResult 一次加载周期的产出，带代号用于丢弃过期结果
type cycleResult struct {
	gen   uint64
	items []*Item
}

// Session 动画会话控制器
//
// 持有路径端点、缩放模式和当前一代动画条目，对外暴露启动/重启和
// 端点配置操作。可变状态全部只在更新协程（Ebitengine 的 Update 与
// 输入处理）里读写；后台每个加载周期一个协程，只通过结果通道和
// 原子计数器与更新协程通信，因此不需要锁。
//
// 代号机制保证重启原子性：每次 Start 递增代号并取消上一个周期，
// 安装时只接受与最新代号一致的结果，过期结果整批丢弃，新旧两代
// 条目永远不会混在同一帧里。
type Session struct {
	params Params
	runner CycleRunner
	base   context.Context

	// 以下字段仅更新协程读写
	endpoints Endpoints
	scale     ScaleConfig
	maxImages int
	items     []*Item
	applied   uint64 // 当前已安装条目的代号
	cancel    context.CancelFunc
	group     *errgroup.Group

	// 结果通道带缓冲，过期结果留在通道里等下一次排水时被代号检查丢弃
	results chan cycleResult

	generation atomic.Uint64 // 最近一次 Start 的代号

	// 加载进度，供加载场景跨协程读取
	progressDone  atomic.Int64
	progressTotal atomic.Int64
	progressLoc   atomic.Value // string
}

// NewSession 创建会话
//
// base 是所有加载周期的父上下文，应用退出时取消它即可终止后台加载。
// runner 可先传 nil、装配好流水线后用 SetRunner 补上（加载器的进度
// 回调指向会话，二者互相引用，只能分两步组装）。
func NewSession(base context.Context, params Params, runner CycleRunner) *Session {
	if params.MaxImages <= 0 {
		params.MaxImages = 1
	}
	s := &Session{
		params:    params,
		runner:    runner,
		base:      base,
		endpoints: Endpoints{Start: params.DefaultStart, End: params.DefaultEnd, Bow: params.Bow},
		scale:     params.Scale,
		maxImages: params.MaxImages,
		results:   make(chan cycleResult, 4),
	}
	s.progressLoc.Store("")
	return s
}

// SetRunner 设置周期执行器，必须在第一次 Start 之前调用
func (s *Session) SetRunner(runner CycleRunner) {
	s.runner = runner
}

// Start 启动一次完整的发现→加载→安装周期
// 可以反复调用：上一个未完成的周期会被取消，其结果被代号检查丢弃
func (s *Session) Start() {
	if s.runner == nil {
		log.Printf("[Session] 错误: 周期执行器未设置")
		return
	}

	gen := s.generation.Add(1)

	if s.cancel != nil {
		s.cancel()
	}
	cycleCtx, cancel := context.WithCancel(s.base)
	s.cancel = cancel

	s.progressDone.Store(0)
	s.progressTotal.Store(int64(s.maxImages))
	s.progressLoc.Store("")

	max := s.maxImages
	g, ctx := errgroup.WithContext(cycleCtx)
	s.group = g
	g.Go(func() error {
		decoded := s.runner.Run(ctx, max)
		items := NewItems(decoded, s.params.Duration, s.params.Stagger)
		select {
		case s.results <- cycleResult{gen: gen, items: items}:
		case <-ctx.Done():
		}
		return nil
	})

	log.Printf("[Session] 启动第 %d 代加载周期 (最多 %d 张)", gen, max)
}

// Update 每帧调用：先排水安装新一代条目，再推进所有条目的进度
func (s *Session) Update(deltaTime float64) {
	s.drain()
	for _, it := range s.items {
		it.Advance(deltaTime)
	}
}

// drain 取出所有待安装结果，只接受最新代号
func (s *Session) drain() {
	for {
		select {
		case res := <-s.results:
			latest := s.generation.Load()
			if res.gen != latest {
				log.Printf("[Session] 丢弃过期的第 %d 代结果 (最新第 %d 代)", res.gen, latest)
				continue
			}
			s.items = res.items
			s.applied = res.gen
			log.Printf("[Session] ✓ 安装第 %d 代条目: %d 个", res.gen, len(res.items))
		default:
			return
		}
	}
}

// Items 返回当前一代的动画条目
func (s *Session) Items() []*Item {
	return s.items
}

// Ready 返回是否已有至少一代条目安装完成
func (s *Session) Ready() bool {
	return s.applied > 0
}

// AppliedGeneration 返回当前已安装条目的代号
func (s *Session) AppliedGeneration() uint64 {
	return s.applied
}

// Endpoints 返回当前路径参数
func (s *Session) Endpoints() Endpoints {
	return s.endpoints
}

// Scale 返回当前缩放调度参数
func (s *Session) Scale() ScaleConfig {
	return s.scale
}

// MaxImages 返回当前预加载数量
func (s *Session) MaxImages() int {
	return s.maxImages
}

// Progress 返回当前加载周期的进度
func (s *Session) Progress() (done, total int, location string) {
	return int(s.progressDone.Load()), int(s.progressTotal.Load()), s.progressLoc.Load().(string)
}

// ReportProgress 实现 ProgressFunc，供加载器回调
func (s *Session) ReportProgress(done, total int, location string) {
	s.progressDone.Store(int64(done))
	s.progressTotal.Store(int64(total))
	s.progressLoc.Store(location)
}

// ConfigureEndpoints 一次设置两个端点（可选覆盖弧度系数）并重启
// 操作幂等，可安全重复调用
func (s *Session) ConfigureEndpoints(sx, sy, ex, ey float64, bow ...float64) {
	s.endpoints.Start = FracPoint{X: sx, Y: sy}
	s.endpoints.End = FracPoint{X: ex, Y: ey}
	if len(bow) > 0 {
		s.endpoints.Bow = bow[0]
	}
	log.Printf("[Session] 配置路径端点: (%.2f, %.2f) → (%.2f, %.2f), 弧度 %.2f",
		sx, sy, ex, ey, s.endpoints.Bow)
	s.Start()
}

// ResetEndpoints 恢复默认路径布局并重启
func (s *Session) ResetEndpoints() {
	s.endpoints = Endpoints{Start: s.params.DefaultStart, End: s.params.DefaultEnd, Bow: s.params.Bow}
	log.Printf("[Session] 恢复默认路径端点")
	s.Start()
}

// MoveStartTo 把路径起点移到屏幕比例坐标 (fx, fy) 并重启
func (s *Session) MoveStartTo(fx, fy float64) {
	s.endpoints.Start = FracPoint{X: fx, Y: fy}
	log.Printf("[Session] 起点移动到 (%.2f, %.2f)", fx, fy)
	s.Start()
}

// MoveEndTo 把路径终点移到屏幕比例坐标 (fx, fy) 并重启
func (s *Session) MoveEndTo(fx, fy float64) {
	s.endpoints.End = FracPoint{X: fx, Y: fy}
	log.Printf("[Session] 终点移动到 (%.2f, %.2f)", fx, fy)
	s.Start()
}

// SetSmoothScale 设置缩放模式，立即对后续帧生效，不触发重启
func (s *Session) SetSmoothScale(smooth bool) {
	s.scale.Smooth = smooth
}

// ToggleSmoothScale 切换缩放模式并返回新值
func (s *Session) ToggleSmoothScale() bool {
	s.scale.Smooth = !s.scale.Smooth
	log.Printf("[Session] 缩放模式切换为 smooth=%v", s.scale.Smooth)
	return s.scale.Smooth
}

// SetMaxImages 设置预加载数量（钳制在 [1, 200]）并重启
func (s *Session) SetMaxImages(n int) {
	if n < 1 {
		n = 1
	}
	if n > maxImagesLimit {
		n = maxImagesLimit
	}
	s.maxImages = n
	log.Printf("[Session] 预加载数量设为 %d", n)
	s.Start()
}

// AdjustMaxImages 按增量调整预加载数量并重启，返回新值
func (s *Session) AdjustMaxImages(delta int) int {
	s.SetMaxImages(s.maxImages + delta)
	return s.maxImages
}

// Close 取消进行中的加载周期并等待后台协程退出
func (s *Session) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.group != nil {
		return s.group.Wait()
	}
	return nil
}
