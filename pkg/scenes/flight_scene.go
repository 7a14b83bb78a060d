package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/gonewx/photodrift/pkg/config"
	"github.com/gonewx/photodrift/pkg/gallery"
	"github.com/gonewx/photodrift/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// guideSamples 参考曲线的采样段数
const guideSamples = 64

// FlightScene 飞行动画主场景
//
// 每帧先让会话排水安装新一代条目并推进进度，然后按进度升序绘制
// 所有活动条目：行程靠后的叠在上层，符合缩略图重叠的纵深感。
// 单个条目的绘制失败只影响当帧，记日志后跳过。
type FlightScene struct {
	session   *gallery.Session
	cfg       *config.Config
	snapshots *gallery.SnapshotManager
	sampler   *utils.ProcSampler
	textFont  *text.GoTextFace

	showGuide      bool
	showHelp       bool
	showStats      bool
	rotateWithPath bool
	helpLines      []string

	stats      utils.ProcStats
	statsTimer float64

	pendingSnapshot bool

	textDrawOpts text.DrawOptions
}

// NewFlightScene 创建飞行场景
// sampler、textFont、snapshots 均可为 nil（对应功能降级）
func NewFlightScene(session *gallery.Session, cfg *config.Config, snapshots *gallery.SnapshotManager,
	sampler *utils.ProcSampler, textFont *text.GoTextFace, helpText string) *FlightScene {
	var helpLines []string
	for _, line := range strings.Split(strings.TrimRight(helpText, "\n"), "\n") {
		helpLines = append(helpLines, line)
	}

	return &FlightScene{
		session:        session,
		cfg:            cfg,
		snapshots:      snapshots,
		sampler:        sampler,
		textFont:       textFont,
		showGuide:      cfg.Display.ShowGuide,
		showHelp:       true,
		rotateWithPath: cfg.Animation.RotateWithPath,
		helpLines:      helpLines,
	}
}

// Update 处理输入并推进动画
func (s *FlightScene) Update(deltaTime float64) {
	s.handleInput()
	s.session.Update(deltaTime)

	// 性能信息每秒采样一次就够了
	if s.showStats && s.sampler != nil {
		s.statsTimer += deltaTime
		if s.statsTimer >= 1.0 {
			s.statsTimer = 0
			if stats, err := s.sampler.Sample(); err == nil {
				s.stats = stats
			}
		}
	}
}

// handleInput 场景级输入绑定
func (s *FlightScene) handleInput() {
	// 修饰键+点击：把一个端点移到点击位置（屏幕比例坐标）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		fx := float64(x) / float64(s.cfg.Window.Width)
		fy := float64(y) / float64(s.cfg.Window.Height)
		switch {
		case ebiten.IsKeyPressed(ebiten.KeyShift):
			s.session.MoveEndTo(fx, fy)
		case ebiten.IsKeyPressed(ebiten.KeyControl):
			s.session.MoveStartTo(fx, fy)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.session.ToggleSmoothScale()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.session.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.session.ResetEndpoints()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s.showGuide = !s.showGuide
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		s.session.AdjustMaxImages(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		s.session.AdjustMaxImages(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.showStats = !s.showStats
		s.statsTimer = 1.0 // 下一帧立即采样
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.pendingSnapshot = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.showHelp = !s.showHelp
	}
}

// Draw 绘制一帧
func (s *FlightScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 20, B: 26, A: 255})

	b := screen.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())
	ep := s.session.Endpoints()

	if s.showGuide {
		s.drawGuide(screen, ep, w, h)
	}

	scaleCfg := s.session.Scale()
	for _, it := range gallery.ActiveSorted(s.session.Items()) {
		if err := s.drawItem(screen, it, ep, scaleCfg, w, h); err != nil {
			log.Printf("[FlightScene] 跳过条目 %s 的本帧绘制: %v", it.Location, err)
		}
	}

	s.drawInfoBar(screen)
	if s.showStats {
		s.drawStats(screen)
	}
	if s.showHelp {
		s.drawHelp(screen)
	}

	// 快照要等全部内容画完再截
	if s.pendingSnapshot {
		s.pendingSnapshot = false
		if s.snapshots != nil {
			if _, err := s.snapshots.Save(screen); err != nil {
				log.Printf("[FlightScene] 保存快照失败: %v", err)
			}
		}
	}
}

// drawItem 绘制单个条目：阴影在下，缩略图居中叠在上面
func (s *FlightScene) drawItem(screen *ebiten.Image, it *gallery.Item, ep gallery.Endpoints,
	scaleCfg gallery.ScaleConfig, w, h float64) error {
	tex := it.Texture()
	if tex == nil {
		return fmt.Errorf("纹理不可用")
	}

	p := it.Progress()
	pt := gallery.PointAt(ep, p, w, h)
	scale := scaleCfg.ScaleFor(p)
	factor := fitScale(tex.Bounds().Dx(), tex.Bounds().Dy(), s.cfg.Animation.ThumbSize, scale)
	alpha := fadeAlpha(p, s.cfg.Animation.FadeMinAlpha, s.cfg.Animation.FadePortion)

	tw := float64(tex.Bounds().Dx())
	th := float64(tex.Bounds().Dy())

	// 柔和阴影：同一张纹理整体压黑、半透明，向右下偏移，偏移量随
	// 条目当前尺寸走
	shadowOff := 2 + 5*scale
	shadowOp := &ebiten.DrawImageOptions{}
	shadowOp.GeoM.Translate(-tw/2, -th/2)
	if s.rotateWithPath {
		shadowOp.GeoM.Rotate(pt.Angle)
	}
	shadowOp.GeoM.Scale(factor, factor)
	shadowOp.GeoM.Translate(pt.X+shadowOff, pt.Y+shadowOff)
	shadowOp.ColorScale.Scale(0, 0, 0, float32(0.3*alpha))
	shadowOp.Filter = ebiten.FilterLinear
	screen.DrawImage(tex, shadowOp)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-tw/2, -th/2)
	if s.rotateWithPath {
		op.GeoM.Rotate(pt.Angle)
	}
	op.GeoM.Scale(factor, factor)
	op.GeoM.Translate(pt.X, pt.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(tex, op)

	return nil
}

// drawGuide 用短线段描出淡淡的参考曲线，两端画上端点标记
func (s *FlightScene) drawGuide(screen *ebiten.Image, ep gallery.Endpoints, w, h float64) {
	guideColor := color.RGBA{R: 90, G: 100, B: 130, A: 90}

	prev := gallery.PointAt(ep, 0, w, h)
	for i := 1; i <= guideSamples; i++ {
		t := float64(i) / guideSamples
		cur := gallery.PointAt(ep, t, w, h)
		vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(cur.X), float32(cur.Y),
			1, guideColor, true)
		prev = cur
	}

	start := gallery.PointAt(ep, 0, w, h)
	end := gallery.PointAt(ep, 1, w, h)
	vector.DrawFilledCircle(screen, float32(start.X), float32(start.Y), 4,
		color.RGBA{R: 110, G: 180, B: 120, A: 200}, true)
	vector.DrawFilledCircle(screen, float32(end.X), float32(end.Y), 4,
		color.RGBA{R: 200, G: 120, B: 110, A: 200}, true)
}

// drawInfoBar 顶部信息栏
func (s *FlightScene) drawInfoBar(screen *ebiten.Image) {
	mode := "阶梯"
	if s.session.Scale().Smooth {
		mode = "平滑"
	}
	info := fmt.Sprintf("FPS: %.1f | 图片: %d | 预加载: %d | 缩放: %s | H 帮助",
		ebiten.ActualFPS(), len(s.session.Items()), s.session.MaxImages(), mode)

	vector.DrawFilledRect(screen, 0, 0, float32(s.cfg.Window.Width), 25,
		color.RGBA{A: 160}, false)
	s.drawText(screen, info, 10, 6)
}

// drawStats 性能信息面板（F3）
func (s *FlightScene) drawStats(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("TPS: %.1f / FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("内存: %.1f MB", s.stats.RSSMB),
		fmt.Sprintf("CPU: %.1f%%", s.stats.CPUPercent),
		fmt.Sprintf("第 %d 代条目", s.session.AppliedGeneration()),
	}

	panelY := float32(s.cfg.Window.Height - 100)
	vector.DrawFilledRect(screen, 0, panelY, 220, 96, color.RGBA{A: 160}, false)
	for i, line := range lines {
		s.drawText(screen, line, 10, float64(panelY)+8+float64(i)*20)
	}
}

// drawHelp 帮助面板，内容来自嵌入的 help.txt
func (s *FlightScene) drawHelp(screen *ebiten.Image) {
	helpWidth := 320
	helpHeight := 20*len(s.helpLines) + 20
	helpX := s.cfg.Window.Width - helpWidth - 20
	helpY := 40

	vector.DrawFilledRect(screen, float32(helpX), float32(helpY), float32(helpWidth), float32(helpHeight),
		color.RGBA{A: 180}, false)
	for i, line := range s.helpLines {
		s.drawText(screen, line, float64(helpX+10), float64(helpY+10+i*20))
	}
}

// drawText 用中文字体绘制一行文字，字体缺失时降级为调试字体
func (s *FlightScene) drawText(screen *ebiten.Image, line string, x, y float64) {
	if s.textFont != nil {
		s.textDrawOpts.GeoM.Reset()
		s.textDrawOpts.GeoM.Translate(x, y)
		s.textDrawOpts.ColorScale.Reset()
		s.textDrawOpts.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, s.textFont, &s.textDrawOpts)
	} else {
		ebitenutil.DebugPrintAt(screen, line, int(x), int(y))
	}
}

// fadeAlpha 计算淡入透明度：进度 0 处为 minAlpha，在行程的前
// portion 段内用缓出曲线升到 1.0，之后保持不透明
func fadeAlpha(progress, minAlpha, portion float64) float64 {
	if portion <= 0 {
		return 1.0
	}
	t := utils.Clamp01(progress / portion)
	return utils.Lerp(minAlpha, 1.0, utils.EaseOutQuad(t))
}

// fitScale 计算绘制缩放系数
//
// 加载器可能给出已缩到缩略图尺寸的位图，也可能给出原尺寸位图
// （解码链的无提示档位），两种都要接受：先把长边归一到 thumbSize，
// 再乘上调度器给的缩放比例
func fitScale(texW, texH, thumbSize int, scale float64) float64 {
	long := texW
	if texH > long {
		long = texH
	}
	if long <= 0 || thumbSize <= 0 {
		return scale
	}
	return scale * float64(thumbSize) / float64(long)
}
