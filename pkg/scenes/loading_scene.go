package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/photodrift/pkg/config"
	"github.com/gonewx/photodrift/pkg/gallery"
	"github.com/gonewx/photodrift/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LoadingScene 加载画面
//
// 显示当前加载周期的真实进度（进度条做了缓动平滑，不会一格一格跳），
// 第一代条目安装完成后自动切换到飞行场景。
type LoadingScene struct {
	session      *gallery.Session
	sceneManager *gallery.SceneManager
	cfg          *config.Config
	textFont     *text.GoTextFace

	elapsedTime     float64 // 场景启动以来的秒数，驱动省略号动画
	displayProgress float64 // 平滑后的显示进度

	textDrawOpts text.DrawOptions
}

// NewLoadingScene 创建加载场景
// textFont 可为 nil，此时文字降级为调试字体
func NewLoadingScene(session *gallery.Session, sm *gallery.SceneManager, cfg *config.Config, textFont *text.GoTextFace) *LoadingScene {
	return &LoadingScene{
		session:      session,
		sceneManager: sm,
		cfg:          cfg,
		textFont:     textFont,
	}
}

// Update 推进加载进度显示，加载完成后切换场景
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime
	s.session.Update(deltaTime)

	done, total, _ := s.session.Progress()
	target := 0.0
	if total > 0 {
		target = float64(done) / float64(total)
	}

	// 朝目标进度缓动，视觉上比直接跳变平滑
	s.displayProgress = utils.Lerp(s.displayProgress, target, math.Min(1, deltaTime*8))

	if s.session.Ready() {
		s.sceneManager.SwitchToNamed("flight")
	}
}

// Draw 绘制进度条和当前加载的文件名
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 32, A: 255})

	w := float64(s.cfg.Window.Width)
	h := float64(s.cfg.Window.Height)

	// 进度条整体在前半秒内缓出淡入
	intro := utils.EaseOutCubic(math.Min(1, s.elapsedTime*2))

	barW := w * 0.5
	barH := 14.0
	barX := (w - barW) / 2
	barY := h * 0.55

	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barW), float32(barH),
		1, fadeColor(color.RGBA{R: 120, G: 130, B: 150, A: 255}, intro), true)
	fillW := barW * utils.Clamp01(s.displayProgress)
	if fillW > 2 {
		vector.DrawFilledRect(screen, float32(barX+1), float32(barY+1), float32(fillW-2), float32(barH-2),
			fadeColor(color.RGBA{R: 110, G: 180, B: 120, A: 255}, intro), true)
	}

	// 标题和当前文件
	done, total, location := s.session.Progress()
	dots := int(s.elapsedTime*2)%3 + 1
	title := "正在加载图片" + "..."[:dots]
	detail := fmt.Sprintf("%d / %d", done, total)
	if location != "" {
		detail += "  " + location
	}

	s.drawText(screen, title, barX, barY-34)
	s.drawText(screen, detail, barX, barY+barH+12)
}

// fadeColor 按比例压暗压透一个颜色（预乘语义）
func fadeColor(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// drawText 用中文字体绘制一行文字，字体缺失时降级为调试字体
func (s *LoadingScene) drawText(screen *ebiten.Image, line string, x, y float64) {
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
