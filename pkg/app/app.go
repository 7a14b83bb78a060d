// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：组装图片发现/加载流水线、
// 动画会话和场景，实现 ebiten.Game 接口。
package app

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/gonewx/photodrift/internal/discovery"
	"github.com/gonewx/photodrift/pkg/config"
	"github.com/gonewx/photodrift/pkg/embedded"
	"github.com/gonewx/photodrift/pkg/gallery"
	"github.com/gonewx/photodrift/pkg/scenes"
	"github.com/gonewx/photodrift/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
)

// Options 应用启动选项
type Options struct {
	// Config 完整配置
	Config *config.Config
	// Verbose 启用详细日志输出
	Verbose bool
}

// App 应用核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.Config
	session      *gallery.Session
	sceneManager *gallery.SceneManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if !opts.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("缺少配置")
	}

	// 图片发现/加载流水线
	fetcher := discovery.NewHTTPFetcher(cfg.Source.BaseURL,
		time.Duration(cfg.Source.TimeoutSeconds)*time.Second)
	resolver := discovery.NewResolver(fetcher, cfg.Source.Manifest)

	// 动画会话
	session := gallery.NewSession(ctx, gallery.Params{
		Duration:     cfg.Animation.Duration,
		Stagger:      cfg.Animation.Stagger,
		MaxImages:    cfg.Animation.MaxImages,
		Bow:          cfg.Animation.BowFactor,
		DefaultStart: gallery.FracPoint{X: cfg.Path.StartX, Y: cfg.Path.StartY},
		DefaultEnd:   gallery.FracPoint{X: cfg.Path.EndX, Y: cfg.Path.EndY},
		Scale: gallery.ScaleConfig{
			Start:  cfg.Animation.StartScale,
			Steps:  cfg.Animation.ScaleSteps,
			Smooth: cfg.Animation.SmoothScale,
		},
	}, nil)

	loader := gallery.NewLoader(fetcher, cfg.Animation.ThumbSize, session.ReportProgress)
	pipeline := gallery.NewPipeline(resolver, loader,
		cfg.Display.PlaceholderCount, cfg.Animation.ThumbSize)
	session.SetRunner(pipeline)

	// 快照存储：gdata 打不开时降级为仅日志，不影响运行
	gdataManager, err := gdata.Open(gdata.Config{AppName: "photodrift"})
	if err != nil {
		log.Printf("[App] Warning: gdata 初始化失败: %v (快照功能降级)", err)
		gdataManager = nil
	}
	snapshots := gallery.NewSnapshotManager(gdataManager)

	// 性能采样器，同样允许缺席
	sampler, err := utils.NewProcSampler()
	if err != nil {
		log.Printf("[App] Warning: 进程采样器初始化失败: %v", err)
		sampler = nil
	}

	// 中文字体，缺失时信息面板降级为调试字体
	textFont, err := loadFont(cfg.Display.FontPath, 14)
	if err != nil {
		log.Printf("[App] 警告: 无法加载中文字体: %v (将使用调试字体)", err)
	} else if textFont != nil {
		log.Printf("[App] ✓ 加载中文字体: %s (14px)", cfg.Display.FontPath)
	}

	helpText := loadHelpText()

	// 场景装配
	sceneManager := gallery.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) gallery.Scene {
		switch name {
		case "loading":
			return scenes.NewLoadingScene(session, sceneManager, cfg, textFont)
		case "flight":
			return scenes.NewFlightScene(session, cfg, snapshots, sampler, textFont, helpText)
		default:
			return nil
		}
	})
	sceneManager.SwitchToNamed("loading")

	// 启动第一个加载周期
	session.Start()

	log.Printf("[App] ✓ 初始化完成: %s", cfg.Source.BaseURL)

	return &App{
		cfg:          cfg,
		session:      session,
		sceneManager: sceneManager,
		verbose:      opts.Verbose,
	}, nil
}

// Update 更新应用逻辑，每个 tick 调用一次（每秒 60 次）
func (a *App) Update() error {
	// ESC 退出
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Session 返回动画会话，供外部调用公开控制接口
// （Start / ConfigureEndpoints 等操作均可安全重复调用）
func (a *App) Session() *gallery.Session {
	return a.session
}

// Close 终止后台加载并释放资源
func (a *App) Close() error {
	return a.session.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// loadFont 加载字体文件，path 为空时直接走降级路径
func loadFont(path string, size float64) (*text.GoTextFace, error) {
	if path == "" {
		return nil, nil
	}

	fontData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取字体文件 %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("无法创建字体源 %s: %w", path, err)
	}

	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// loadHelpText 读取嵌入的帮助文本
func loadHelpText() string {
	data, err := embedded.ReadFile("assets/help.txt")
	if err != nil {
		log.Printf("[App] 警告: 帮助文本加载失败: %v", err)
		return "H - 显示/隐藏帮助"
	}
	return string(data)
}
