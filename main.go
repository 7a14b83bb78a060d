// PhotoDrift 照片漂流
//
// 从一个 HTTP 图片目录发现并加载图片，让它们沿一条二次贝塞尔曲线
// 飞行，伴随阶梯式（或平滑）的缩放生长效果。
//
// 用法：
//
//	go run . [--config=photodrift.yaml] [--source=http://host/photos/] [--count=24] [--verbose]
package main

import (
	"context"
	"flag"
	"log"

	"github.com/gonewx/photodrift/pkg/app"
	"github.com/gonewx/photodrift/pkg/config"
	"github.com/gonewx/photodrift/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", "", "配置文件路径，为空时使用内置默认配置")
	verbose    = flag.Bool("verbose", false, "详细日志")
	sourceURL  = flag.String("source", "", "覆盖图片目录地址")
	count      = flag.Int("count", 0, "覆盖预加载图片数量")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	log.Println("=== PhotoDrift 启动 ===")

	// 初始化嵌入资源（必须在任何资源访问之前）
	embedded.Init(assetsFS)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 命令行覆盖
	if *sourceURL != "" {
		cfg.Source.BaseURL = *sourceURL
	}
	if *count > 0 {
		cfg.Animation.MaxImages = *count
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.NewApp(ctx, app.Options{Config: cfg, Verbose: *verbose})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(60)
	if cfg.Window.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("✓ 窗口配置: %dx%d @ 60 TPS", cfg.Window.Width, cfg.Window.Height)
	log.Printf("✓ 图片来源: %s (最多 %d 张)", cfg.Source.BaseURL, cfg.Animation.MaxImages)
	log.Println("=== 启动完成，开始运行 ===")

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}

	// 正常退出：终止后台加载周期
	cancel()
	if err := a.Close(); err != nil {
		log.Printf("关闭时出错: %v", err)
	}
}

// loadConfig 加载配置：--config 指定外部文件，否则用嵌入的默认配置
func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.Load(*configPath)
	}

	data, err := embedded.ReadFile("assets/default_config.yaml")
	if err != nil {
		// 嵌入资源缺失时仍可依靠零值默认
		log.Printf("警告: 内置默认配置读取失败: %v", err)
		return config.Load("")
	}
	return config.Parse(data)
}
