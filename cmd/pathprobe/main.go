// cmd/pathprobe/main.go
// 路径采样表工具 - 不开窗口调曲线
//
// 按配置采样飞行路径，打印每个进度处的位置、切线角和两种模式的
// 缩放比例，方便在终端里肉眼核对曲线参数。
//
// 用法：
//
//	go run ./cmd/pathprobe [--config=photodrift.yaml] [--samples=20]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"text/tabwriter"

	"github.com/gonewx/photodrift/pkg/config"
	"github.com/gonewx/photodrift/pkg/gallery"
)

var (
	configPath = flag.String("config", "", "配置文件路径，为空时使用默认配置")
	samples    = flag.Int("samples", 20, "采样段数")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	ep := gallery.Endpoints{
		Start: gallery.FracPoint{X: cfg.Path.StartX, Y: cfg.Path.StartY},
		End:   gallery.FracPoint{X: cfg.Path.EndX, Y: cfg.Path.EndY},
		Bow:   cfg.Animation.BowFactor,
	}
	stepped := gallery.ScaleConfig{Start: cfg.Animation.StartScale, Steps: cfg.Animation.ScaleSteps}
	smooth := gallery.ScaleConfig{Start: cfg.Animation.StartScale, Steps: cfg.Animation.ScaleSteps, Smooth: true}
	w := float64(cfg.Window.Width)
	h := float64(cfg.Window.Height)

	fmt.Printf("路径: (%.2f, %.2f) → (%.2f, %.2f), 弧度 %.2f, 画面 %dx%d\n\n",
		ep.Start.X, ep.Start.Y, ep.End.X, ep.End.Y, ep.Bow, cfg.Window.Width, cfg.Window.Height)

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "进度\tX\tY\t切线角(度)\t阶梯缩放\t平滑缩放")
	for i := 0; i <= *samples; i++ {
		t := float64(i) / float64(*samples)
		pt := gallery.PointAt(ep, t, w, h)
		fmt.Fprintf(tw, "%.2f\t%.1f\t%.1f\t%.1f\t%.3f\t%.3f\n",
			t, pt.X, pt.Y, pt.Angle*180/math.Pi,
			stepped.ScaleFor(t), smooth.ScaleFor(t))
	}
	tw.Flush()
}
