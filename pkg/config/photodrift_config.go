// pkg/config/photodrift_config.go
// PhotoDrift 配置文件的加载和解析模块

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowConfig 窗口配置
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// SourceConfig 图片来源配置
type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`        // 图片目录地址，以 / 结尾
	Manifest       string `yaml:"manifest"`        // 清单文件名，相对于 base_url
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 单次请求超时（秒）
}

// AnimationConfig 飞行动画配置
type AnimationConfig struct {
	ThumbSize      int     `yaml:"thumb_size"`       // 缩略图目标尺寸（像素）
	StartScale     float64 `yaml:"start_scale"`      // 起始缩放比例
	ScaleSteps     int     `yaml:"scale_steps"`      // 阶梯缩放的里程碑数量
	SmoothScale    bool    `yaml:"smooth_scale"`     // true 平滑缩放；false 阶梯缩放（默认）
	Duration       float64 `yaml:"duration"`         // 单张图片飞行时长（秒）
	Stagger        float64 `yaml:"stagger"`          // 相邻图片的启动间隔（秒）
	MaxImages      int     `yaml:"max_images"`       // 最多加载的图片数量
	BowFactor      float64 `yaml:"bow_factor"`       // 弧度系数：控制点偏移 = 系数 × 两端点距离
	FadeMinAlpha   float64 `yaml:"fade_min_alpha"`   // 淡入起始透明度
	FadePortion    float64 `yaml:"fade_portion"`     // 淡入占行程进度的比例
	RotateWithPath bool    `yaml:"rotate_with_path"` // 是否沿路径切线方向旋转
}

// PathConfig 默认飞行路径的端点（均为屏幕尺寸的比例值）
type PathConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	EndX   float64 `yaml:"end_x"`
	EndY   float64 `yaml:"end_y"`
}

// DisplayConfig 显示辅助配置
type DisplayConfig struct {
	ShowGuide        bool   `yaml:"show_guide"`        // 默认是否显示参考曲线
	FontPath         string `yaml:"font_path"`         // 中文字体路径，为空时降级为调试字体
	PlaceholderCount int    `yaml:"placeholder_count"` // 一张图也没加载到时生成的占位图数量
}

// Config PhotoDrift 完整配置
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Source    SourceConfig    `yaml:"source"`
	Animation AnimationConfig `yaml:"animation"`
	Path      PathConfig      `yaml:"path"`
	Display   DisplayConfig   `yaml:"display"`
}

// Load 从文件加载配置
// path 为空时直接返回内置默认配置
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置并填充默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults 为零值字段填充默认配置
func applyDefaults(cfg *Config) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "PhotoDrift 照片漂流"
	}
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = "http://localhost:8090/photos/"
	}
	if cfg.Source.Manifest == "" {
		cfg.Source.Manifest = "photos.json"
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 10
	}
	if cfg.Animation.ThumbSize == 0 {
		cfg.Animation.ThumbSize = 96
	}
	if cfg.Animation.StartScale == 0 {
		cfg.Animation.StartScale = 0.05
	}
	if cfg.Animation.ScaleSteps == 0 {
		cfg.Animation.ScaleSteps = 20
	}
	if cfg.Animation.Duration == 0 {
		cfg.Animation.Duration = 6.0
	}
	if cfg.Animation.Stagger == 0 {
		cfg.Animation.Stagger = 0.35
	}
	if cfg.Animation.MaxImages == 0 {
		cfg.Animation.MaxImages = 24
	}
	if cfg.Animation.BowFactor == 0 {
		cfg.Animation.BowFactor = 0.25
	}
	if cfg.Animation.FadeMinAlpha == 0 {
		cfg.Animation.FadeMinAlpha = 0.3
	}
	if cfg.Animation.FadePortion == 0 {
		cfg.Animation.FadePortion = 0.25
	}
	if cfg.Path.StartX == 0 {
		cfg.Path.StartX = 0.08
	}
	if cfg.Path.StartY == 0 {
		cfg.Path.StartY = 0.85
	}
	if cfg.Path.EndX == 0 {
		cfg.Path.EndX = 0.92
	}
	if cfg.Path.EndY == 0 {
		cfg.Path.EndY = 0.18
	}
	if cfg.Display.PlaceholderCount == 0 {
		cfg.Display.PlaceholderCount = 8
	}
}
