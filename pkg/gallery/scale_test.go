package gallery

import (
	"math"
	"testing"
)

// TestScaleForSmooth 验证平滑模式：两端取值正确，中间单调不减
func TestScaleForSmooth(t *testing.T) {
	cfg := ScaleConfig{Start: 0.05, Steps: 20, Smooth: true}

	if got := cfg.ScaleFor(0); math.Abs(got-0.05) > 0.001 {
		t.Errorf("ScaleFor(0) = %v, 期望 0.05", got)
	}
	if got := cfg.ScaleFor(1); math.Abs(got-1.0) > 0.001 {
		t.Errorf("ScaleFor(1) = %v, 期望 1.0", got)
	}

	prev := cfg.ScaleFor(0)
	for p := 0.01; p <= 1.0001; p += 0.01 {
		cur := cfg.ScaleFor(p)
		if cur < prev {
			t.Fatalf("进度 %.2f 处缩放 %v 小于前一采样 %v, 平滑模式应单调不减", p, cur, prev)
		}
		prev = cur
	}
}

// TestScaleForStepped 验证阶梯模式：非减阶梯函数，平台数量正确，
// 且永不超过 1.0
func TestScaleForStepped(t *testing.T) {
	cfg := ScaleConfig{Start: 0.05, Steps: 20}

	plateaus := make(map[float64]bool)
	prev := -1.0
	for p := 0.0; p < 1.0; p += 0.001 {
		cur := cfg.ScaleFor(p)
		if cur < prev {
			t.Fatalf("进度 %.3f 处缩放 %v 小于前一采样 %v, 阶梯模式应非减", p, cur, prev)
		}
		if cur > 1.0 {
			t.Fatalf("进度 %.3f 处缩放 %v 超过 1.0", p, cur)
		}
		plateaus[math.Round(cur*1e6)/1e6] = true
		prev = cur
	}

	if len(plateaus) != cfg.Steps {
		t.Errorf("阶梯平台数量 = %d, 期望 %d", len(plateaus), cfg.Steps)
	}
}

// TestScaleForSteppedBoundaries 验证阶梯边界的量化行为
func TestScaleForSteppedBoundaries(t *testing.T) {
	cfg := ScaleConfig{Start: 0.05, Steps: 20}

	tests := []struct {
		name     string
		progress float64
		expected float64
	}{
		{"起点", 0.0, 0.05},
		{"第一格之前", 0.049, 0.05},
		{"跨过第一格", 0.05, 0.10},
		{"中途", 0.5, 0.55},
		{"终点封顶", 1.0, 1.0},
		{"负进度按零处理", -0.2, 0.05},
		{"超界进度封顶", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ScaleFor(tt.progress); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("ScaleFor(%v) = %v, 期望 %v", tt.progress, got, tt.expected)
			}
		})
	}
}

// TestScaleForZeroSteps 验证步数为零时不出现除零
func TestScaleForZeroSteps(t *testing.T) {
	cfg := ScaleConfig{Start: 0.05}
	if got := cfg.ScaleFor(0.5); math.IsNaN(got) || got > 1.0 {
		t.Errorf("ScaleFor(0.5) = %v, 步数为零时应退化为单阶梯", got)
	}
}
