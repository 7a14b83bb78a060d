package scenes

import (
	"math"
	"testing"
)

// TestFadeAlpha 验证淡入透明度：进度 0 处为下限，淡入段结束后
// 保持完全不透明
func TestFadeAlpha(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		expected float64
	}{
		{"进度为零", 0.0, 0.3},
		{"淡入段结束", 0.25, 1.0},
		{"淡入段之后", 0.8, 1.0},
		{"行程终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fadeAlpha(tt.progress, 0.3, 0.25); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("fadeAlpha(%v) = %v, 期望 %v", tt.progress, got, tt.expected)
			}
		})
	}
}

// TestFadeAlphaMonotonic 验证淡入段内透明度单调不减
func TestFadeAlphaMonotonic(t *testing.T) {
	prev := fadeAlpha(0, 0.3, 0.25)
	for p := 0.01; p <= 0.25; p += 0.01 {
		cur := fadeAlpha(p, 0.3, 0.25)
		if cur < prev {
			t.Fatalf("进度 %.2f 处透明度 %v 小于前一采样 %v", p, cur, prev)
		}
		prev = cur
	}
}

// TestFadeAlphaZeroPortion 验证淡入段为零时直接完全不透明
func TestFadeAlphaZeroPortion(t *testing.T) {
	if got := fadeAlpha(0, 0.3, 0); got != 1.0 {
		t.Errorf("fadeAlpha 淡入段为零时 = %v, 期望 1.0", got)
	}
}

// TestFitScale 验证绘制缩放系数对两种位图来源都成立：
// 已缩到缩略图尺寸的和保留原尺寸的
func TestFitScale(t *testing.T) {
	tests := []struct {
		name       string
		texW, texH int
		thumb      int
		scale      float64
		expected   float64
	}{
		{"预缩放位图直接用调度缩放", 96, 48, 96, 0.5, 0.5},
		{"原尺寸位图先归一长边", 960, 480, 96, 0.5, 0.05},
		{"纵向位图按高归一", 48, 960, 96, 1.0, 0.1},
		{"小图会被放大到缩略图尺寸", 48, 48, 96, 1.0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitScale(tt.texW, tt.texH, tt.thumb, tt.scale); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("fitScale(%d, %d, %d, %v) = %v, 期望 %v",
					tt.texW, tt.texH, tt.thumb, tt.scale, got, tt.expected)
			}
		})
	}
}

// TestFitScaleDegenerate 验证零尺寸输入不出现除零
func TestFitScaleDegenerate(t *testing.T) {
	if got := fitScale(0, 0, 96, 0.5); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("fitScale 零尺寸输入 = %v", got)
	}
}
