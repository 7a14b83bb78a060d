package gallery

import (
	"math"
	"testing"
)

// TestNewItemsStagger 验证启动间隔折算为进度空间的负初始值
func TestNewItemsStagger(t *testing.T) {
	decoded := []Decoded{
		{Location: "./a.png"},
		{Location: "./b.png"},
		{Location: "./c.png"},
	}

	items := NewItems(decoded, 6.0, 0.35)
	if len(items) != 3 {
		t.Fatalf("NewItems 返回 %d 个条目, 期望 3", len(items))
	}

	for i, it := range items {
		expected := -float64(i) * 0.35 / 6.0
		if math.Abs(it.Progress()-expected) > 0.001 {
			t.Errorf("条目 %d 初始进度 = %v, 期望 %v", i, it.Progress(), expected)
		}
	}
}

// TestItemAdvance 验证进度按 deltaTime/duration 推进
func TestItemAdvance(t *testing.T) {
	items := NewItems([]Decoded{{Location: "./a.png"}}, 6.0, 0)
	it := items[0]

	it.Advance(3.0)
	if math.Abs(it.Progress()-0.5) > 0.001 {
		t.Errorf("推进 3 秒后进度 = %v, 期望 0.5", it.Progress())
	}
}

// TestItemWrap 验证环绕行为：越过 1.2 后回绕到精确的 -0.2，
// 而不是被钳制在 1.0
func TestItemWrap(t *testing.T) {
	items := NewItems([]Decoded{{Location: "./a.png"}}, 1.0, 0)
	it := items[0]

	// 推到 1.19：尚未越界，不回绕
	it.Advance(1.19)
	if math.Abs(it.Progress()-1.19) > 0.001 {
		t.Fatalf("进度 = %v, 期望 1.19（未越界不回绕）", it.Progress())
	}

	// 再推一步越过 1.2：回绕到精确的 -0.2
	it.Advance(0.02)
	if it.Progress() != wrapRestart {
		t.Errorf("越界后进度 = %v, 期望精确等于 %v", it.Progress(), wrapRestart)
	}
}

// TestActiveSorted 验证活动条目过滤和按进度升序排列
func TestActiveSorted(t *testing.T) {
	items := []*Item{
		{progress: 0.9},
		{progress: -0.1}, // 等待入场，不活动
		{progress: 0.3},
		{progress: 1.1}, // 越过终点冷却中，不活动
		{progress: 0.0},
		{progress: 1.0},
	}

	active := ActiveSorted(items)
	if len(active) != 4 {
		t.Fatalf("活动条目数量 = %d, 期望 4", len(active))
	}

	expected := []float64{0.0, 0.3, 0.9, 1.0}
	for i, it := range active {
		if math.Abs(it.Progress()-expected[i]) > 0.001 {
			t.Errorf("排序后第 %d 个条目进度 = %v, 期望 %v", i, it.Progress(), expected[i])
		}
	}
}

// TestActiveSortedEmpty 验证空列表不出问题
func TestActiveSortedEmpty(t *testing.T) {
	if got := ActiveSorted(nil); len(got) != 0 {
		t.Errorf("ActiveSorted(nil) = %v, 期望空", got)
	}
}
