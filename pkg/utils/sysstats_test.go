package utils

import "testing"

// TestProcSampler 测试进程采样器的基本行为
func TestProcSampler(t *testing.T) {
	s, err := NewProcSampler()
	if err != nil {
		t.Skipf("当前环境无法创建采样器: %v", err)
	}

	stats, err := s.Sample()
	if err != nil {
		t.Fatalf("采样失败: %v", err)
	}

	if stats.RSSMB <= 0 {
		t.Errorf("RSS 应该大于 0, 实际: %v", stats.RSSMB)
	}
	if stats.CPUPercent < 0 {
		t.Errorf("CPU 占用率不应为负: %v", stats.CPUPercent)
	}
}
