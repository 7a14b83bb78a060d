package utils

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcStats 当前进程的资源占用快照
type ProcStats struct {
	RSSMB      float64 // 常驻内存（MB）
	CPUPercent float64 // CPU 占用率
}

// ProcSampler 进程资源采样器，为调试信息面板提供数据
type ProcSampler struct {
	proc *process.Process
}

// NewProcSampler 创建针对当前进程的采样器
func NewProcSampler() (*ProcSampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("获取当前进程失败: %w", err)
	}
	return &ProcSampler{proc: p}, nil
}

// Sample 采样一次进程资源占用
// CPU 占用率基于两次调用之间的时间窗口，第一次调用返回 0
func (s *ProcSampler) Sample() (ProcStats, error) {
	var stats ProcStats

	mi, err := s.proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("读取内存信息失败: %w", err)
	}
	stats.RSSMB = float64(mi.RSS) / (1024 * 1024)

	cpu, err := s.proc.Percent(0)
	if err != nil {
		return stats, fmt.Errorf("读取 CPU 占用失败: %w", err)
	}
	stats.CPUPercent = cpu

	return stats, nil
}
