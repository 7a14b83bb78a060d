package embedded

import (
	"embed"
	"testing"
)

// 注意：由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// 真正的资源嵌入在项目根目录的 embed.go 中。这里用空的 embed.FS
// 验证包装接口本身的行为。

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false
	t.Cleanup(func() { initialized = false })

	if IsInitialized() {
		t.Error("Init() 之前 IsInitialized() 应为 false")
	}

	var emptyFS embed.FS
	Init(emptyFS)

	if !IsInitialized() {
		t.Error("Init() 之后 IsInitialized() 应为 true")
	}
}

// TestOpenNotInitialized 测试未初始化时调用 Open
func TestOpenNotInitialized(t *testing.T) {
	initialized = false
	t.Cleanup(func() { initialized = false })

	if _, err := Open("assets/help.txt"); err == nil {
		t.Error("未初始化时 Open 应报错")
	}
	if _, err := ReadFile("assets/help.txt"); err == nil {
		t.Error("未初始化时 ReadFile 应报错")
	}
}

// TestOpenBadPrefix 测试非 assets/ 前缀的路径被拒绝
func TestOpenBadPrefix(t *testing.T) {
	var emptyFS embed.FS
	Init(emptyFS)
	t.Cleanup(func() { initialized = false })

	if _, err := Open("data/config.yaml"); err == nil {
		t.Error("非 assets/ 前缀应报错")
	}
	if _, err := ReadFile("/etc/passwd"); err == nil {
		t.Error("绝对路径应报错")
	}
}

// TestExistsMissing 测试空 FS 里文件不存在
func TestExistsMissing(t *testing.T) {
	var emptyFS embed.FS
	Init(emptyFS)
	t.Cleanup(func() { initialized = false })

	if Exists("assets/not_there.txt") {
		t.Error("空 FS 中文件不应存在")
	}
}

// TestNormalizePath 测试路径归一化
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"./assets/help.txt", "assets/help.txt"},
		{"assets/help.txt", "assets/help.txt"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.input); got != tt.expected {
			t.Errorf("normalizePath(%q) = %q, 期望 %q", tt.input, got, tt.expected)
		}
	}
}
