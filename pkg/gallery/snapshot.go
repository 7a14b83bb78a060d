package gallery

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// 快照在 gdata 存储里的对象名
const snapshotObject = "snapshots"

// SnapshotManager 画面快照管理器
//
// 把当前帧编码为 PNG 写进 gdata 跨平台存储。gdataManager 可为 nil
// （降级模式）：保存操作只记日志不报错，演示照常运行。
// 注意路径与缩放参数本身不做持久化，快照是唯一落盘的东西。
type SnapshotManager struct {
	gdataManager *gdata.Manager
}

// NewSnapshotManager 创建快照管理器
func NewSnapshotManager(gdataManager *gdata.Manager) *SnapshotManager {
	if gdataManager == nil {
		log.Printf("[Snapshot] Warning: gdata 不可用，快照功能降级为仅日志")
	}
	return &SnapshotManager{gdataManager: gdataManager}
}

// Save 把一帧画面存为 PNG 快照，返回存储属性名
//
// 属性名带时间戳（photodrift_20260825_153045.png 形态），连拍不互相覆盖
func (sm *SnapshotManager) Save(frame image.Image) (string, error) {
	if frame == nil {
		return "", fmt.Errorf("快照画面为空")
	}

	name := fmt.Sprintf("photodrift_%s.png", time.Now().Format("20060102_150405"))

	if sm.gdataManager == nil {
		// 降级模式：没有存储后端，只报告将要保存的名字
		log.Printf("[Snapshot] 降级模式，丢弃快照 %s", name)
		return name, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return "", fmt.Errorf("编码快照失败: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(snapshotObject, name, buf.Bytes()); err != nil {
		return "", fmt.Errorf("保存快照失败: %w", err)
	}

	log.Printf("[Snapshot] ✓ 保存快照 %s (%d 字节)", name, buf.Len())
	return name, nil
}

// Exists 检查指定名字的快照是否已保存
func (sm *SnapshotManager) Exists(name string) bool {
	if sm.gdataManager == nil {
		return false
	}
	return sm.gdataManager.ObjectPropExists(snapshotObject, name)
}

// Load 读回一张已保存的快照
func (sm *SnapshotManager) Load(name string) (image.Image, error) {
	if sm.gdataManager == nil {
		return nil, fmt.Errorf("gdata 不可用")
	}

	data, err := sm.gdataManager.LoadObjectProp(snapshotObject, name)
	if err != nil {
		return nil, fmt.Errorf("读取快照失败: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码快照失败: %w", err)
	}
	return img, nil
}
