package gallery

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可更新、可绘制的画面（加载画面、飞行动画画面）
type Scene interface {
	// Update 按自上一帧经过的秒数推进场景逻辑
	Update(deltaTime float64)

	// Draw 把场景绘制到目标画面上
	Draw(screen *ebiten.Image)
}

// SceneFactory 按名字创建场景，避免场景包之间的循环依赖
type SceneFactory func(name string) Scene

// SceneManager 管理当前活动的场景
// 同一时刻只有一个场景的 Update/Draw 被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景，下一帧开始生效
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// SwitchToNamed 用工厂函数创建指定名字的场景并切换过去
func (sm *SceneManager) SwitchToNamed(name string) {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}
	scene := sm.sceneFactory(name)
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景 %q", name)
		return
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] ✓ 切换到场景: %s", name)
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景；没有活动场景时什么都不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景；没有活动场景时什么都不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
