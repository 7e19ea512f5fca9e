package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(name string) (Scene, error)

// SceneManager manages which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene, closing the previous one if it implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	sm.closeCurrent()
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Load 通过工厂创建并切换到指定场景
func (sm *SceneManager) Load(name string) error {
	log.Printf("[SceneManager] Loading scene: %s", name)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		return fmt.Errorf("failed to create scene %s: %w", name, err)
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

// Close 关闭当前场景
func (sm *SceneManager) Close() {
	sm.closeCurrent()
	sm.currentScene = nil
}

func (sm *SceneManager) closeCurrent() {
	if closer, ok := sm.currentScene.(Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("[SceneManager] Warning: failed to close scene: %v", err)
		}
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
