package systems

import (
	"log"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
)

// CanvasGroupFaderSystem 画布组淡入淡出系统
//
// 与 CanvasControllerSystem 是两种可替换的方案：这里不逐个修改图形颜色，
// 而是直接渐变节点上 CanvasGroupComponent 的整体透明度。
type CanvasGroupFaderSystem struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph
}

// NewCanvasGroupFaderSystem 创建系统并订阅场景树激活事件
func NewCanvasGroupFaderSystem(graph *scene.Graph) *CanvasGroupFaderSystem {
	s := &CanvasGroupFaderSystem{
		entityManager: graph.EntityManager(),
		graph:         graph,
	}
	graph.OnActivated(s.OnActivate)
	return s
}

func (s *CanvasGroupFaderSystem) fader(entity ecs.EntityID) *components.CanvasGroupFaderComponent {
	f, ok := ecs.GetComponent[*components.CanvasGroupFaderComponent](s.entityManager, entity)
	if !ok {
		return nil
	}
	return f
}

// Attach 为节点添加画布组控制器并初始化，comp 为 nil 时使用默认配置
func (s *CanvasGroupFaderSystem) Attach(entity ecs.EntityID, comp *components.CanvasGroupFaderComponent) *components.CanvasGroupFaderComponent {
	if comp == nil {
		comp = components.NewCanvasGroupFaderComponent()
	}
	s.entityManager.AddComponent(entity, comp)
	s.Initialize(entity, false)
	return comp
}

// Initialize 获取节点上的画布组，不存在时创建一个
func (s *CanvasGroupFaderSystem) Initialize(entity ecs.EntityID, force bool) {
	f := s.fader(entity)
	if f == nil || (f.Initialised && !force) {
		return
	}

	group, ok := ecs.GetComponent[*components.CanvasGroupComponent](s.entityManager, entity)
	if !ok {
		group = components.NewCanvasGroupComponent()
		s.entityManager.AddComponent(entity, group)
		log.Printf("[CanvasGroupFaderSystem] Created canvas group on %q", s.graph.Name(entity))
	}
	f.Group = group
	f.WasBlocking = group.BlocksRaycasts
	f.Initialised = true
}

// FadeOutDefault 使用默认时长淡出
func (s *CanvasGroupFaderSystem) FadeOutDefault(entity ecs.EntityID) {
	if f := s.fader(entity); f != nil {
		s.FadeOut(entity, f.DefaultDuration)
	}
}

// FadeInDefault 使用默认时长淡入
func (s *CanvasGroupFaderSystem) FadeInDefault(entity ecs.EntityID) {
	if f := s.fader(entity); f != nil {
		s.FadeIn(entity, f.DefaultDuration)
	}
}

// FadeOut 从 1 淡出到 0，结束时停用节点
func (s *CanvasGroupFaderSystem) FadeOut(entity ecs.EntityID, duration float64) {
	s.start(entity, components.FadingOut, duration)
}

// FadeIn 从 0 淡入到 1
func (s *CanvasGroupFaderSystem) FadeIn(entity ecs.EntityID, duration float64) {
	s.start(entity, components.FadingIn, duration)
}

func (s *CanvasGroupFaderSystem) start(entity ecs.EntityID, phase components.FadePhase, duration float64) {
	f := s.fader(entity)
	if f == nil || !s.graph.ActiveInHierarchy(entity) {
		return
	}
	if !f.Initialised {
		s.Initialize(entity, false)
	}

	// 被新渐变打断时保留最初记录的状态，否则会把渐变中的 false 当成原值
	superseded := f.Tween.Active()
	f.Tween.Stop()

	if f.BlockInputWhileFading {
		if !superseded {
			f.WasBlocking = f.Group.BlocksRaycasts
		}
		f.Group.BlocksRaycasts = false
	}

	if phase == components.FadingIn {
		f.Group.Alpha = 0
	} else {
		f.Group.Alpha = 1
	}
	f.Tween.Start(phase, duration)

	log.Printf("[CanvasGroupFaderSystem] %q %s over %.2fs", s.graph.Name(entity), phase, duration)

	if f.Tween.Finished() {
		s.complete(entity, f)
	}
}

// Update 推进所有画布组渐变
//
// 节点未激活的帧不改变透明度，但时间照常流逝。
func (s *CanvasGroupFaderSystem) Update(dt float64) {
	for _, entity := range ecs.GetEntitiesWith1[*components.CanvasGroupFaderComponent](s.entityManager) {
		f := s.fader(entity)
		if f == nil || !f.Tween.Active() {
			continue
		}

		if s.graph.ActiveInHierarchy(entity) {
			f.Group.Alpha += f.Tween.Direction() * dt / f.Tween.Duration
		}
		f.Tween.Advance(dt)

		if f.Tween.Finished() {
			s.complete(entity, f)
		}
	}
}

// complete 结束渐变：透明度恢复为 1，原本接收点击时恢复点击；淡出再停用节点
func (s *CanvasGroupFaderSystem) complete(entity ecs.EntityID, f *components.CanvasGroupFaderComponent) {
	phase := f.Tween.Phase
	f.Tween.Stop()

	f.Group.Alpha = 1
	if f.BlockInputWhileFading && f.WasBlocking {
		f.Group.BlocksRaycasts = true
	}
	if phase == components.FadingOut {
		s.graph.SetActive(entity, false)
	}

	log.Printf("[CanvasGroupFaderSystem] %q finished %s", s.graph.Name(entity), phase)
}

// OnActivate 节点进入层级激活状态时调用（场景树回调）
func (s *CanvasGroupFaderSystem) OnActivate(entity ecs.EntityID) {
	f := s.fader(entity)
	if f == nil || !f.AutoFade {
		return
	}
	s.FadeInDefault(entity)
}

// IsFading 是否有进行中的渐变
func (s *CanvasGroupFaderSystem) IsFading(entity ecs.EntityID) bool {
	f := s.fader(entity)
	return f != nil && f.Tween.Active()
}

// Group 返回控制器使用的画布组
func (s *CanvasGroupFaderSystem) Group(entity ecs.EntityID) *components.CanvasGroupComponent {
	if f := s.fader(entity); f != nil {
		return f.Group
	}
	return nil
}
