package systems

import (
	"log"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
)

// CanvasControllerSystem 树形淡入淡出控制器系统
//
// 职责：
//   - 初始化控制器：收集子树内的图形，解析嵌套控制器的独占声明
//   - FadeIn / FadeOut：开始渐变（新渐变覆盖旧渐变）
//   - Update：每帧用不受时间缩放影响的 dt 推进所有渐变
//   - 节点激活时按 AutoFade 自动淡入
type CanvasControllerSystem struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph
}

// NewCanvasControllerSystem 创建系统并订阅场景树激活事件
func NewCanvasControllerSystem(graph *scene.Graph) *CanvasControllerSystem {
	s := &CanvasControllerSystem{
		entityManager: graph.EntityManager(),
		graph:         graph,
	}
	graph.OnActivated(s.OnActivate)
	graph.OnDeactivated(s.OnDeactivate)
	return s
}

func (s *CanvasControllerSystem) controller(entity ecs.EntityID) *components.CanvasControllerComponent {
	c, ok := ecs.GetComponent[*components.CanvasControllerComponent](s.entityManager, entity)
	if !ok {
		return nil
	}
	return c
}

// Attach 为节点添加控制器并立即初始化
// comp 为 nil 时使用默认配置
func (s *CanvasControllerSystem) Attach(entity ecs.EntityID, comp *components.CanvasControllerComponent) *components.CanvasControllerComponent {
	if comp == nil {
		comp = components.NewCanvasControllerComponent()
	}
	s.entityManager.AddComponent(entity, comp)
	s.Initialize(entity, false, false)
	return comp
}

// Initialize 初始化控制器
//
// 参数：
//   - force: 清空已收集的图形并重新初始化
//   - propagate: 作为子控制器的 force（同时继续向下传递）
//
// 未初始化（或 force）时：先初始化所有后代控制器，再按深度优先顺序收集
// 子树内的全部图形（含自身与未激活节点）。若某个声明了 Exclusive 的后代
// 控制器已经包含该图形，则跳过它（先到先得）。
func (s *CanvasControllerSystem) Initialize(entity ecs.EntityID, force, propagate bool) {
	c := s.controller(entity)
	if c == nil {
		return
	}

	if force {
		c.Initialised = false
		c.Targets = nil
	}
	if c.Initialised {
		return
	}

	descendants := scene.ComponentsInChildren[*components.CanvasControllerComponent](s.graph, entity, false)
	for _, d := range descendants {
		s.Initialize(d, propagate, propagate)
	}

	claimed := 0
	for _, element := range scene.ComponentsInChildren[*components.GraphicComponent](s.graph, entity, true) {
		graphic, _ := ecs.GetComponent[*components.GraphicComponent](s.entityManager, element)
		if s.claimedByExclusive(element, descendants) {
			claimed++
			continue
		}
		c.Targets = append(c.Targets, components.NewFadeTarget(element, graphic))
	}

	c.Raycaster = nil
	if rc, ok := ecs.GetComponent[*components.RaycasterComponent](s.entityManager, entity); ok {
		c.Raycaster = rc
	}
	c.Initialised = true

	log.Printf("[CanvasControllerSystem] Initialised %q: %d targets, %d claimed by exclusive children",
		s.graph.Name(entity), len(c.Targets), claimed)
}

func (s *CanvasControllerSystem) claimedByExclusive(element ecs.EntityID, controllers []ecs.EntityID) bool {
	for _, id := range controllers {
		if other := s.controller(id); other != nil && other.Exclusive && other.Claims(element) {
			return true
		}
	}
	return false
}

// SetFullyOpaque 所有图形恢复基准颜色
func (s *CanvasControllerSystem) SetFullyOpaque(entity ecs.EntityID) {
	if c := s.controller(entity); c != nil {
		for _, t := range c.Targets {
			t.SetFullyOpaque()
		}
	}
}

// SetFullyTransparent 所有图形透明度置 0
func (s *CanvasControllerSystem) SetFullyTransparent(entity ecs.EntityID) {
	if c := s.controller(entity); c != nil {
		for _, t := range c.Targets {
			t.SetFullyTransparent()
		}
	}
}

// RefreshActivity 重新缓存每个图形的可见状态
func (s *CanvasControllerSystem) RefreshActivity(entity ecs.EntityID) {
	if c := s.controller(entity); c != nil {
		for _, t := range c.Targets {
			t.RefreshActive(s.graph)
		}
	}
}

// FadeOutDefault 使用默认时长淡出
func (s *CanvasControllerSystem) FadeOutDefault(entity ecs.EntityID) {
	if c := s.controller(entity); c != nil {
		s.FadeOut(entity, c.DefaultDuration)
	}
}

// FadeInDefault 使用默认时长淡入
func (s *CanvasControllerSystem) FadeInDefault(entity ecs.EntityID) {
	if c := s.controller(entity); c != nil {
		s.FadeIn(entity, c.DefaultDuration)
	}
}

// FadeOut 淡出，结束时停用节点
// 节点未在层级中激活时不做任何事
func (s *CanvasControllerSystem) FadeOut(entity ecs.EntityID, duration float64) {
	s.start(entity, components.FadingOut, duration)
}

// FadeIn 淡入
// 节点未在层级中激活时不做任何事；未初始化时先初始化
func (s *CanvasControllerSystem) FadeIn(entity ecs.EntityID, duration float64) {
	s.start(entity, components.FadingIn, duration)
}

func (s *CanvasControllerSystem) start(entity ecs.EntityID, phase components.FadePhase, duration float64) {
	c := s.controller(entity)
	if c == nil || !s.graph.ActiveInHierarchy(entity) {
		return
	}
	if phase == components.FadingIn && !c.Initialised {
		s.Initialize(entity, false, false)
	}

	c.Tween.Stop()
	if c.Raycaster != nil {
		c.Raycaster.Enabled = false
	}
	s.RefreshActivity(entity)

	if phase == components.FadingIn {
		s.SetFullyTransparent(entity)
	} else {
		s.SetFullyOpaque(entity)
	}
	c.Tween.Start(phase, duration)

	log.Printf("[CanvasControllerSystem] %q %s over %.2fs", s.graph.Name(entity), phase, duration)

	if c.Tween.Finished() {
		s.complete(entity, c)
	}
}

// Update 推进所有进行中的渐变
//
// dt 应为不受游戏时间缩放影响的真实帧间隔（秒）。
// 停用节点的渐变由 OnDeactivate 立即终止，这里的检查只兜底。
func (s *CanvasControllerSystem) Update(dt float64) {
	for _, entity := range ecs.GetEntitiesWith1[*components.CanvasControllerComponent](s.entityManager) {
		c := s.controller(entity)
		if c == nil || !c.Tween.Active() {
			continue
		}
		if !s.graph.ActiveInHierarchy(entity) {
			c.Tween.Stop()
			continue
		}

		if c.Tween.Remaining() > 0 {
			signed := c.Tween.Duration * c.Tween.Direction()
			for _, t := range c.Targets {
				if t.Active {
					t.Step(signed, dt)
				}
			}
			c.Tween.Advance(dt)
		}

		if c.Tween.Finished() {
			s.complete(entity, c)
		}
	}
}

// complete 结束渐变
//
// 两个方向都把图形恢复到基准颜色。淡出随后停用节点，
// 因此最后一帧的透明度是基准值而不是 0，隐藏完全依靠停用节点。
func (s *CanvasControllerSystem) complete(entity ecs.EntityID, c *components.CanvasControllerComponent) {
	phase := c.Tween.Phase
	c.Tween.Stop()
	s.SetFullyOpaque(entity)

	switch phase {
	case components.FadingOut:
		if c.Raycaster != nil && !c.AutoFade {
			c.Raycaster.Enabled = true
		}
		s.graph.SetActive(entity, false)
	case components.FadingIn:
		if c.Raycaster != nil {
			c.Raycaster.Enabled = true
		}
	}

	log.Printf("[CanvasControllerSystem] %q finished %s", s.graph.Name(entity), phase)
}

// OnActivate 节点进入层级激活状态时调用（场景树回调）
func (s *CanvasControllerSystem) OnActivate(entity ecs.EntityID) {
	c := s.controller(entity)
	if c == nil || !c.AutoFade {
		return
	}
	s.FadeInDefault(entity)
}

// OnDeactivate 节点离开层级激活状态时调用（场景树回调）
// 立即终止进行中的渐变，重新激活也不会恢复它
func (s *CanvasControllerSystem) OnDeactivate(entity ecs.EntityID) {
	c := s.controller(entity)
	if c == nil || !c.Tween.Active() {
		return
	}
	log.Printf("[CanvasControllerSystem] %q deactivated, dropping %s", s.graph.Name(entity), c.Tween.Phase)
	c.Tween.Stop()
}

// Targets 返回控制器负责的图形
func (s *CanvasControllerSystem) Targets(entity ecs.EntityID) []*components.FadeTarget {
	if c := s.controller(entity); c != nil {
		return c.Targets
	}
	return nil
}

// IsFading 控制器是否有进行中的渐变
func (s *CanvasControllerSystem) IsFading(entity ecs.EntityID) bool {
	c := s.controller(entity)
	return c != nil && c.Tween.Active()
}

// Phase 返回控制器当前阶段
func (s *CanvasControllerSystem) Phase(entity ecs.EntityID) components.FadePhase {
	if c := s.controller(entity); c != nil {
		return c.Tween.Phase
	}
	return components.FadeIdle
}
