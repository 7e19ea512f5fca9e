package systems

import (
	"log"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
	"github.com/decker502/canvasfade/pkg/utils"
)

// ClickSystem 画布点击系统
//
// 点击只会送达当前可交互的按钮：节点在层级中激活、图形启用、
// 最近的点击检测器已启用，且没有祖先画布组屏蔽点击。
type ClickSystem struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph
	render        *CanvasRenderSystem
	pointer       utils.PointerTracker
}

// NewClickSystem 创建点击系统，绘制顺序由渲染系统决定
func NewClickSystem(graph *scene.Graph, render *CanvasRenderSystem) *ClickSystem {
	return &ClickSystem{
		entityManager: graph.EntityManager(),
		graph:         graph,
		render:        render,
	}
}

// Interactable 节点当前能否接收点击
func (s *ClickSystem) Interactable(entity ecs.EntityID) bool {
	if !s.graph.ActiveInHierarchy(entity) {
		return false
	}
	if graphic, ok := ecs.GetComponent[*components.GraphicComponent](s.entityManager, entity); ok && !graphic.Enabled {
		return false
	}

	_, raycaster, ok := scene.FindInParents[*components.RaycasterComponent](s.graph, entity)
	if !ok || !raycaster.Enabled {
		return false
	}

	for cur := entity; cur != ecs.InvalidEntity; cur = s.graph.Parent(cur) {
		if group, ok := ecs.GetComponent[*components.CanvasGroupComponent](s.entityManager, cur); ok && !group.BlocksRaycasts {
			return false
		}
	}
	return true
}

// HitTest 返回点下最上层（最后绘制）的可交互按钮
func (s *ClickSystem) HitTest(x, y float64) ecs.EntityID {
	items := s.render.BuildDrawList()
	for i := len(items) - 1; i >= 0; i-- {
		id := items[i].Entity
		if !ecs.HasComponent[*components.ButtonComponent](s.entityManager, id) {
			continue
		}
		graphic, _ := ecs.GetComponent[*components.GraphicComponent](s.entityManager, id)
		if !graphic.Contains(x, y) {
			continue
		}
		if s.Interactable(id) {
			return id
		}
	}
	return ecs.InvalidEntity
}

// Click 在指定位置点击，返回被点击的按钮
func (s *ClickSystem) Click(x, y float64) ecs.EntityID {
	id := s.HitTest(x, y)
	if id == ecs.InvalidEntity {
		return id
	}
	button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
	log.Printf("[ClickSystem] %q clicked (action %q)", s.graph.Name(id), button.Action)
	if button.OnClick != nil {
		button.OnClick()
	}
	return id
}

// Update 鼠标左键或触摸释放时触发点击
func (s *ClickSystem) Update() {
	released, x, y := s.pointer.Poll()
	if !released {
		return
	}
	s.Click(float64(x), float64(y))
}
