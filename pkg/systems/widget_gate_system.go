package systems

import (
	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
)

// WidgetGateSystem 根据画布可交互状态启用/禁用 ebitenui 控件
type WidgetGateSystem struct {
	entityManager *ecs.EntityManager
	clicks        *ClickSystem
}

// NewWidgetGateSystem 创建控件门控系统
func NewWidgetGateSystem(em *ecs.EntityManager, clicks *ClickSystem) *WidgetGateSystem {
	return &WidgetGateSystem{entityManager: em, clicks: clicks}
}

// Update 同步所有绑定控件的 Disabled 状态
func (s *WidgetGateSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.WidgetBindingComponent](s.entityManager) {
		binding, _ := ecs.GetComponent[*components.WidgetBindingComponent](s.entityManager, id)
		disabled := !s.clicks.Interactable(id)
		for _, w := range binding.Widgets {
			if w != nil {
				w.Disabled = disabled
			}
		}
	}
}
