package components

import "github.com/decker502/canvasfade/pkg/ecs"

// 树形淡入淡出控制器的默认值
const (
	// DefaultFadeDuration 默认渐变时长（秒）
	DefaultFadeDuration = 0.4
)

// CanvasControllerComponent 树形淡入淡出控制器
//
// 管理节点子树内所有图形的透明度。嵌套的控制器可以声明 Exclusive，
// 独占其子树内的图形，祖先控制器初始化时会跳过这些图形。
// 行为由 CanvasControllerSystem 实现，组件只保存配置和运行时状态。
type CanvasControllerComponent struct {
	// DefaultDuration 默认渐变时长（秒）
	DefaultDuration float64
	// AutoFade 节点激活时自动淡入
	AutoFade bool
	// Exclusive 独占子树内的图形，阻止祖先控制器使用
	Exclusive bool

	// Targets 本控制器负责的图形（深度优先顺序）
	Targets []*FadeTarget
	// Initialised 是否已完成初始化
	Initialised bool
	// Raycaster 同一节点上的点击检测开关，初始化时解析，可为 nil
	Raycaster *RaycasterComponent
	// Tween 当前渐变
	Tween FadeTween
}

// NewCanvasControllerComponent 使用默认配置创建控制器
func NewCanvasControllerComponent() *CanvasControllerComponent {
	return &CanvasControllerComponent{
		DefaultDuration: DefaultFadeDuration,
		AutoFade:        true,
	}
}

// Claims 控制器是否已包含该元素
func (c *CanvasControllerComponent) Claims(element ecs.EntityID) bool {
	for _, t := range c.Targets {
		if t.Wraps(element) {
			return true
		}
	}
	return false
}
