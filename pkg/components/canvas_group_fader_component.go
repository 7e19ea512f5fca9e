package components

// CanvasGroupFaderComponent 画布组淡入淡出控制器
//
// 直接渐变 CanvasGroupComponent.Alpha，可选在渐变期间关闭点击。
// 行为由 CanvasGroupFaderSystem 实现。
type CanvasGroupFaderComponent struct {
	// DefaultDuration 默认渐变时长（秒）
	DefaultDuration float64
	// AutoFade 节点激活时自动淡入
	AutoFade bool
	// BlockInputWhileFading 渐变期间关闭 BlocksRaycasts
	BlockInputWhileFading bool

	// Group 初始化时获取或创建的画布组
	Group *CanvasGroupComponent
	// Initialised 是否已完成初始化
	Initialised bool
	// Tween 当前渐变
	Tween FadeTween
	// WasBlocking 渐变开始前画布组是否接收点击（结束时据此恢复）
	WasBlocking bool
}

// NewCanvasGroupFaderComponent 使用默认配置创建控制器
func NewCanvasGroupFaderComponent() *CanvasGroupFaderComponent {
	return &CanvasGroupFaderComponent{
		DefaultDuration:       DefaultFadeDuration,
		AutoFade:              true,
		BlockInputWhileFading: true,
	}
}
