package components

// CanvasGroupComponent 子树整体透明度句柄
//
// Alpha 作用于整个子树的渲染结果（与祖先的 Alpha 相乘），
// BlocksRaycasts 为 false 时整个子树不接收点击。
type CanvasGroupComponent struct {
	Alpha          float64
	BlocksRaycasts bool
}

// NewCanvasGroupComponent 创建默认的画布组（完全不透明、接收点击）
func NewCanvasGroupComponent() *CanvasGroupComponent {
	return &CanvasGroupComponent{
		Alpha:          1.0,
		BlocksRaycasts: true,
	}
}
