package components

// ButtonComponent 可点击按钮
// 点击区域使用同一实体上 GraphicComponent 的矩形
type ButtonComponent struct {
	// Action 配置中的动作名，用于绑定回调
	Action string
	// OnClick 点击回调，可为 nil
	OnClick func()
}
