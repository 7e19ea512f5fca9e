package components

// RaycasterComponent 画布的点击检测开关
//
// 节点及其子树的按钮只有在最近的 Raycaster 启用时才能被点击。
// 树形淡入淡出控制器在渐变期间会关闭它。
type RaycasterComponent struct {
	Enabled bool
}
