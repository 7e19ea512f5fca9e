package components

import "github.com/ebitenui/ebitenui/widget"

// WidgetBindingComponent 把 ebitenui 控件绑定到场景树节点
//
// 节点不可交互（淡入淡出中、被隐藏或画布组不接收点击）时，
// WidgetGateSystem 会禁用这些控件。
type WidgetBindingComponent struct {
	Widgets []*widget.Widget
}
