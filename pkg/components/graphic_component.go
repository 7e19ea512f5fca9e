package components

import "github.com/hajimehoshi/ebiten/v2"

// GraphicComponent 可淡入淡出的可视元素
//
// 对应画布中的一个图形：颜色、启用状态以及屏幕矩形。
type GraphicComponent struct {
	// Color 当前颜色（淡入淡出直接修改它）
	Color Color
	// Enabled 图形是否启用；禁用的图形不绘制，也不参与淡入淡出
	Enabled bool
	// X, Y, Width, Height 屏幕坐标矩形（像素）
	X, Y          float64
	Width, Height float64
	// Image 可选贴图；为 nil 时绘制纯色矩形
	Image *ebiten.Image
}

// Contains 判断点是否落在图形矩形内
func (g *GraphicComponent) Contains(x, y float64) bool {
	return x >= g.X && x < g.X+g.Width && y >= g.Y && y < g.Y+g.Height
}
