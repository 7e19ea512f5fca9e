package components

import (
	"image/color"
	"math"
)

// Color 浮点 RGBA 颜色，分量范围通常为 0.0 ~ 1.0
//
// 淡入淡出过程中 A 可能短暂越界（逐帧累加），渲染时才会钳制。
type Color struct {
	R, G, B, A float64
}

// White 不透明白色
var White = Color{R: 1, G: 1, B: 1, A: 1}

// WithAlpha 返回替换了透明度的新颜色
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Equal 精确比较两个颜色
func (c Color) Equal(other Color) bool {
	return c == other
}

// ToNRGBA 转换为非预乘 8 位颜色（分量钳制到 0~1）
func (c Color) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(Clamp01(v) * 255))
}

// Clamp01 把值钳制到 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
