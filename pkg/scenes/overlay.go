package scenes

import (
	"image/color"

	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// overlayFace 工具栏按钮使用内置位图字体，无需加载字体资源
var overlayFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func newToolbarButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}),
			Hover:    imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}),
			Pressed:  imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}),
			Disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0x60}),
		}),
		widget.ButtonOpts.Text(label, &overlayFace, &widget.ButtonTextColor{
			Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Disabled: color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}
