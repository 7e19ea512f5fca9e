package systems

import (
	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
)

// DrawItem 一次绘制调用
type DrawItem struct {
	Entity ecs.EntityID
	X, Y   float64
	W, H   float64
	// Color 已合成画布组透明度并钳制到 [0, 1] 的颜色
	Color components.Color
	Image *ebiten.Image
}

// CanvasRenderSystem 画布渲染系统
//
// 按场景树深度优先顺序绘制图形：先绘制的在下层。
// 未激活的子树和禁用的图形不绘制。
type CanvasRenderSystem struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph
	pixel         *ebiten.Image
}

// NewCanvasRenderSystem 创建画布渲染系统
func NewCanvasRenderSystem(graph *scene.Graph) *CanvasRenderSystem {
	return &CanvasRenderSystem{
		entityManager: graph.EntityManager(),
		graph:         graph,
	}
}

// BuildDrawList 生成本帧的绘制列表
func (s *CanvasRenderSystem) BuildDrawList() []DrawItem {
	items := make([]DrawItem, 0)
	for _, root := range s.graph.Roots() {
		items = s.collect(root, 1.0, items)
	}
	return items
}

func (s *CanvasRenderSystem) collect(id ecs.EntityID, groupAlpha float64, items []DrawItem) []DrawItem {
	if !s.graph.ActiveSelf(id) {
		return items
	}

	if group, ok := ecs.GetComponent[*components.CanvasGroupComponent](s.entityManager, id); ok {
		groupAlpha *= components.Clamp01(group.Alpha)
	}

	if graphic, ok := ecs.GetComponent[*components.GraphicComponent](s.entityManager, id); ok && graphic.Enabled {
		c := graphic.Color
		c.R = components.Clamp01(c.R)
		c.G = components.Clamp01(c.G)
		c.B = components.Clamp01(c.B)
		c.A = components.Clamp01(c.A) * groupAlpha
		items = append(items, DrawItem{
			Entity: id,
			X:      graphic.X,
			Y:      graphic.Y,
			W:      graphic.Width,
			H:      graphic.Height,
			Color:  c,
			Image:  graphic.Image,
		})
	}

	for _, child := range s.graph.Children(id) {
		items = s.collect(child, groupAlpha, items)
	}
	return items
}

// Draw 绘制画布
func (s *CanvasRenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range s.BuildDrawList() {
		if item.Color.A <= 0 || item.W <= 0 || item.H <= 0 {
			continue
		}

		img := item.Image
		if img == nil {
			img = s.whitePixel()
		}
		bounds := img.Bounds()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(item.W/float64(bounds.Dx()), item.H/float64(bounds.Dy()))
		op.GeoM.Translate(item.X, item.Y)
		op.ColorScale.Scale(float32(item.Color.R), float32(item.Color.G), float32(item.Color.B), 1)
		op.ColorScale.ScaleAlpha(float32(item.Color.A))
		screen.DrawImage(img, op)
	}
}

// whitePixel 纯色矩形共用的 1x1 白色贴图（首次绘制时创建）
func (s *CanvasRenderSystem) whitePixel() *ebiten.Image {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(components.White.ToNRGBA())
	}
	return s.pixel
}
