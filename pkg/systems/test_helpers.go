package systems

import (
	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
)

// testDeltaTime 60 FPS 帧间隔
const testDeltaTime = 1.0 / 60.0

// addGraphic 在新节点上添加图形（测试辅助）
func addGraphic(g *scene.Graph, name string, parent ecs.EntityID, c components.Color) ecs.EntityID {
	id := g.CreateNode(name, parent)
	g.EntityManager().AddComponent(id, &components.GraphicComponent{
		Color:   c,
		Enabled: true,
		Width:   10,
		Height:  10,
	})
	return id
}

// graphicOf 获取实体的图形组件（测试辅助）
func graphicOf(g *scene.Graph, id ecs.EntityID) *components.GraphicComponent {
	graphic, _ := ecs.GetComponent[*components.GraphicComponent](g.EntityManager(), id)
	return graphic
}

// targetElements 提取控制器包装的实体列表（测试辅助）
func targetElements(targets []*components.FadeTarget) []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Element())
	}
	return out
}
