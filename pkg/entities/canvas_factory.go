package entities

import (
	"fmt"
	"log"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/config"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
	"github.com/decker502/canvasfade/pkg/systems"
)

// Actions 按钮动作名到回调的映射
type Actions map[string]func()

// FadeSystems 构建画布时挂载控制器所用的系统
type FadeSystems struct {
	Controllers *systems.CanvasControllerSystem
	Faders      *systems.CanvasGroupFaderSystem
}

// Canvas 已构建的画布
type Canvas struct {
	Root  ecs.EntityID
	Nodes map[string]ecs.EntityID
}

// Node 按名称查找节点
func (c *Canvas) Node(name string) (ecs.EntityID, bool) {
	id, ok := c.Nodes[name]
	return id, ok
}

// Destroy 删除整个画布
func (c *Canvas) Destroy(graph *scene.Graph) {
	graph.DestroySubtree(c.Root)
	graph.EntityManager().RemoveMarkedEntities()
}

// BuildCanvas 根据配置创建画布节点树
//
// 步骤：
//  1. 按深度优先顺序创建节点、图形、点击检测器、按钮和画布组
//  2. 由深到浅挂载控制器（挂载即初始化，内层控制器先认领元素）
//  3. 设置节点激活状态，最后通知已激活的节点，AutoFade 的控制器开始淡入
func BuildCanvas(graph *scene.Graph, cfg *config.CanvasConfig, sys FadeSystems, actions Actions) (*Canvas, error) {
	em := graph.EntityManager()
	canvas := &Canvas{Nodes: make(map[string]ecs.EntityID)}

	type pending struct {
		id   ecs.EntityID
		node *config.NodeConfig
	}
	var created []pending
	var buildErr error

	cfg.Walk(func(node, parent *config.NodeConfig) {
		if buildErr != nil {
			return
		}
		parentID := ecs.InvalidEntity
		if parent != nil {
			parentID = canvas.Nodes[parent.Name]
		}
		id := graph.CreateNode(node.Name, parentID)
		canvas.Nodes[node.Name] = id
		if parent == nil {
			canvas.Root = id
		}

		if node.HasGraphic() {
			em.AddComponent(id, &components.GraphicComponent{
				Color:   colorFromConfig(node.Color),
				Enabled: *node.Enabled,
				X:       node.Rect[0],
				Y:       node.Rect[1],
				Width:   node.Rect[2],
				Height:  node.Rect[3],
			})
		}
		if node.Raycaster {
			em.AddComponent(id, &components.RaycasterComponent{Enabled: true})
		}
		if node.Button != "" {
			onClick, ok := actions[node.Button]
			if !ok {
				buildErr = fmt.Errorf("node %q: unknown button action %q", node.Name, node.Button)
				return
			}
			em.AddComponent(id, &components.ButtonComponent{Action: node.Button, OnClick: onClick})
		}
		if g := node.Group; g != nil {
			em.AddComponent(id, &components.CanvasGroupComponent{
				Alpha:          *g.Alpha,
				BlocksRaycasts: *g.BlocksRaycasts,
			})
		}

		created = append(created, pending{id: id, node: node})
	})

	if buildErr != nil {
		if canvas.Root != ecs.InvalidEntity {
			canvas.Destroy(graph)
		}
		return nil, buildErr
	}

	for i := len(created) - 1; i >= 0; i-- {
		p := created[i]
		if c := p.node.Controller; c != nil && sys.Controllers != nil {
			sys.Controllers.Attach(p.id, &components.CanvasControllerComponent{
				DefaultDuration: *c.DefaultDuration,
				AutoFade:        *c.AutoFade,
				Exclusive:       c.Exclusive,
			})
		}
		if g := p.node.Group; g != nil && sys.Faders != nil {
			sys.Faders.Attach(p.id, &components.CanvasGroupFaderComponent{
				DefaultDuration:       *g.DefaultDuration,
				AutoFade:              *g.AutoFade,
				BlockInputWhileFading: *g.BlockInputWhileFading,
			})
		}
	}

	// 根节点尚未宣告激活，此时切换状态不会触发淡入
	for _, p := range created {
		if !*p.node.Active {
			graph.SetActive(p.id, false)
		}
	}
	graph.AnnounceActive(canvas.Root)

	log.Printf("[CanvasFactory] Built canvas %q with %d nodes", cfg.Root.Name, len(created))
	return canvas, nil
}

func colorFromConfig(c []float64) components.Color {
	out := components.White
	if len(c) >= 3 {
		out.R, out.G, out.B = c[0], c[1], c[2]
	}
	if len(c) >= 4 {
		out.A = c[3]
	}
	return out
}
