package entities

import (
	"strings"
	"testing"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/config"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/scene"
	"github.com/decker502/canvasfade/pkg/systems"
)

const testCanvasYAML = `root:
  name: canvas
  raycaster: true
  controller:
    autoFade: true
  children:
    - name: title
      rect: [0, 0, 100, 20]
    - name: pauseMenu
      active: false
      rect: [10, 10, 80, 80]
      color: [0, 0, 0, 0.8]
      controller:
        exclusive: true
      children:
        - name: resume
          rect: [20, 20, 60, 20]
          button: resume
    - name: hud
      group:
        defaultDuration: 0.25
        blocksRaycasts: true
      children:
        - name: score
          rect: [0, 100, 50, 10]
`

type factoryFixture struct {
	graph   *scene.Graph
	sys     FadeSystems
	canvas  *Canvas
	resumed int
}

func newFactoryFixture(t *testing.T, yaml string) *factoryFixture {
	t.Helper()
	cfg, err := config.ParseCanvasConfig([]byte(yaml), "test")
	if err != nil {
		t.Fatalf("ParseCanvasConfig() failed: %v", err)
	}

	f := &factoryFixture{graph: scene.NewGraph(ecs.NewEntityManager())}
	f.sys = FadeSystems{
		Controllers: systems.NewCanvasControllerSystem(f.graph),
		Faders:      systems.NewCanvasGroupFaderSystem(f.graph),
	}
	f.canvas, err = BuildCanvas(f.graph, cfg, f.sys, Actions{
		"resume": func() { f.resumed++ },
	})
	if err != nil {
		t.Fatalf("BuildCanvas() failed: %v", err)
	}
	return f
}

func (f *factoryFixture) node(t *testing.T, name string) ecs.EntityID {
	t.Helper()
	id, ok := f.canvas.Node(name)
	if !ok {
		t.Fatalf("node %q not built", name)
	}
	return id
}

func TestBuildCanvasStructure(t *testing.T) {
	f := newFactoryFixture(t, testCanvasYAML)
	em := f.graph.EntityManager()

	if f.graph.Name(f.canvas.Root) != "canvas" {
		t.Errorf("root name: %q", f.graph.Name(f.canvas.Root))
	}
	pause := f.node(t, "pauseMenu")
	resume := f.node(t, "resume")
	if f.graph.Parent(resume) != pause {
		t.Error("resume should be parented under pauseMenu")
	}
	if f.graph.ActiveSelf(pause) {
		t.Error("pauseMenu should start inactive")
	}

	graphic, ok := ecs.GetComponent[*components.GraphicComponent](em, pause)
	if !ok {
		t.Fatal("pauseMenu should have a graphic")
	}
	if graphic.Color.A != 0.8 || graphic.X != 10 || graphic.Width != 80 {
		t.Errorf("unexpected graphic %+v", graphic)
	}

	button, ok := ecs.GetComponent[*components.ButtonComponent](em, resume)
	if !ok || button.Action != "resume" {
		t.Fatalf("resume button missing or wrong: %+v", button)
	}
	button.OnClick()
	if f.resumed != 1 {
		t.Error("button action not bound")
	}
}

func TestBuildCanvasControllers(t *testing.T) {
	f := newFactoryFixture(t, testCanvasYAML)
	ctrl := f.sys.Controllers
	root := f.canvas.Root
	pause := f.node(t, "pauseMenu")

	// pauseMenu 独占自己的元素，根控制器不再包含它们
	rootTargets := ctrl.Targets(root)
	for _, target := range rootTargets {
		if target.Wraps(pause) || target.Wraps(f.node(t, "resume")) {
			t.Errorf("root controller wraps an element claimed by pauseMenu: %d", target.Element())
		}
	}
	if len(rootTargets) != 2 {
		t.Errorf("root should wrap title and score, got %d targets", len(rootTargets))
	}
	if n := len(ctrl.Targets(pause)); n != 2 {
		t.Errorf("pauseMenu should wrap itself and resume, got %d", n)
	}

	// 根节点在构建时被宣告激活，AutoFade 的根控制器开始淡入
	if ctrl.Phase(root) != components.FadingIn {
		t.Errorf("root phase after build: %v", ctrl.Phase(root))
	}
	if ctrl.IsFading(pause) {
		t.Error("inactive pauseMenu should not fade")
	}
}

func TestBuildCanvasGroup(t *testing.T) {
	f := newFactoryFixture(t, testCanvasYAML)
	hud := f.node(t, "hud")

	group := f.sys.Faders.Group(hud)
	if group == nil {
		t.Fatal("hud should have a canvas group")
	}
	if !f.sys.Faders.IsFading(hud) {
		t.Error("hud group should auto fade in after build")
	}
	if group.Alpha != 0 || group.BlocksRaycasts {
		t.Errorf("group should start fading from 0 with input blocked, got %+v", group)
	}
}

func TestBuildCanvasUnknownAction(t *testing.T) {
	cfg, err := config.ParseCanvasConfig([]byte(testCanvasYAML), "test")
	if err != nil {
		t.Fatal(err)
	}
	g := scene.NewGraph(ecs.NewEntityManager())

	_, err = BuildCanvas(g, cfg, FadeSystems{}, Actions{})
	if err == nil || !strings.Contains(err.Error(), "unknown button action") {
		t.Fatalf("expected unknown action error, got %v", err)
	}
	if len(g.Roots()) != 0 || g.EntityManager().EntityCount() != 0 {
		t.Error("partially built canvas should be destroyed")
	}
}

func TestCanvasDestroy(t *testing.T) {
	f := newFactoryFixture(t, testCanvasYAML)
	f.canvas.Destroy(f.graph)

	if len(f.graph.Roots()) != 0 {
		t.Error("roots should be empty after destroy")
	}
	if n := f.graph.EntityManager().EntityCount(); n != 0 {
		t.Errorf("expected no entities after destroy, got %d", n)
	}
	// 已删除的控制器不再被更新
	f.sys.Controllers.Update(1.0 / 60.0)
	f.sys.Faders.Update(1.0 / 60.0)
}
