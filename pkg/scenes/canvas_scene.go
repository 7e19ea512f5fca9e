package scenes

import (
	"fmt"
	"log"
	"math"
	"path/filepath"

	"github.com/decker502/canvasfade/pkg/components"
	"github.com/decker502/canvasfade/pkg/config"
	"github.com/decker502/canvasfade/pkg/ecs"
	"github.com/decker502/canvasfade/pkg/embedded"
	"github.com/decker502/canvasfade/pkg/entities"
	"github.com/decker502/canvasfade/pkg/game"
	"github.com/decker502/canvasfade/pkg/scene"
	"github.com/decker502/canvasfade/pkg/systems"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 演示画布中约定的节点名
const (
	PauseMenuNode = "pauseMenu"
	HUDNode       = "hud"
	TickerNode    = "ticker"
)

// CanvasSource 画布配置来源
type CanvasSource struct {
	// Path 磁盘配置路径；非空时优先使用并监听变化
	Path string
	// Embedded 嵌入配置路径（data/ 开头）
	Embedded string
}

// CanvasScene 画布演示场景
//
// 按键：
//   - Escape: 切换暂停菜单（树形控制器），菜单显示时玩法时间停止
//   - H: 切换 HUD（画布组控制器）
//   - P: 切换玩法时间缩放；淡入淡出使用未缩放时间，不受影响
//   - F5: 强制重新初始化整棵画布树
type CanvasScene struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph

	controllers *systems.CanvasControllerSystem
	faders      *systems.CanvasGroupFaderSystem
	render      *systems.CanvasRenderSystem
	clicks      *systems.ClickSystem
	widgets     *systems.WidgetGateSystem

	clock   *game.Clock
	source  CanvasSource
	canvas  *entities.Canvas
	watcher *config.Watcher
	ui      *ebitenui.UI

	tickerBaseX float64
}

// NewCanvasScene 创建画布场景并构建画布
func NewCanvasScene(source CanvasSource) (*CanvasScene, error) {
	em := ecs.NewEntityManager()
	graph := scene.NewGraph(em)
	render := systems.NewCanvasRenderSystem(graph)
	clicks := systems.NewClickSystem(graph, render)

	s := &CanvasScene{
		entityManager: em,
		graph:         graph,
		controllers:   systems.NewCanvasControllerSystem(graph),
		faders:        systems.NewCanvasGroupFaderSystem(graph),
		render:        render,
		clicks:        clicks,
		widgets:       systems.NewWidgetGateSystem(em, clicks),
		clock:         game.NewClock(),
		source:        source,
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := s.rebuild(cfg); err != nil {
		return nil, err
	}

	if source.Path != "" {
		w, err := config.NewWatcher(filepath.Dir(source.Path))
		if err != nil {
			log.Printf("[CanvasScene] Warning: hot reload disabled: %v", err)
		} else {
			s.watcher = w
		}
	}

	return s, nil
}

func (s *CanvasScene) loadConfig() (*config.CanvasConfig, error) {
	if s.source.Path != "" {
		return config.LoadCanvasConfig(s.source.Path)
	}
	data, err := embedded.ReadFile(s.source.Embedded)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded canvas %s: %w", s.source.Embedded, err)
	}
	return config.ParseCanvasConfig(data, s.source.Embedded)
}

// rebuild 用新配置替换当前画布；构建失败时保留旧画布
func (s *CanvasScene) rebuild(cfg *config.CanvasConfig) error {
	old := s.canvas
	canvas, err := entities.BuildCanvas(s.graph, cfg, entities.FadeSystems{
		Controllers: s.controllers,
		Faders:      s.faders,
	}, s.actions())
	if err != nil {
		return err
	}

	if old != nil {
		old.Destroy(s.graph)
	}
	s.canvas = canvas

	if id, ok := canvas.Node(TickerNode); ok {
		if g, ok := ecs.GetComponent[*components.GraphicComponent](s.entityManager, id); ok {
			s.tickerBaseX = g.X
		}
	}
	s.ui = s.buildOverlay()
	return nil
}

func (s *CanvasScene) actions() entities.Actions {
	return entities.Actions{
		"resume":    func() { s.SetPaused(false) },
		"toggleHud": s.ToggleHUD,
	}
}

// buildOverlay 创建 ebitenui 工具栏，按钮绑定到根节点，画布不可交互时禁用
func (s *CanvasScene) buildOverlay() *ebitenui.UI {
	pauseBtn := newToolbarButton("Pause", func() { s.TogglePause() })
	hudBtn := newToolbarButton("HUD", s.ToggleHUD)

	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	bar.AddChild(pauseBtn)
	bar.AddChild(hudBtn)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)

	s.entityManager.AddComponent(s.canvas.Root, &components.WidgetBindingComponent{
		Widgets: []*widget.Widget{pauseBtn.GetWidget(), hudBtn.GetWidget()},
	})

	return &ebitenui.UI{Container: root}
}

// Update 更新场景
func (s *CanvasScene) Update(deltaTime float64) {
	s.clock.Tick(deltaTime)
	s.pollReload()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.ToggleHUD()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.ToggleTimeScale()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		s.Reinitialize()
	}

	s.step()
	s.clicks.Update()
	s.widgets.Update()
	if s.ui != nil {
		s.ui.Update()
	}
}

// step 推进淡入淡出（未缩放时间）和玩法动画（缩放时间）
func (s *CanvasScene) step() {
	s.controllers.Update(s.clock.UnscaledDelta())
	s.faders.Update(s.clock.UnscaledDelta())
	s.updateTicker()
	s.entityManager.RemoveMarkedEntities()
}

func (s *CanvasScene) updateTicker() {
	id, ok := s.canvas.Node(TickerNode)
	if !ok {
		return
	}
	if g, ok := ecs.GetComponent[*components.GraphicComponent](s.entityManager, id); ok {
		g.X = s.tickerBaseX + 40*math.Sin(s.clock.Time()*2)
	}
}

// Draw 绘制场景
func (s *CanvasScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)
	if s.ui != nil {
		s.ui.Draw(screen)
	}
}

// TogglePause 切换暂停菜单
func (s *CanvasScene) TogglePause() {
	id, ok := s.canvas.Node(PauseMenuNode)
	if !ok {
		log.Printf("[CanvasScene] Warning: no %q node in canvas", PauseMenuNode)
		return
	}
	s.SetPaused(!s.graph.ActiveSelf(id) || s.fadingOut(id))
}

// SetPaused 显示或隐藏暂停菜单，菜单显示时玩法时间停止
func (s *CanvasScene) SetPaused(paused bool) {
	id, ok := s.canvas.Node(PauseMenuNode)
	if !ok {
		return
	}
	if paused {
		s.clock.SetTimeScale(0)
		s.show(id)
	} else {
		s.clock.SetTimeScale(1)
		s.hide(id)
	}
}

// ToggleHUD 切换 HUD 显示
func (s *CanvasScene) ToggleHUD() {
	id, ok := s.canvas.Node(HUDNode)
	if !ok {
		log.Printf("[CanvasScene] Warning: no %q node in canvas", HUDNode)
		return
	}
	if s.graph.ActiveSelf(id) && !s.fadingOut(id) {
		s.hide(id)
	} else {
		s.show(id)
	}
}

// ToggleTimeScale 在正常速度和停止之间切换玩法时间
func (s *CanvasScene) ToggleTimeScale() {
	if s.clock.Paused() {
		s.clock.SetTimeScale(1)
	} else {
		s.clock.SetTimeScale(0)
	}
	log.Printf("[CanvasScene] Time scale: %.0f", s.clock.TimeScale())
}

// Reinitialize 强制重新收集整棵树的淡入淡出目标
func (s *CanvasScene) Reinitialize() {
	s.controllers.Initialize(s.canvas.Root, true, true)
}

// phase 节点上控制器（任一种）的渐变阶段
func (s *CanvasScene) phase(id ecs.EntityID) components.FadePhase {
	if p := s.controllers.Phase(id); p != components.FadeIdle {
		return p
	}
	if f, ok := ecs.GetComponent[*components.CanvasGroupFaderComponent](s.entityManager, id); ok {
		return f.Tween.Phase
	}
	return components.FadeIdle
}

func (s *CanvasScene) fadingOut(id ecs.EntityID) bool {
	return s.phase(id) == components.FadingOut
}

// show 激活节点；AutoFade 关闭时手动淡入
func (s *CanvasScene) show(id ecs.EntityID) {
	if !s.graph.ActiveSelf(id) {
		s.graph.SetActive(id, true)
	}
	if s.phase(id) != components.FadingIn {
		s.controllers.FadeInDefault(id)
		s.faders.FadeInDefault(id)
	}
}

// hide 淡出节点，结束后节点被停用
func (s *CanvasScene) hide(id ecs.EntityID) {
	s.controllers.FadeOutDefault(id)
	s.faders.FadeOutDefault(id)
}

// pollReload 处理配置文件变化（非阻塞）
func (s *CanvasScene) pollReload() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			if filepath.Clean(name) == filepath.Clean(s.source.Path) {
				s.Reload()
			}
		case err, ok := <-s.watcher.Errors:
			if ok {
				log.Printf("[CanvasScene] Watcher error: %v", err)
			}
		default:
			return
		}
	}
}

// Reload 重新加载画布配置；失败时保留当前画布
func (s *CanvasScene) Reload() {
	cfg, err := s.loadConfig()
	if err == nil {
		err = s.rebuild(cfg)
	}
	if err != nil {
		log.Printf("[CanvasScene] Reload failed, keeping current canvas: %v", err)
		return
	}
	s.clock.SetTimeScale(1)
	log.Printf("[CanvasScene] Reloaded canvas from %s", s.source.Path)
}

// Close 停止配置监听
func (s *CanvasScene) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
