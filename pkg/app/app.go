// Package app 提供应用的核心包装器
//
// 该包把启动逻辑从 main 包提取出来：配置日志、创建场景管理器并加载画布场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/canvasfade/pkg/game"
	"github.com/decker502/canvasfade/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// DefaultCanvas 默认的嵌入画布配置
const DefaultCanvas = "data/canvas/demo.yaml"

// canvasSceneName 场景工厂使用的场景名
const canvasSceneName = "canvas"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// CanvasPath 磁盘上的画布配置，非空时启用热重载；为空使用嵌入配置
	CanvasPath string
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool
	background   color.Color
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	source := scenes.CanvasSource{Path: cfg.CanvasPath, Embedded: DefaultCanvas}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		if name != canvasSceneName {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
		return scenes.NewCanvasScene(source)
	})
	if err := sceneManager.Load(canvasSceneName); err != nil {
		return nil, fmt.Errorf("画布场景加载失败: %w", err)
	}

	log.Printf("[App] Started (canvas: %s)", describeSource(source))

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
		background:   color.NRGBA{R: 0x2b, G: 0x4a, B: 0x3a, A: 0xff},
	}, nil
}

func describeSource(source scenes.CanvasSource) string {
	if source.Path != "" {
		return source.Path
	}
	return source.Embedded
}

// DeltaTime 每个 tick 的真实时间间隔（秒）
func DeltaTime() float64 {
	return 1.0 / float64(ebiten.TPS())
}

// Update 更新逻辑，每个 tick 调用一次
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.sceneManager.Update(DeltaTime())
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 退出时释放场景资源
func (a *App) Close() {
	a.sceneManager.Close()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
