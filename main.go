package main

import (
	"flag"
	"log"

	"github.com/decker502/canvasfade/pkg/app"
	"github.com/decker502/canvasfade/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	canvasPath = flag.String("canvas", "", "画布配置文件路径（修改后自动重载）；为空使用内置演示画布")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		CanvasPath: *canvasPath,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Canvas Fade")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
