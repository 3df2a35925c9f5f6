// Command softrast-view shows a scene in a window, re-rendering it every
// tick.
//
// Keys: Space pauses, C toggles back-face culling, P toggles perspective
// correction, H toggles the HUD, Escape quits.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/internal/config"
	"github.com/gogpu/softrast/internal/player"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene file (YAML); empty uses the demo scene")
		zoom       = flag.Int("zoom", 2, "window size multiplier")
		verbose    = flag.Bool("v", false, "log per-frame statistics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	softrast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene := config.Default()
	if *configPath != "" {
		var err error
		if scene, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}
	// The window scales the frame itself.
	scene.Output.Scale = 1

	g, err := newGame(scene)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ebiten.SetWindowTitle("softrast")
	ebiten.SetWindowSize(scene.Width*max(*zoom, 1), scene.Height*max(*zoom, 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(scene.FPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// game implements ebiten.Game over a player.
type game struct {
	scene  *config.Scene
	player *player.Player
	frame  int
	paused bool
	fbImg  *ebiten.Image
}

func newGame(scene *config.Scene) (*game, error) {
	p, err := player.New(scene)
	if err != nil {
		return nil, err
	}
	return &game{scene: scene, player: p}, nil
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		softrast.Logger().Info("culling", "enabled", g.player.ToggleCulling())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		softrast.Logger().Info("perspective", "enabled", g.player.TogglePerspective())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.scene.HUD = !g.scene.HUD
	}
	if !g.paused {
		g.frame++
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	img, _, err := g.player.Frame(g.frame)
	if err != nil {
		softrast.Logger().Error("render frame", "frame", g.frame, "err", err)
		return
	}
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.scene.Width, g.scene.Height)
	}
	g.fbImg.WritePixels(img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.scene.Width, g.scene.Height
}
