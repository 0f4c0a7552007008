package manhattan

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Scale multiplies the canvas size to get the initial window size.
	Scale int
	// ShowFPS draws FPS and TPS in the top-left corner of the window.
	ShowFPS bool
}

// Run opens a resizable window, starts g and blocks until the window is
// closed.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(g.width*cfg.Scale, g.height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(true)

	if err := g.Start(); err != nil {
		return err
	}
	defer g.Stop()

	var game ebiten.Game = g
	if cfg.ShowFPS {
		game = &fpsGame{Game: g}
	}
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("manhattan: run: %w", err)
	}
	return nil
}

// fpsGame draws the frame and tick rates over the game.
type fpsGame struct {
	*Game
}

func (f *fpsGame) Draw(screen *ebiten.Image) {
	f.Game.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
